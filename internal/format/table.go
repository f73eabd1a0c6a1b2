package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/cristianoliveira/contacts/internal/colors"
	"github.com/cristianoliveira/contacts/internal/domain"
	"github.com/mattn/go-runewidth"
)

// TableConfig holds configuration for table formatting.
type TableConfig struct {
	// ShowHeaders determines whether to show column headers.
	ShowHeaders bool

	// HeaderColor is the color to use for headers.
	HeaderColor string

	// ColumnWidths defines the width for each column.
	ColumnWidths map[string]int

	// ColumnAlignments defines the alignment for each column (left, right, center).
	ColumnAlignments map[string]string
}

// DefaultTableConfig returns a default table configuration.
func DefaultTableConfig() *TableConfig {
	return &TableConfig{
		ShowHeaders: true,
		HeaderColor: colors.Blue,
		ColumnWidths: map[string]int{
			"ID":     4,
			"Name":   24,
			"Email":  28,
			"Phone":  16,
			"Status": 8,
		},
		ColumnAlignments: map[string]string{
			"ID": "right",
		},
	}
}

// TableColumn represents a column in a table.
type TableColumn struct {
	// Name is the column name displayed in the header.
	Name string

	// Width is the column width in terminal cells.
	Width int

	// Alignment is the text alignment (left, right, center).
	Alignment string

	// Extractor extracts the raw value from a contact.
	Extractor func(domain.Contact) string
}

// TableFormatter formats contacts in a table with headers.
type TableFormatter struct {
	config  *TableConfig
	columns []TableColumn
}

// NewTableFormatter creates a new TableFormatter with the default columns.
func NewTableFormatter() *TableFormatter {
	return NewTableFormatterWithConfig(DefaultTableConfig())
}

// NewTableFormatterWithConfig creates a TableFormatter using config.
func NewTableFormatterWithConfig(config *TableConfig) *TableFormatter {
	column := func(name string, extract func(domain.Contact) string) TableColumn {
		return TableColumn{
			Name:      name,
			Width:     config.ColumnWidths[name],
			Alignment: config.ColumnAlignments[name],
			Extractor: extract,
		}
	}
	columns := []TableColumn{
		column("ID", func(c domain.Contact) string { return c.IDString() }),
		column("Name", func(c domain.Contact) string { return c.Name }),
		column("Email", func(c domain.Contact) string {
			if !c.HasEmail() {
				return "-"
			}
			return c.EmailOrEmpty()
		}),
		column("Phone", func(c domain.Contact) string { return c.Phone }),
		column("Status", func(c domain.Contact) string {
			if c.IsActive {
				return "active"
			}
			return "inactive"
		}),
	}
	return &TableFormatter{config: config, columns: columns}
}

// WithColumns adds custom columns to the formatter.
func (f *TableFormatter) WithColumns(columns ...TableColumn) *TableFormatter {
	f.columns = append(f.columns, columns...)
	return f
}

// FormatContacts formats contacts in table format. Nothing is written for
// an empty list.
func (f *TableFormatter) FormatContacts(contacts []domain.Contact, writer io.Writer) error {
	if len(contacts) == 0 {
		return nil
	}

	if f.config.ShowHeaders {
		if err := f.writeHeader(writer); err != nil {
			return err
		}
		if err := f.writeSeparator(writer); err != nil {
			return err
		}
	}

	for _, c := range contacts {
		if err := f.writeRow(c, writer); err != nil {
			return err
		}
	}
	return nil
}

// writeHeader writes the table header.
func (f *TableFormatter) writeHeader(writer io.Writer) error {
	cells := make([]string, len(f.columns))
	for i, col := range f.columns {
		cells[i] = formatString(strings.ToUpper(col.Name), col.Width, "left")
	}
	_, err := fmt.Fprintf(writer, "%s%s%s\n", f.config.HeaderColor, strings.Join(cells, "  "), colors.Reset)
	return err
}

// writeSeparator writes the table separator.
func (f *TableFormatter) writeSeparator(writer io.Writer) error {
	cells := make([]string, len(f.columns))
	for i, col := range f.columns {
		cells[i] = makeSeparator(col.Width)
	}
	_, err := fmt.Fprintf(writer, "%s%s%s\n", f.config.HeaderColor, strings.Join(cells, "  "), colors.Reset)
	return err
}

// writeRow writes a single table row.
func (f *TableFormatter) writeRow(c domain.Contact, writer io.Writer) error {
	cells := make([]string, len(f.columns))
	for i, col := range f.columns {
		cells[i] = formatString(col.Extractor(c), col.Width, col.Alignment)
	}
	_, err := fmt.Fprintln(writer, strings.TrimRight(strings.Join(cells, "  "), " "))
	return err
}

// Helper functions

// formatString fits s into width terminal cells with the given alignment,
// truncating with "..." when it does not fit.
func formatString(s string, width int, alignment string) string {
	if width <= 0 {
		return s
	}
	s = truncateString(s, width)
	gap := width - runewidth.StringWidth(s)
	if gap <= 0 {
		return s
	}

	switch alignment {
	case "right":
		return strings.Repeat(" ", gap) + s
	case "center":
		left := gap / 2
		return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
	default: // left
		return s + strings.Repeat(" ", gap)
	}
}

// truncateString truncates s to width terminal cells, adding "..." if truncated.
func truncateString(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width < 3 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "...")
}

// makeSeparator creates a separator line of the specified width.
func makeSeparator(width int) string {
	return strings.Repeat("-", width)
}
