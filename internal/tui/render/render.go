package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/contacts/internal/domain"
	"github.com/mattn/go-runewidth"
)

const (
	idWidth              = 4
	nameWidth            = 22
	phoneWidth           = 16
	badgeWidth           = 10
	spacesBetweenColumns = 8
	defaultEmailWidth    = 24
	minEmailWidth        = 8
	skeletonGlyph        = "░"
	ellipsis             = "…"
)

// RowState defines the inputs needed to render a contact row.
type RowState struct {
	Contact       domain.Contact
	Width         int
	Selected      bool
	ActiveLabel   string
	InactiveLabel string
}

// HeaderState defines the column titles of the contact table.
type HeaderState struct {
	ID     string
	Name   string
	Email  string
	Phone  string
	Status string
	Width  int
}

// FieldState defines the inputs needed to render a labelled form input.
type FieldState struct {
	Label    string
	Input    string
	Error    string
	Focused  bool
	Required bool
}

// FooterState defines the inputs needed to render footer help text.
type FooterState struct {
	Help  string
	Width int
}

// DetailState defines the inputs needed to render a single contact.
type DetailState struct {
	Contact     domain.Contact
	Labels      map[string]string
	StatusLabel string
}

// Title renders the application title with the theme name.
func Title(theme Theme, title, themeLabel string) string {
	right := theme.Muted.Render(themeLabel)
	return lipgloss.JoinHorizontal(lipgloss.Top, theme.Title.Render(title), "  ", right)
}

// Header renders the table header.
func Header(theme Theme, state HeaderState) string {
	emailWidth := calculateEmailWidth(state.Width)
	header := strings.Join([]string{
		cell(state.ID, idWidth),
		cell(state.Name, nameWidth),
		cell(state.Email, emailWidth),
		cell(state.Phone, phoneWidth),
		cell(state.Status, badgeWidth),
	}, "  ")
	return theme.Label.Render(header)
}

// ContactRow renders a single contact row.
func ContactRow(theme Theme, state RowState) string {
	c := state.Contact
	emailWidth := calculateEmailWidth(state.Width)

	email := c.EmailOrEmpty()
	if email == "" {
		email = "-"
	}

	row := strings.Join([]string{
		cell(c.IDString(), idWidth),
		cell(c.Name, nameWidth),
		cell(email, emailWidth),
		cell(c.Phone, phoneWidth),
	}, "  ") + "  "

	badge := Badge(theme, c.IsActive, state.ActiveLabel, state.InactiveLabel)
	if state.Selected {
		return theme.Selected.Render(row) + badge
	}
	return row + badge
}

// Badge renders the active or inactive status pill.
func Badge(theme Theme, active bool, activeLabel, inactiveLabel string) string {
	if active {
		return theme.Active.Render(activeLabel)
	}
	return theme.Inactive.Render(inactiveLabel)
}

// Skeleton renders placeholder rows shown while the first load is pending.
func Skeleton(theme Theme, rows, width int) string {
	if rows <= 0 {
		return ""
	}
	if width <= 0 {
		width = idWidth + nameWidth + defaultEmailWidth + phoneWidth + badgeWidth + spacesBetweenColumns
	}
	lines := make([]string, 0, rows)
	for i := 0; i < rows; i++ {
		// Alternate widths so the placeholder reads as rows, not a block.
		w := width - (i%3)*4
		if w < 1 {
			w = 1
		}
		lines = append(lines, theme.Skeleton.Render(strings.Repeat(skeletonGlyph, w)))
	}
	return strings.Join(lines, "\n")
}

// EmptyState renders the message shown when there are no contacts.
func EmptyState(theme Theme, title, hint string) string {
	parts := []string{theme.Label.Render(title)}
	if hint != "" {
		parts = append(parts, theme.Muted.Render(hint))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Field renders a form input with its label and validation message.
func Field(theme Theme, state FieldState) string {
	label := state.Label
	if state.Required {
		label += " *"
	}
	labelStyle := theme.Label
	if state.Focused {
		labelStyle = theme.Title
	}
	parts := []string{labelStyle.Render(label), state.Input}
	if state.Error != "" {
		parts = append(parts, theme.Error.Render(state.Error))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// Checkbox renders a boolean form input.
func Checkbox(theme Theme, label string, checked, focused bool) string {
	box := "[ ]"
	if checked {
		box = "[x]"
	}
	text := box + " " + label
	if focused {
		return theme.Title.Render(text)
	}
	return theme.Label.Render(text)
}

// Button renders the submit button; disabled while a request is in flight.
func Button(theme Theme, label string, disabled bool) string {
	if disabled {
		return theme.Disabled.Render(label)
	}
	return theme.Button.Render(label)
}

// Messages renders the success and error status lines.
func Messages(theme Theme, success, errMsg string) string {
	var lines []string
	if success != "" {
		lines = append(lines, theme.Success.Render(success))
	}
	if errMsg != "" {
		lines = append(lines, theme.Error.Render(errMsg))
	}
	return strings.Join(lines, "\n")
}

// Detail renders every field of a contact.
func Detail(theme Theme, state DetailState) string {
	c := state.Contact
	email := c.EmailOrEmpty()
	if email == "" {
		email = "-"
	}
	rows := []struct{ key, value string }{
		{"id", c.IDString()},
		{"name", c.Name},
		{"email", email},
		{"phone", c.Phone},
		{"status", state.StatusLabel},
	}
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		label := state.Labels[r.key]
		if label == "" {
			label = r.key
		}
		lines = append(lines, theme.Label.Render(pad(label+":", 10))+" "+r.value)
	}
	return strings.Join(lines, "\n")
}

// Pane wraps content in a bordered box.
func Pane(theme Theme, content string, width int, focused bool) string {
	style := theme.Pane
	if focused {
		style = theme.Focused
	}
	if width > 0 {
		style = style.Width(width)
	}
	return style.Render(content)
}

// Footer renders the footer with help text.
func Footer(theme Theme, state FooterState) string {
	help := state.Help
	if state.Width > 0 {
		help = truncate(help, state.Width)
	}
	return theme.Help.Render(help)
}

func calculateEmailWidth(width int) int {
	if width <= 0 {
		return defaultEmailWidth
	}
	totalFixedWidth := idWidth + nameWidth + phoneWidth + badgeWidth + spacesBetweenColumns
	w := width - totalFixedWidth
	if w < minEmailWidth {
		return minEmailWidth
	}
	return w
}

// truncate shortens value to width terminal cells.
func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	return runewidth.Truncate(value, width, ellipsis)
}

// pad fills value with spaces up to width terminal cells.
func pad(value string, width int) string {
	return runewidth.FillRight(value, width)
}

// cell truncates and pads value to exactly width terminal cells.
func cell(value string, width int) string {
	return pad(truncate(value, width), width)
}
