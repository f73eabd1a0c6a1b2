package format

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/cristianoliveira/contacts/internal/domain"
)

const simpleNameWidth = 30

// SimpleFormatter formats contacts as "id  name  phone  email".
type SimpleFormatter struct{}

// NewSimpleFormatter creates a new SimpleFormatter.
func NewSimpleFormatter() *SimpleFormatter {
	return &SimpleFormatter{}
}

// FormatContacts formats contacts in simple format.
func (f *SimpleFormatter) FormatContacts(contacts []domain.Contact, writer io.Writer) error {
	for _, c := range contacts {
		line := fmt.Sprintf("%-4d  %s  %s", c.ID, truncateString(c.Name, simpleNameWidth), c.Phone)
		if c.HasEmail() {
			line += "  " + c.EmailOrEmpty()
		}
		if _, err := fmt.Fprintln(writer, line); err != nil {
			return err
		}
	}
	return nil
}

// CompactFormatter formats contacts with only their names.
type CompactFormatter struct{}

// NewCompactFormatter creates a new CompactFormatter.
func NewCompactFormatter() *CompactFormatter {
	return &CompactFormatter{}
}

// FormatContacts formats contacts in compact format.
func (f *CompactFormatter) FormatContacts(contacts []domain.Contact, writer io.Writer) error {
	for _, c := range contacts {
		if _, err := fmt.Fprintln(writer, c.Name); err != nil {
			return err
		}
	}
	return nil
}

// JSONFormatter formats contacts as an indented JSON array.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// FormatContacts formats contacts as JSON. An empty list is written as [].
func (f *JSONFormatter) FormatContacts(contacts []domain.Contact, writer io.Writer) error {
	if contacts == nil {
		contacts = []domain.Contact{}
	}
	enc := json.NewEncoder(writer)
	enc.SetIndent("", "  ")
	return enc.Encode(contacts)
}
