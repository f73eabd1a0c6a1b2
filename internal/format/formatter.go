// Package format provides output formatting functionality for CLI commands.
// It includes formatters for the contact listing printed by `contacts list`.
package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/cristianoliveira/contacts/internal/domain"
)

// Formatter defines the interface for output formatters.
type Formatter interface {
	// FormatContacts formats contacts and writes them to writer.
	FormatContacts(contacts []domain.Contact, writer io.Writer) error
}

// FormatterType represents the type of formatter to use.
type FormatterType string

const (
	// FormatterTypeTable displays contacts in a table with headers.
	FormatterTypeTable FormatterType = "table"

	// FormatterTypeSimple displays one contact per line with id, name and phone.
	FormatterTypeSimple FormatterType = "simple"

	// FormatterTypeCompact displays only names, one per line.
	FormatterTypeCompact FormatterType = "compact"

	// FormatterTypeJSON displays contacts as the JSON the remote service returns.
	FormatterTypeJSON FormatterType = "json"
)

// FormatterTypes lists every supported type.
var FormatterTypes = []FormatterType{FormatterTypeTable, FormatterTypeSimple, FormatterTypeCompact, FormatterTypeJSON}

// ParseFormatterType validates name case-insensitively.
func ParseFormatterType(name string) (FormatterType, error) {
	for _, t := range FormatterTypes {
		if strings.EqualFold(name, string(t)) {
			return t, nil
		}
	}
	names := make([]string, len(FormatterTypes))
	for i, t := range FormatterTypes {
		names[i] = string(t)
	}
	return "", fmt.Errorf("invalid format %q (expected one of: %s)", name, strings.Join(names, ", "))
}

// NewFormatter creates a new formatter of the specified type.
func NewFormatter(formatterType FormatterType) Formatter {
	switch formatterType {
	case FormatterTypeSimple:
		return NewSimpleFormatter()
	case FormatterTypeCompact:
		return NewCompactFormatter()
	case FormatterTypeJSON:
		return NewJSONFormatter()
	default:
		return NewTableFormatter()
	}
}
