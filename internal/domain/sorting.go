package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// SortField specifies which contact attribute the list is sorted by.
type SortField string

const (
	SortByIDField       SortField = "id"
	SortByNameField     SortField = "name"
	SortByEmailField    SortField = "email"
	SortByPhoneField    SortField = "phone"
	SortByIsActiveField SortField = "isActive"
)

// SortFields lists every sortable field in display order.
var SortFields = []SortField{
	SortByNameField,
	SortByEmailField,
	SortByPhoneField,
	SortByIsActiveField,
	SortByIDField,
}

// IsValid checks if the sort field is valid.
func (f SortField) IsValid() bool {
	switch f {
	case SortByIDField, SortByNameField, SortByEmailField,
		SortByPhoneField, SortByIsActiveField:
		return true
	default:
		return false
	}
}

// String returns the string representation of the sort field.
func (f SortField) String() string {
	return string(f)
}

// Value returns the comparable key of the contact for this field: the
// stringified, lower-cased attribute. Missing values yield "".
func (f SortField) Value(c Contact) string {
	switch f {
	case SortByIDField:
		return strconv.Itoa(c.ID)
	case SortByNameField:
		return strings.ToLower(c.Name)
	case SortByEmailField:
		return strings.ToLower(c.EmailOrEmpty())
	case SortByPhoneField:
		return strings.ToLower(c.Phone)
	case SortByIsActiveField:
		return strconv.FormatBool(c.IsActive)
	default:
		return ""
	}
}

// Next returns the field following f in SortFields, wrapping around.
func (f SortField) Next() SortField {
	for i, field := range SortFields {
		if field == f {
			return SortFields[(i+1)%len(SortFields)]
		}
	}
	return SortFields[0]
}

// SortDirection specifies the sort direction.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// IsValid checks if the sort direction is valid.
func (d SortDirection) IsValid() bool {
	switch d {
	case SortAsc, SortDesc:
		return true
	default:
		return false
	}
}

// String returns the string representation of the sort direction.
func (d SortDirection) String() string {
	return string(d)
}

// Toggle returns the opposite direction.
func (d SortDirection) Toggle() SortDirection {
	if d == SortDesc {
		return SortAsc
	}
	return SortDesc
}

// SortOptions holds sorting options for contacts.
type SortOptions struct {
	Field     SortField
	Direction SortDirection
}

// DefaultSortOptions returns the default sort options (name ascending).
func DefaultSortOptions() SortOptions {
	return SortOptions{
		Field:     SortByNameField,
		Direction: SortAsc,
	}
}

// SortContacts sorts contacts based on the given options.
// The sort is stable: contacts with equal keys keep their input order in both
// directions. Returns a new sorted slice without modifying the original.
func SortContacts(contacts []Contact, opts SortOptions) []Contact {
	opts = normalizeSortOptions(opts)

	sorted := make([]Contact, len(contacts))
	copy(sorted, contacts)
	if len(sorted) < 2 {
		return sorted
	}

	keys := make([]string, len(sorted))
	for i := range sorted {
		keys[i] = opts.Field.Value(sorted[i])
	}
	index := make([]int, len(sorted))
	for i := range index {
		index[i] = i
	}

	sort.SliceStable(index, func(i, j int) bool {
		a, b := keys[index[i]], keys[index[j]]
		if opts.Direction == SortDesc {
			return a > b
		}
		return a < b
	})

	result := make([]Contact, len(sorted))
	for pos, i := range index {
		result[pos] = sorted[i]
	}
	return result
}

// normalizeSortOptions normalizes sort options by setting defaults.
func normalizeSortOptions(opts SortOptions) SortOptions {
	defaults := DefaultSortOptions()
	if !opts.Field.IsValid() {
		opts.Field = defaults.Field
	}
	if !opts.Direction.IsValid() {
		opts.Direction = defaults.Direction
	}
	return opts
}

// ParseSortField parses a string into a SortField.
func ParseSortField(field string) (SortField, error) {
	f := SortField(field)
	if !f.IsValid() {
		return "", fmt.Errorf("invalid sort field: %s", field)
	}
	return f, nil
}

// ParseSortDirection parses a string into a SortDirection.
func ParseSortDirection(direction string) (SortDirection, error) {
	d := SortDirection(strings.ToLower(direction))
	if !d.IsValid() {
		return "", fmt.Errorf("invalid sort direction: %s", direction)
	}
	return d, nil
}
