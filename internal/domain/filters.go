package domain

import (
	"strings"
)

// FilterContacts returns the contacts whose name, email, or phone contains term.
// Matching is case-insensitive. An empty term matches every contact; an absent
// email never matches a non-empty term.
// Returns a new slice; the input is left untouched.
func FilterContacts(contacts []Contact, term string) []Contact {
	query := strings.ToLower(term)
	result := make([]Contact, 0, len(contacts))
	for _, c := range contacts {
		if c.Matches(query) {
			result = append(result, c)
		}
	}
	return result
}

// Matches reports whether the contact matches an already lower-cased query.
func (c Contact) Matches(query string) bool {
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(c.Name), query) {
		return true
	}
	if c.Email != nil && strings.Contains(strings.ToLower(*c.Email), query) {
		return true
	}
	return strings.Contains(strings.ToLower(c.Phone), query)
}
