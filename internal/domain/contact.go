// Package domain provides the domain layer for contacts.
// It contains the contact entity, value objects, and the pure list operations
// (filter, sort, paginate) the list view is derived from.
package domain

import (
	"strconv"
	"strings"
)

// Contact represents a contact record owned by the remote contact service.
type Contact struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Email    *string `json:"email"`
	Phone    string  `json:"phone"`
	IsActive bool    `json:"isActive"`
}

// EmailOrEmpty returns the email address or an empty string when absent.
func (c Contact) EmailOrEmpty() string {
	if c.Email == nil {
		return ""
	}
	return *c.Email
}

// HasEmail reports whether the contact has a non-empty email.
func (c Contact) HasEmail() bool {
	return c.Email != nil && *c.Email != ""
}

// IDString returns the identifier formatted as a decimal string.
func (c Contact) IDString() string {
	return strconv.Itoa(c.ID)
}

// ContactDraft is an unsaved contact without server-assigned identity.
type ContactDraft struct {
	Name   string
	Email  string
	Phone  string
	Active bool
}

// DefaultDraft returns an empty draft. New contacts start active.
func DefaultDraft() ContactDraft {
	return ContactDraft{Active: true}
}

// ContactPayload is the body sent to the remote service when creating a contact.
// Email is encoded as an explicit null when absent.
type ContactPayload struct {
	Name     string  `json:"name"`
	Phone    string  `json:"phone"`
	Email    *string `json:"email"`
	IsActive bool    `json:"isActive"`
}

// Payload normalizes the draft into a create payload.
func (d ContactDraft) Payload() ContactPayload {
	payload := ContactPayload{
		Name:     strings.TrimSpace(d.Name),
		Phone:    strings.TrimSpace(d.Phone),
		IsActive: d.Active,
	}
	if email := strings.TrimSpace(d.Email); email != "" {
		payload.Email = &email
	}
	return payload
}

// IndexByID returns the position of the contact with the given id, or -1.
func IndexByID(contacts []Contact, id int) int {
	for i, c := range contacts {
		if c.ID == id {
			return i
		}
	}
	return -1
}
