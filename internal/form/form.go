// Package form holds the contact draft being edited, its validation rules
// and the touched/dirty state that decides when errors are shown.
package form

import (
	"strconv"
	"sync"

	"github.com/cristianoliveira/contacts/internal/domain"
	"github.com/cristianoliveira/contacts/internal/errors"
	"github.com/cristianoliveira/contacts/internal/i18n"
)

// Field is one input of the contact form.
type Field string

const (
	FieldName   Field = "name"
	FieldEmail  Field = "email"
	FieldPhone  Field = "phone"
	FieldActive Field = "active"
)

// Fields lists the inputs in display order.
var Fields = []Field{FieldName, FieldEmail, FieldPhone, FieldActive}

// String returns the field name.
func (f Field) String() string {
	return string(f)
}

// Required reports whether the field must be filled in.
func (f Field) Required() bool {
	return f == FieldName || f == FieldPhone
}

// Form is the contact form controller. It is safe for concurrent use.
type Form struct {
	mu      sync.RWMutex
	draft   domain.ContactDraft
	touched map[Field]bool
	dirty   map[Field]bool
	tr      i18n.Translator
}

// New returns a form with default values.
func New(tr i18n.Translator) *Form {
	if tr == nil {
		tr = i18n.Static{}
	}
	f := &Form{tr: tr}
	f.reset()
	return f
}

func (f *Form) reset() {
	f.draft = domain.DefaultDraft()
	f.touched = make(map[Field]bool)
	f.dirty = make(map[Field]bool)
}

// Reset restores defaults (active, everything else empty) and forgets
// touched and dirty state.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reset()
}

// Set stores value for field and marks it dirty. The active field accepts
// any strconv.ParseBool input; other input leaves it unchanged.
func (f *Form) Set(field Field, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch field {
	case FieldName:
		f.draft.Name = value
	case FieldEmail:
		f.draft.Email = value
	case FieldPhone:
		f.draft.Phone = value
	case FieldActive:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return
		}
		f.draft.Active = b
	default:
		return
	}
	f.dirty[field] = true
}

// ToggleActive flips the active flag.
func (f *Form) ToggleActive() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft.Active = !f.draft.Active
	f.dirty[FieldActive] = true
}

// Touch marks field as interacted with.
func (f *Form) Touch(field Field) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.touched[field] = true
}

// TouchAll marks every field as interacted with.
func (f *Form) TouchAll() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.touchAll()
}

func (f *Form) touchAll() {
	for _, field := range Fields {
		f.touched[field] = true
	}
}

// Value returns the raw input of field.
func (f *Form) Value(field Field) string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	switch field {
	case FieldName:
		return f.draft.Name
	case FieldEmail:
		return f.draft.Email
	case FieldPhone:
		return f.draft.Phone
	case FieldActive:
		return strconv.FormatBool(f.draft.Active)
	default:
		return ""
	}
}

// Draft returns a copy of the current input.
func (f *Form) Draft() domain.ContactDraft {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.draft
}

// Touched reports whether field was interacted with.
func (f *Form) Touched(field Field) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.touched[field]
}

// Dirty reports whether field was edited.
func (f *Form) Dirty(field Field) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.dirty[field]
}

// Validate evaluates every rule regardless of interaction state and returns
// the failing rules per field. Valid fields are absent.
func (f *Form) Validate() map[Field][]Rule {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.validate()
}

func (f *Form) validate() map[Field][]Rule {
	result := make(map[Field][]Rule)
	for _, field := range Fields {
		if failed := check(field, f.rawValue(field)); len(failed) > 0 {
			result[field] = failed
		}
	}
	return result
}

func (f *Form) rawValue(field Field) string {
	switch field {
	case FieldName:
		return f.draft.Name
	case FieldEmail:
		return f.draft.Email
	case FieldPhone:
		return f.draft.Phone
	}
	return ""
}

// Valid reports whether every rule passes.
func (f *Form) Valid() bool {
	return len(f.Validate()) == 0
}

// FieldError returns the message of the highest-priority failing rule, or ""
// when the field passes or has not been touched or edited yet.
func (f *Form) FieldError(field Field) string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.fieldError(field)
}

func (f *Form) fieldError(field Field) string {
	if !f.touched[field] && !f.dirty[field] {
		return ""
	}
	failed := check(field, f.rawValue(field))
	for _, rule := range rulePriority {
		for _, r := range failed {
			if r == rule {
				return f.message(field, rule)
			}
		}
	}
	return ""
}

// Label returns the translated field label.
func (f *Form) Label(field Field) string {
	return f.tr.Instant("fields."+field.String(), nil)
}

func (f *Form) message(field Field, rule Rule) string {
	label := f.Label(field)
	switch rule {
	case RuleRequired:
		return f.tr.Instant("validation.required", i18n.Params{"field": label})
	case RuleEmail:
		return f.tr.Instant("validation.email", nil)
	case RuleMinLength:
		return f.tr.Instant("validation.minlength", i18n.Params{"field": label, "length": NameMinLength})
	case RulePattern:
		return f.tr.Instant("validation.phone", nil)
	}
	return ""
}

// Submit validates the form. On failure every field is marked touched and a
// *errors.ValidationError is returned. On success the normalized payload is
// returned; the form keeps its values until Reset.
func (f *Form) Submit() (domain.ContactPayload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if failures := f.validate(); len(failures) > 0 {
		f.touchAll()
		verr := &errors.ValidationError{
			Summary: f.tr.Instant("messages.invalidForm", nil),
			Fields:  make(map[string]string, len(failures)),
		}
		for field := range failures {
			verr.Fields[field.String()] = f.fieldError(field)
		}
		return domain.ContactPayload{}, verr
	}
	return f.draft.Payload(), nil
}
