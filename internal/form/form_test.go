package form

import (
	"testing"

	"github.com/cristianoliveira/contacts/internal/domain"
	"github.com/cristianoliveira/contacts/internal/errors"
	"github.com/cristianoliveira/contacts/internal/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestForm(t *testing.T) *Form {
	t.Helper()
	tr, err := i18n.New(i18n.DefaultLanguage)
	require.NoError(t, err)
	return New(tr)
}

func TestNewFormDefaults(t *testing.T) {
	f := newTestForm(t)
	assert.Equal(t, domain.DefaultDraft(), f.Draft())
	assert.Equal(t, "true", f.Value(FieldActive))
	for _, field := range Fields {
		assert.Empty(t, f.FieldError(field), "no errors before interaction: %s", field)
		assert.False(t, f.Touched(field))
		assert.False(t, f.Dirty(field))
	}
	assert.False(t, f.Valid(), "required fields are empty")
}

func TestFieldErrorsOnlyAfterInteraction(t *testing.T) {
	f := newTestForm(t)
	assert.Contains(t, f.Validate(), FieldName)
	assert.Empty(t, f.FieldError(FieldName))

	f.Touch(FieldName)
	assert.Equal(t, "Name is required", f.FieldError(FieldName))

	f.Set(FieldPhone, "abc")
	assert.True(t, f.Dirty(FieldPhone))
	assert.Equal(t, "Please enter a valid phone number (E.164)", f.FieldError(FieldPhone))
}

func TestRules(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		value string
		want  []Rule
	}{
		{"name empty", FieldName, "", []Rule{RuleRequired}},
		{"name blank", FieldName, "   ", []Rule{RuleRequired}},
		{"name too short", FieldName, "A", []Rule{RuleMinLength}},
		{"name ok", FieldName, "Al", nil},
		{"name multibyte", FieldName, "Zé", nil},
		{"email empty is optional", FieldEmail, "", nil},
		{"email ok", FieldEmail, "ana@example.com", nil},
		{"email plus tag", FieldEmail, "ana+work@mail.example.org", nil},
		{"email no at", FieldEmail, "ana.example.com", []Rule{RuleEmail}},
		{"email space", FieldEmail, "ana @example.com", []Rule{RuleEmail}},
		{"email local part too long", FieldEmail, string(make65('a')) + "@x.io", []Rule{RuleEmail}},
		{"phone empty", FieldPhone, "", []Rule{RuleRequired}},
		{"phone letters", FieldPhone, "abc", []Rule{RulePattern}},
		{"phone e164", FieldPhone, "+14155552671", nil},
		{"phone without plus", FieldPhone, "14155552671", nil},
		{"phone leading zero", FieldPhone, "+0123", []Rule{RulePattern}},
		{"phone one digit", FieldPhone, "5", []Rule{RulePattern}},
		{"phone sixteen digits", FieldPhone, "+1234567890123456", []Rule{RulePattern}},
		{"phone unicode digits", FieldPhone, "+١٢٣", []Rule{RulePattern}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, check(tt.field, tt.value))
		})
	}
}

func make65(c byte) []byte {
	b := make([]byte, 65)
	for i := range b {
		b[i] = c
	}
	return b
}

func TestSubmitShortNameFailsWithoutPayload(t *testing.T) {
	f := newTestForm(t)
	f.Set(FieldName, "A")
	f.Set(FieldPhone, "+14155552671")

	payload, err := f.Submit()
	require.Error(t, err)
	assert.Equal(t, domain.ContactPayload{}, payload)
	assert.True(t, errors.IsValidation(err))

	var verr *errors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Please fill in all required fields correctly.", verr.Summary)
	assert.Equal(t, map[string]string{"name": "Name must be at least 2 characters"}, verr.Fields)
	for _, field := range Fields {
		assert.True(t, f.Touched(field), "submit touches %s", field)
	}
}

func TestSubmitBadPhone(t *testing.T) {
	f := newTestForm(t)
	f.Set(FieldName, "Ana")
	f.Set(FieldPhone, "abc")

	_, err := f.Submit()
	var verr *errors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Please enter a valid phone number (E.164)", verr.Fields["phone"])
}

func TestSubmitEmptyFormReportsAllRequired(t *testing.T) {
	f := newTestForm(t)
	_, err := f.Submit()

	var verr *errors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, map[string]string{
		"name":  "Name is required",
		"phone": "Phone is required",
	}, verr.Fields)
	assert.Equal(t, "Email", f.Label(FieldEmail))
	assert.Empty(t, f.FieldError(FieldEmail))
}

func TestSubmitSuccessNormalizesPayload(t *testing.T) {
	f := newTestForm(t)
	f.Set(FieldName, "  Ana Lima ")
	f.Set(FieldEmail, "   ")
	f.Set(FieldPhone, "+14155552671")
	f.ToggleActive()

	payload, err := f.Submit()
	require.NoError(t, err)
	assert.Equal(t, domain.ContactPayload{Name: "Ana Lima", Phone: "+14155552671", Email: nil, IsActive: false}, payload)
	assert.Equal(t, "  Ana Lima ", f.Value(FieldName), "submit alone keeps the input")
}

func TestReset(t *testing.T) {
	f := newTestForm(t)
	f.Set(FieldName, "Ana")
	f.Set(FieldActive, "false")
	f.TouchAll()

	f.Reset()
	assert.Equal(t, domain.DefaultDraft(), f.Draft())
	assert.False(t, f.Touched(FieldName))
	assert.False(t, f.Dirty(FieldName))
	assert.Empty(t, f.FieldError(FieldName))
}

func TestSetActive(t *testing.T) {
	f := newTestForm(t)
	f.Set(FieldActive, "false")
	assert.False(t, f.Draft().Active)
	f.Set(FieldActive, "maybe")
	assert.False(t, f.Draft().Active, "unparsable input is ignored")
	f.Set(FieldActive, "1")
	assert.True(t, f.Draft().Active)
}

func TestMessagesFollowLanguage(t *testing.T) {
	tr, err := i18n.New(i18n.DefaultLanguage)
	require.NoError(t, err)
	f := New(tr)
	f.Touch(FieldPhone)

	tr.Use("es")
	assert.Equal(t, "Teléfono es obligatorio", f.FieldError(FieldPhone))
	tr.Use("de")
	assert.Equal(t, "Telefon ist erforderlich", f.FieldError(FieldPhone))
}

func TestNilTranslatorReturnsKeys(t *testing.T) {
	f := New(nil)
	f.Touch(FieldName)
	assert.Equal(t, "validation.required", f.FieldError(FieldName))
	assert.True(t, FieldPhone.Required())
	assert.False(t, FieldEmail.Required())
}
