package form

import (
	"strings"
	"unicode/utf8"

	"github.com/dlclark/regexp2"
)

// Rule identifies a validation rule.
type Rule string

const (
	RuleRequired  Rule = "required"
	RuleEmail     Rule = "email"
	RuleMinLength Rule = "minlength"
	RulePattern   Rule = "pattern"
)

// rulePriority orders rules when choosing the message to show.
var rulePriority = []Rule{RuleRequired, RuleEmail, RuleMinLength, RulePattern}

// NameMinLength is the minimum length of a contact name.
const NameMinLength = 2

// The email pattern is the one browsers apply to type=email inputs, length
// lookaheads included, so it needs a backtracking engine.
var emailPattern = regexp2.MustCompile(
	`^(?=.{1,254}$)(?=.{1,64}@)[a-zA-Z0-9!#$%&'*+/=?^_`+"`"+`{|}~-]+(?:\.[a-zA-Z0-9!#$%&'*+/=?^_`+"`"+`{|}~-]+)*`+
		`@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`,
	regexp2.ECMAScript)

// phonePattern accepts E.164-like numbers: optional "+", no leading zero,
// 2 to 15 digits.
var phonePattern = regexp2.MustCompile(`^\+?[1-9]\d{1,14}$`, regexp2.ECMAScript)

func matches(re *regexp2.Regexp, s string) bool {
	ok, err := re.MatchString(s)
	return err == nil && ok
}

// check returns the failing rules for one field value. Empty optional values
// and empty values for format rules pass; required covers them.
func check(field Field, value string) []Rule {
	v := strings.TrimSpace(value)
	var failed []Rule
	switch field {
	case FieldName:
		if v == "" {
			failed = append(failed, RuleRequired)
		} else if utf8.RuneCountInString(v) < NameMinLength {
			failed = append(failed, RuleMinLength)
		}
	case FieldEmail:
		if v != "" && !matches(emailPattern, v) {
			failed = append(failed, RuleEmail)
		}
	case FieldPhone:
		if v == "" {
			failed = append(failed, RuleRequired)
		} else if !matches(phonePattern, v) {
			failed = append(failed, RulePattern)
		}
	}
	return failed
}
