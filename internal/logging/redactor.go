package logging

import (
	"regexp"
	"strings"
	"unicode"
)

const redacted = "[REDACTED]"

var keySegments = regexp.MustCompile(`[^a-z0-9]+`)

// redactor masks credentials and contact details in log key/value pairs.
// Contact records are personal data; log lines identify them by id only.
type redactor struct {
	sensitiveWords map[string]bool
}

func newRedactor() *redactor {
	words := []string{"secret", "password", "token", "auth", "authorization", "credential", "email", "phone"}
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return &redactor{sensitiveWords: m}
}

// redact returns a copy of pairs ([k1, v1, k2, v2, ...]) with the values of
// sensitive keys replaced.
func (r *redactor) redact(pairs []any) []any {
	if len(pairs) == 0 {
		return pairs
	}
	result := make([]any, len(pairs))
	copy(result, pairs)
	for i := 0; i+1 < len(result); i += 2 {
		key, ok := result[i].(string)
		if !ok {
			continue
		}
		if r.isSensitive(key) {
			result[i+1] = redacted
		}
	}
	return result
}

// isSensitive reports whether any segment of key, split on non-alphanumerics
// and camelCase boundaries, is a sensitive word.
func (r *redactor) isSensitive(key string) bool {
	for _, part := range keySegments.Split(splitCamel(key), -1) {
		if r.sensitiveWords[part] {
			return true
		}
	}
	return false
}

// splitCamel lower-cases s, inserting "_" where a lower-case letter or digit
// is followed by an upper-case one.
func splitCamel(s string) string {
	var b strings.Builder
	var prev rune
	for _, c := range s {
		if unicode.IsUpper(c) && (unicode.IsLower(prev) || unicode.IsDigit(prev)) {
			b.WriteByte('_')
		}
		b.WriteRune(unicode.ToLower(c))
		prev = c
	}
	return b.String()
}
