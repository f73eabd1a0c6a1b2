// Package errors defines the error taxonomy of the contact manager and the
// handlers that surface messages on the console or in the TUI.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

// ErrConfirmationDeclined is returned when the user aborts a destructive action.
// It is returned before any state is touched.
var ErrConfirmationDeclined = stderrors.New("confirmation declined")

// NetworkError reports a failed call to the remote contact service: either a
// non-2xx status or a transport failure (StatusCode is 0 in that case).
type NetworkError struct {
	Op         string
	Method     string
	URL        string
	StatusCode int
	Body       string
	Err        error
}

// Error implements error.
func (e *NetworkError) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	b.WriteString(": ")
	if e.Method != "" {
		fmt.Fprintf(&b, "%s %s: ", e.Method, e.URL)
	}
	switch {
	case e.StatusCode != 0:
		fmt.Fprintf(&b, "HTTP %d %s", e.StatusCode, http.StatusText(e.StatusCode))
		if e.Body != "" {
			fmt.Fprintf(&b, ": %s", e.Body)
		}
	case e.Err != nil:
		b.WriteString(e.Err.Error())
	default:
		b.WriteString("request failed")
	}
	return b.String()
}

// Unwrap returns the transport error, if any.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsNetwork reports whether err is (or wraps) a NetworkError.
func IsNetwork(err error) bool {
	var netErr *NetworkError
	return stderrors.As(err, &netErr)
}

// ValidationError is a local form rule violation. It never reaches the network.
type ValidationError struct {
	// Summary is the human-readable summary shown above the form.
	Summary string
	// Fields maps a field name to its highest-priority message.
	Fields map[string]string
}

// Error implements error.
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Summary
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", name, e.Fields[name]))
	}
	return fmt.Sprintf("%s (%s)", e.Summary, strings.Join(parts, "; "))
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var valErr *ValidationError
	return stderrors.As(err, &valErr)
}

// IsConfirmationDeclined reports whether err is ErrConfirmationDeclined.
func IsConfirmationDeclined(err error) bool {
	return stderrors.Is(err, ErrConfirmationDeclined)
}
