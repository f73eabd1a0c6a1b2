package errors

// ErrorHandler is the interface for surfacing user-facing messages.
// Different implementations render them differently depending on context.
type ErrorHandler interface {
	Error(msg string)
	Warning(msg string)
	Info(msg string)
	Success(msg string)
}

// ColorOutput prints colored console lines.
type ColorOutput interface {
	Error(msgs ...string)
	Warning(msgs ...string)
	Info(msgs ...string)
	Success(msgs ...string)
}

// CLIHandler prints messages to stdout/stderr using the colors package.
type CLIHandler struct {
	colors ColorOutput
}

var _ ErrorHandler = (*CLIHandler)(nil)

// NewCLIHandler creates a CLIHandler writing through colors.
func NewCLIHandler(colors ColorOutput) *CLIHandler {
	return &CLIHandler{colors: colors}
}

func (h *CLIHandler) Error(msg string) {
	if msg == "" {
		return
	}
	h.colors.Error(msg)
}

func (h *CLIHandler) Warning(msg string) {
	if msg == "" {
		return
	}
	h.colors.Warning(msg)
}

func (h *CLIHandler) Info(msg string) {
	if msg == "" {
		return
	}
	h.colors.Info(msg)
}

func (h *CLIHandler) Success(msg string) {
	if msg == "" {
		return
	}
	h.colors.Success(msg)
}
