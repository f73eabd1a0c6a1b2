package state

import (
	"github.com/charmbracelet/bubbles/viewport"
)

// Mode selects which pane receives key input.
type Mode int

const (
	ModeList Mode = iota
	ModeForm
	ModeSearch
	ModeConfirm
	ModeDetail
)

// String returns the lower-case mode name.
func (m Mode) String() string {
	switch m {
	case ModeList:
		return "list"
	case ModeForm:
		return "form"
	case ModeSearch:
		return "search"
	case ModeConfirm:
		return "confirm"
	case ModeDetail:
		return "detail"
	default:
		return "unknown"
	}
}

// UIState manages all UI-specific state for the TUI.
// This includes the viewport used by the detail view, the cursor on the
// current page, the input mode and the contact awaiting delete confirmation.
type UIState struct {
	viewport viewport.Model
	width    int
	height   int

	cursor int
	mode   Mode

	pendingDelete int
	hasPending    bool
}

// NewUIState creates a new UIState instance with default values.
func NewUIState() *UIState {
	return &UIState{
		viewport: viewport.New(defaultViewportWidth, defaultViewportHeight),
		width:    defaultViewportWidth,
		height:   defaultViewportHeight,
		mode:     ModeList,
	}
}

// GetViewport returns the current viewport model.
func (u *UIState) GetViewport() *viewport.Model {
	return &u.viewport
}

// GetWidth returns the current width of the UI.
func (u *UIState) GetWidth() int {
	return u.width
}

// SetWidth updates the width of the UI.
func (u *UIState) SetWidth(width int) {
	u.width = width
	if width <= 0 {
		u.width = defaultViewportWidth
	}
}

// GetHeight returns the current height of the UI.
func (u *UIState) GetHeight() int {
	return u.height
}

// SetHeight updates the height of the UI.
func (u *UIState) SetHeight(height int) {
	u.height = height
	if height <= 0 {
		u.height = defaultViewportHeight
	}
}

// UpdateViewportSize resizes the detail viewport to the current dimensions.
func (u *UIState) UpdateViewportSize() {
	viewportHeight := u.height - headerFooterLines
	if viewportHeight < 1 {
		viewportHeight = 1
	}
	u.viewport = viewport.New(u.width, viewportHeight)
}

// GetCursor returns the cursor position on the current page.
func (u *UIState) GetCursor() int {
	return u.cursor
}

// SetCursor updates the cursor position.
func (u *UIState) SetCursor(cursor int) {
	u.cursor = cursor
	if u.cursor < 0 {
		u.cursor = 0
	}
}

// ClampCursor keeps the cursor inside a page of n rows.
func (u *UIState) ClampCursor(n int) {
	if n <= 0 {
		u.cursor = 0
		return
	}
	if u.cursor >= n {
		u.cursor = n - 1
	}
	if u.cursor < 0 {
		u.cursor = 0
	}
}

// ResetCursor moves the cursor to the first row.
func (u *UIState) ResetCursor() {
	u.cursor = 0
}

// Mode returns the active input mode.
func (u *UIState) Mode() Mode {
	return u.mode
}

// SetMode switches the input mode. Leaving confirm mode drops the pending delete.
func (u *UIState) SetMode(mode Mode) {
	if mode != ModeConfirm {
		u.hasPending = false
		u.pendingDelete = 0
	}
	u.mode = mode
}

// RequestDelete enters confirm mode for the contact with id.
func (u *UIState) RequestDelete(id int) {
	u.mode = ModeConfirm
	u.pendingDelete = id
	u.hasPending = true
}

// PendingDelete returns the contact awaiting confirmation.
func (u *UIState) PendingDelete() (int, bool) {
	return u.pendingDelete, u.hasPending
}
