// Package state holds the BubbleTea model of the contacts TUI and the
// messages it exchanges with its commands.
package state

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/contacts/internal/domain"
	"github.com/cristianoliveira/contacts/internal/errors"
)

// ChangedMsg is sent when the sync controller changed state outside Update,
// e.g. when a success message clears itself.
type ChangedMsg struct{}

// op identifies the controller call a command ran.
type op int

const (
	opFetch op = iota
	opCreate
	opDelete
)

// opDoneMsg is sent when a controller call settles.
type opDoneMsg struct {
	op      op
	contact domain.Contact
	id      int
	err     error
}

// errorMsg clears the local status line if nothing newer than cutoff was shown.
type errorMsg struct {
	cutoff time.Time
}

// errorMsgAfter returns a command that clears msg from the local status line
// after d. A message recorded later survives.
func errorMsgAfter(d time.Duration, msg errors.Message) tea.Cmd {
	cutoff := msg.Timestamp.Add(time.Nanosecond)
	return tea.Tick(d, func(time.Time) tea.Msg {
		return errorMsg{cutoff: cutoff}
	})
}
