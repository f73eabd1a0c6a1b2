package state

import (
	tea "github.com/charmbracelet/bubbletea"
)

// fetchCmd reloads every contact.
func (m *Model) fetchCmd() tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		return opDoneMsg{op: opFetch, err: ctrl.FetchAll(ctx)}
	}
}

// submitCmd validates the form and creates the contact.
func (m *Model) submitCmd() tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		created, err := ctrl.SubmitForm(ctx)
		return opDoneMsg{op: opCreate, contact: created, err: err}
	}
}

// deleteCmd deletes the contact with id; approved is the user's answer.
func (m *Model) deleteCmd(id int, approved bool) tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		err := ctrl.Delete(ctx, id, func(int) bool { return approved })
		return opDoneMsg{op: opDelete, id: id, err: err}
	}
}
