package state

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/contacts/internal/form"
)

// handleKeyMsg dispatches a key press to the handler of the active mode.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.handleCtrlC()
	}
	switch m.uiState.Mode() {
	case ModeForm:
		return m.handleFormKey(msg)
	case ModeSearch:
		return m.handleSearchKey(msg)
	case ModeConfirm:
		return m.handleConfirmKey(msg)
	case ModeDetail:
		return m.handleDetailKey(msg)
	default:
		return m.handleListKey(msg)
	}
}

// handleCtrlC handles Ctrl+C to exit the TUI.
func (m *Model) handleCtrlC() (tea.Model, tea.Cmd) {
	return m, tea.Quit
}

func (m *Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	list := m.ctrl.List()
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		m.uiState.SetCursor(m.uiState.GetCursor() - 1)
	case "down", "j":
		m.uiState.SetCursor(m.uiState.GetCursor() + 1)
		m.uiState.ClampCursor(len(list.Page()))
	case "left", "h", "pgup":
		list.PrevPage()
		m.uiState.ResetCursor()
	case "right", "l", "pgdown":
		list.NextPage()
		m.uiState.ResetCursor()
	case "home", "g":
		list.GoToPage(1)
		m.uiState.ResetCursor()
	case "end", "G":
		list.GoToPage(list.TotalPages())
		m.uiState.ResetCursor()
	case "+":
		list.SetPageSize(list.PageSize() + 1)
		m.uiState.ResetCursor()
	case "-":
		if list.PageSize() > 1 {
			list.SetPageSize(list.PageSize() - 1)
			m.uiState.ResetCursor()
		}
	case "s":
		list.CycleSortField()
	case "o":
		list.ToggleDirection()
	case "/":
		m.uiState.SetMode(ModeSearch)
		m.search.SetValue(list.SearchTerm())
		m.search.CursorEnd()
		return m, m.search.Focus()
	case "enter":
		return m.openDetail()
	case "d", "delete":
		if m.ctrl.Status().Loading {
			return m, nil
		}
		if c, ok := m.selected(); ok {
			m.uiState.RequestDelete(c.ID)
		}
	case "a", "tab":
		m.uiState.SetMode(ModeForm)
		m.setFocus(0)
		return m, textinput.Blink
	case "t":
		return m, m.toggleTheme()
	case "L":
		return m, m.cycleLanguage()
	case "r":
		return m, m.fetchCmd()
	case "esc":
		m.ctrl.DismissMessages()
	}
	return m, nil
}

func (m *Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.ctrl.Form()
	switch msg.String() {
	case "esc":
		f.Touch(m.focusedField())
		m.uiState.SetMode(ModeList)
		m.setFocus(m.focus)
		return m, nil
	case "tab", "down":
		f.Touch(m.focusedField())
		m.setFocus(m.focus + 1)
		return m, nil
	case "shift+tab", "up":
		f.Touch(m.focusedField())
		m.setFocus(m.focus - 1)
		return m, nil
	case "enter":
		return m.handleSubmit()
	case " ":
		if m.focusedField() == form.FieldActive {
			f.ToggleActive()
			return m, nil
		}
	}
	if m.focus >= len(m.inputs) {
		return m, nil
	}

	before := m.inputs[m.focus].Value()
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if after := m.inputs[m.focus].Value(); after != before {
		f.Set(textFields[m.focus], after)
	}
	return m, cmd
}

// handleSubmit submits the form unless a request is already in flight.
func (m *Model) handleSubmit() (tea.Model, tea.Cmd) {
	if m.ctrl.Status().Loading {
		return m, nil
	}
	m.ctrl.Form().Touch(m.focusedField())
	return m, m.submitCmd()
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.search.Blur()
		m.uiState.SetMode(ModeList)
		return m, nil
	case "esc":
		m.search.SetValue("")
		m.search.Blur()
		m.ctrl.List().SetSearchTerm("")
		m.uiState.SetMode(ModeList)
		m.uiState.ResetCursor()
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if after := m.search.Value(); after != before {
		m.ctrl.List().SetSearchTerm(after)
		m.uiState.ResetCursor()
	}
	return m, cmd
}

func (m *Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	id, ok := m.uiState.PendingDelete()
	if !ok {
		m.uiState.SetMode(ModeList)
		return m, nil
	}
	switch msg.String() {
	case "y", "Y":
		// A request may have started after the prompt opened.
		if m.ctrl.Status().Loading {
			return m, nil
		}
		m.uiState.SetMode(ModeList)
		return m, m.deleteCmd(id, true)
	case "n", "N", "esc", "q":
		m.uiState.SetMode(ModeList)
		return m, m.deleteCmd(id, false)
	}
	return m, nil
}

func (m *Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter", "q":
		m.uiState.SetMode(ModeList)
		return m, nil
	}
	var cmd tea.Cmd
	vp := m.uiState.GetViewport()
	*vp, cmd = vp.Update(msg)
	return m, cmd
}

// openDetail shows the contact under the cursor in the viewport.
func (m *Model) openDetail() (tea.Model, tea.Cmd) {
	c, ok := m.selected()
	if !ok {
		return m, nil
	}
	m.detail = c
	m.uiState.SetMode(ModeDetail)
	m.uiState.UpdateViewportSize()
	m.uiState.GetViewport().SetContent(m.detailContent())
	return m, nil
}
