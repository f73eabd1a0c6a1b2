package state

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cristianoliveira/contacts/internal/errors"
	"github.com/cristianoliveira/contacts/internal/form"
	"github.com/cristianoliveira/contacts/internal/i18n"
	"github.com/cristianoliveira/contacts/internal/tui/render"
)

// View renders the TUI.
func (m *Model) View() string {
	var s strings.Builder

	s.WriteString(m.renderTitle())
	if status := m.renderStatus(); status != "" {
		s.WriteString("\n")
		s.WriteString(status)
	}
	s.WriteString("\n")

	if m.uiState.Mode() == ModeDetail {
		s.WriteString(m.renderDetail())
	} else {
		formPane := m.renderFormPane()
		listPane := m.renderListPane()
		if m.wide() {
			s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, formPane, " ", listPane))
		} else {
			s.WriteString(lipgloss.JoinVertical(lipgloss.Left, formPane, listPane))
		}
	}

	s.WriteString("\n")
	s.WriteString(render.Footer(m.theme, render.FooterState{
		Help:  m.helpText(),
		Width: m.width(),
	}))
	return s.String()
}

func (m *Model) renderTitle() string {
	themeLabel := m.tr.Instant("theme.light", nil)
	if m.theme.Dark {
		themeLabel = m.tr.Instant("theme.dark", nil)
	}
	label := themeLabel + " · " + m.tr.Instant("language.name", nil)
	return render.Title(m.theme, m.tr.Instant("app.title", nil), label)
}

// renderStatus renders the controller messages and the local status line.
func (m *Model) renderStatus() string {
	st := m.ctrl.Status()
	parts := []string{}
	if msgs := render.Messages(m.theme, st.Success, st.Error); msgs != "" {
		parts = append(parts, msgs)
	}
	if m.hasStatusMessage {
		style := m.theme.Info
		switch m.statusMessageType {
		case errors.MessageTypeError:
			style = m.theme.Error
		case errors.MessageTypeWarning:
			style = m.theme.Error
		}
		parts = append(parts, style.Render(m.statusMessage))
	}
	return strings.Join(parts, "\n")
}

func (m *Model) renderFormPane() string {
	f := m.ctrl.Form()
	inForm := m.uiState.Mode() == ModeForm
	rows := make([]string, 0, len(textFields)+2)
	for i, field := range textFields {
		rows = append(rows, render.Field(m.theme, render.FieldState{
			Label:    f.Label(field),
			Input:    m.inputs[i].View(),
			Error:    f.FieldError(field),
			Focused:  inForm && m.focus == i,
			Required: field.Required(),
		}))
	}
	rows = append(rows, render.Checkbox(m.theme, f.Label(form.FieldActive), f.Draft().Active,
		inForm && m.focusedField() == form.FieldActive))

	loading := m.ctrl.Status().Loading
	label := m.tr.Instant("form.submit", nil)
	if loading {
		label = m.tr.Instant("form.working", nil)
	}
	rows = append(rows, render.Button(m.theme, label, loading))

	return render.Pane(m.theme, strings.Join(rows, "\n\n"), m.formPaneWidth(), inForm)
}

func (m *Model) renderListPane() string {
	list := m.ctrl.List()
	loading := m.ctrl.Status().Loading
	paneWidth := m.listPaneWidth()
	width := paneWidth - panePadding

	title := m.theme.Title.Render(m.tr.Instant("list.title", nil))
	if loading {
		title += " " + m.spinner.View()
	}
	lines := []string{title}

	if m.uiState.Mode() == ModeSearch {
		lines = append(lines, m.search.View())
	} else if term := list.SearchTerm(); term != "" {
		lines = append(lines, m.theme.Muted.Render(m.tr.Instant("list.search", nil)+": "+term))
	}

	opts := list.Sort()
	lines = append(lines, m.theme.Muted.Render(m.tr.Instant("list.sort", i18n.Params{
		"field":     m.tr.Instant("sort."+opts.Field.String(), nil),
		"direction": m.tr.Instant("sort."+opts.Direction.String(), nil),
	})), "")

	switch {
	case loading && list.Len() == 0:
		lines = append(lines, render.Skeleton(m.theme, skeletonRows, width))
	case list.Len() == 0:
		lines = append(lines, render.EmptyState(m.theme,
			m.tr.Instant("list.emptyTitle", nil),
			m.tr.Instant("list.emptyHint", nil)))
	case list.FilteredCount() == 0:
		lines = append(lines, render.EmptyState(m.theme,
			m.tr.Instant("list.noMatches", i18n.Params{"term": list.SearchTerm()}), ""))
	default:
		lines = append(lines, m.renderTable(width)...)
	}

	if id, ok := m.uiState.PendingDelete(); ok && m.uiState.Mode() == ModeConfirm {
		prompt := m.tr.Instant("messages.confirmDelete", nil)
		if c, found := m.selected(); found && c.ID == id {
			prompt += " (" + c.Name + ")"
		}
		lines = append(lines, "", m.theme.Error.Render(prompt))
	}

	inList := m.uiState.Mode() != ModeForm
	return render.Pane(m.theme, strings.Join(lines, "\n"), paneWidth, inList)
}

func (m *Model) renderTable(width int) []string {
	list := m.ctrl.List()
	lines := []string{render.Header(m.theme, render.HeaderState{
		ID:     m.tr.Instant("sort.id", nil),
		Name:   m.tr.Instant("sort.name", nil),
		Email:  m.tr.Instant("sort.email", nil),
		Phone:  m.tr.Instant("sort.phone", nil),
		Status: m.tr.Instant("sort.isActive", nil),
		Width:  width,
	})}

	activeLabel := m.tr.Instant("list.active", nil)
	inactiveLabel := m.tr.Instant("list.inactive", nil)
	cursor := m.uiState.GetCursor()
	for i, c := range list.Page() {
		lines = append(lines, render.ContactRow(m.theme, render.RowState{
			Contact:       c,
			Width:         width,
			Selected:      i == cursor,
			ActiveLabel:   activeLabel,
			InactiveLabel: inactiveLabel,
		}))
	}

	lines = append(lines, "",
		m.theme.Muted.Render(m.tr.Instant("list.showing", i18n.Params{
			"from":  list.FirstVisible(),
			"to":    list.LastVisible(),
			"total": list.FilteredCount(),
		})+"  "+m.tr.Instant("list.page", i18n.Params{
			"page":  list.DisplayPage(),
			"pages": list.TotalPages(),
		})))
	return lines
}

func (m *Model) renderDetail() string {
	title := m.theme.Title.Render(m.tr.Instant("detail.title", i18n.Params{"name": m.detail.Name}))
	return lipgloss.JoinVertical(lipgloss.Left, title, m.uiState.GetViewport().View())
}

// detailContent renders the selected contact for the viewport.
func (m *Model) detailContent() string {
	status := m.tr.Instant("list.inactive", nil)
	if m.detail.IsActive {
		status = m.tr.Instant("list.active", nil)
	}
	return render.Detail(m.theme, render.DetailState{
		Contact: m.detail,
		Labels: map[string]string{
			"id":     m.tr.Instant("sort.id", nil),
			"name":   m.tr.Instant("fields.name", nil),
			"email":  m.tr.Instant("fields.email", nil),
			"phone":  m.tr.Instant("fields.phone", nil),
			"status": m.tr.Instant("sort.isActive", nil),
		},
		StatusLabel: status,
	})
}

func (m *Model) helpText() string {
	switch m.uiState.Mode() {
	case ModeForm:
		return m.tr.Instant("help.form", nil)
	case ModeSearch:
		return m.tr.Instant("help.search", nil)
	case ModeConfirm:
		return m.tr.Instant("help.confirm", nil)
	case ModeDetail:
		return m.tr.Instant("detail.close", nil)
	default:
		return m.tr.Instant("help.list", nil)
	}
}
