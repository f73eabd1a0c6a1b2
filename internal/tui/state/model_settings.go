package state

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/contacts/internal/colors"
	"github.com/cristianoliveira/contacts/internal/i18n"
	"github.com/cristianoliveira/contacts/internal/prefs"
	"github.com/cristianoliveira/contacts/internal/tui/render"
)

// toggleTheme switches between the dark and the light theme and saves the choice.
func (m *Model) toggleTheme() tea.Cmd {
	dark := !m.theme.Dark
	m.theme = render.ThemeFor(dark)
	m.applyTheme()
	if err := prefs.SetDarkMode(m.prefs, dark); err != nil {
		colors.StructuredWarn("tui", "save_preference", "failed", err, prefs.KeyDarkMode, nil)
		return m.showStatus(m.errorHandler.Warning, m.prefsSaveFailed(err))
	}
	return nil
}

// cycleLanguage switches to the next bundled language and saves the choice.
func (m *Model) cycleLanguage() tea.Cmd {
	code := m.tr.Next()
	m.applyLanguage()
	if err := prefs.SetLanguage(m.prefs, code); err != nil {
		colors.StructuredWarn("tui", "save_preference", "failed", err, prefs.KeyLanguage, nil)
		return m.showStatus(m.errorHandler.Warning, m.prefsSaveFailed(err))
	}
	return nil
}

func (m *Model) prefsSaveFailed(err error) string {
	return m.tr.Instant("messages.prefsSaveFailed", i18n.Params{"error": err.Error()})
}

// Theme returns the active theme.
func (m *Model) Theme() render.Theme {
	return m.theme
}

// Language returns the active language code.
func (m *Model) Language() string {
	return m.tr.Current()
}
