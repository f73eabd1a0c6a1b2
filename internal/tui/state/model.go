package state

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/contacts/internal/domain"
	"github.com/cristianoliveira/contacts/internal/errors"
	"github.com/cristianoliveira/contacts/internal/form"
	"github.com/cristianoliveira/contacts/internal/i18n"
	"github.com/cristianoliveira/contacts/internal/prefs"
	"github.com/cristianoliveira/contacts/internal/sync"
	"github.com/cristianoliveira/contacts/internal/tui/render"
)

const (
	headerFooterLines     = 4
	defaultViewportWidth  = 80
	defaultViewportHeight = 22
	errorClearDuration    = 5 * time.Second
	skeletonRows          = 5
	formWidth             = 50
	minPaneWidth          = 20
	panePadding           = 2
	wideLayoutWidth       = 120
	nameCharLimit         = 100
	emailCharLimit        = 254
	phoneCharLimit        = 16
)

// textFields are the form fields edited through a text input, in focus order.
// The active checkbox follows them.
var textFields = []form.Field{form.FieldName, form.FieldEmail, form.FieldPhone}

// Options configure NewModel. Controller and Bundle are required.
type Options struct {
	Controller *sync.Controller
	Bundle     *i18n.Bundle
	Prefs      prefs.Store
	Context    context.Context
	// Language, when set, wins over the saved language preference.
	Language string
}

// Model represents the TUI model for bubbletea.
type Model struct {
	uiState           *UIState
	errorHandler      *errors.TUIHandler
	statusMessage     string
	statusMessageType errors.MessageType
	hasStatusMessage  bool

	ctrl  *sync.Controller
	tr    *i18n.Bundle
	prefs prefs.Store
	ctx   context.Context

	theme   render.Theme
	inputs  []textinput.Model
	focus   int
	search  textinput.Model
	spinner spinner.Model
	detail  domain.Contact
}

// NewModel creates a new TUI model. Saved preferences select the theme and
// the language.
func NewModel(opts Options) (*Model, error) {
	if opts.Controller == nil {
		return nil, fmt.Errorf("tui: controller is required")
	}
	if opts.Bundle == nil {
		return nil, fmt.Errorf("tui: translation bundle is required")
	}
	store := opts.Prefs
	if store == nil {
		store = prefs.NewMemoryStore()
	}
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	m := &Model{
		uiState: NewUIState(),
		ctrl:    opts.Controller,
		tr:      opts.Bundle,
		prefs:   store,
		ctx:     ctx,
		theme:   render.ThemeFor(prefs.DarkMode(store)),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	lang := opts.Language
	if lang == "" {
		lang = prefs.Language(store, m.tr.Default())
	}
	m.tr.Use(lang)

	m.errorHandler = errors.NewTUIHandler(func(msg errors.Message) {
		m.statusMessage = msg.Text
		m.statusMessageType = msg.Type
		m.hasStatusMessage = msg.Text != ""
	})

	limits := map[form.Field]int{
		form.FieldName:  nameCharLimit,
		form.FieldEmail: emailCharLimit,
		form.FieldPhone: phoneCharLimit,
	}
	for _, field := range textFields {
		ti := textinput.New()
		ti.CharLimit = limits[field]
		ti.Prompt = "> "
		m.inputs = append(m.inputs, ti)
	}
	m.search = textinput.New()
	m.search.Prompt = "/ "
	m.applyLanguage()
	m.applyTheme()

	return m, nil
}

// Bind forwards controller changes to the running program. send is usually
// (*tea.Program).Send.
func (m *Model) Bind(send func(tea.Msg)) {
	m.ctrl.OnChange(func() {
		// Changes can be raised from inside Update; never block the event loop.
		go send(ChangedMsg{})
	})
}

// Init starts the spinner and the first fetch.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, textinput.Blink, m.fetchCmd())
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case tea.WindowSizeMsg:
		return m.handleWindowSizeMsg(msg)
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case ChangedMsg:
		m.uiState.ClampCursor(len(m.ctrl.List().Page()))
		return m, nil
	case opDoneMsg:
		return m.handleOpDone(msg)
	case errorMsg:
		if m.errorHandler.ClearIfOlder(msg.cutoff) {
			m.statusMessage = ""
			m.hasStatusMessage = false
		}
		return m, nil
	}
	return m, m.updateFocusedInput(msg)
}

func (m *Model) handleWindowSizeMsg(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.uiState.SetWidth(msg.Width)
	m.uiState.SetHeight(msg.Height)
	m.uiState.UpdateViewportSize()
	if m.uiState.Mode() == ModeDetail {
		m.uiState.GetViewport().SetContent(m.detailContent())
	}
	return m, nil
}

func (m *Model) handleOpDone(msg opDoneMsg) (tea.Model, tea.Cmd) {
	m.uiState.ClampCursor(len(m.ctrl.List().Page()))
	switch msg.op {
	case opCreate:
		if msg.err == nil {
			m.syncInputsFromForm()
			m.setFocus(0)
		}
	case opDelete:
		if errors.IsConfirmationDeclined(msg.err) {
			return m, m.showStatus(m.errorHandler.Info, m.tr.Instant("messages.cancelled", nil))
		}
	}
	return m, nil
}

// showStatus records text on the local status line and schedules its removal.
func (m *Model) showStatus(level func(string), text string) tea.Cmd {
	level(text)
	latest, ok := m.errorHandler.Latest()
	if !ok {
		return nil
	}
	return errorMsgAfter(errorClearDuration, latest)
}

// selected returns the contact under the cursor.
func (m *Model) selected() (domain.Contact, bool) {
	page := m.ctrl.List().Page()
	cursor := m.uiState.GetCursor()
	if cursor < 0 || cursor >= len(page) {
		return domain.Contact{}, false
	}
	return page[cursor], true
}

// setFocus moves form focus to index i; len(textFields) is the checkbox.
func (m *Model) setFocus(i int) {
	total := len(textFields) + 1
	i = ((i % total) + total) % total
	m.focus = i
	for idx := range m.inputs {
		if idx == i && m.uiState.Mode() == ModeForm {
			m.inputs[idx].Focus()
			m.inputs[idx].PromptStyle = m.theme.Title
			continue
		}
		m.inputs[idx].Blur()
		m.inputs[idx].PromptStyle = m.theme.Muted
	}
}

// focusedField returns the form field that has focus.
func (m *Model) focusedField() form.Field {
	if m.focus < len(textFields) {
		return textFields[m.focus]
	}
	return form.FieldActive
}

// syncInputsFromForm copies the form values into the text inputs.
func (m *Model) syncInputsFromForm() {
	f := m.ctrl.Form()
	for i, field := range textFields {
		m.inputs[i].SetValue(f.Value(field))
	}
}

func (m *Model) updateFocusedInput(msg tea.Msg) tea.Cmd {
	switch m.uiState.Mode() {
	case ModeForm:
		if m.focus < len(m.inputs) {
			var cmd tea.Cmd
			m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
			return cmd
		}
	case ModeSearch:
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return cmd
	}
	return nil
}

func (m *Model) applyTheme() {
	m.spinner.Style = m.theme.Title
	m.search.PromptStyle = m.theme.Title
	m.setFocus(m.focus)
}

func (m *Model) applyLanguage() {
	for i, field := range textFields {
		m.inputs[i].Placeholder = m.ctrl.Form().Label(field)
	}
	m.search.Placeholder = m.tr.Instant("list.search", nil)
}

// width returns the usable terminal width.
func (m *Model) width() int {
	return m.uiState.GetWidth()
}

// wide reports whether the form and the list fit side by side.
func (m *Model) wide() bool {
	return m.width() >= wideLayoutWidth
}

// listPaneWidth returns the width of the list pane, border excluded.
func (m *Model) listPaneWidth() int {
	w := m.width() - 2
	if m.wide() {
		w -= formWidth + 3
	}
	if w < minPaneWidth {
		return minPaneWidth
	}
	return w
}

// formPaneWidth returns the width of the form pane, border excluded.
func (m *Model) formPaneWidth() int {
	if m.wide() {
		return formWidth
	}
	if w := m.width() - 2; w > minPaneWidth {
		return w
	}
	return minPaneWidth
}

var _ tea.Model = (*Model)(nil)
