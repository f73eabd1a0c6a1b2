/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cristianoliveira/contacts/cmd"
	"github.com/cristianoliveira/contacts/internal/colors"
	"github.com/cristianoliveira/contacts/internal/prefs"
	"github.com/cristianoliveira/contacts/internal/tui/state"
	"github.com/spf13/cobra"
)

const tuiCommandLong = `Open the interactive contact manager.

Running contacts without a subcommand does the same.

KEYS (list):
    j/k, up/down         Move the selection
    h/l, pgup/pgdown     Previous/next page
    g/G                  First/last page
    +/-                  Change page size
    s/o                  Cycle sort field / flip order
    /                    Search
    a, tab               Focus the form
    enter                Show details
    d                    Delete the selected contact
    t/L                  Toggle theme / cycle language
    r                    Refresh
    q                    Quit`

// runProgram runs the bubbletea program. Replaced in tests.
var runProgram = func(ctx context.Context, m *state.Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	m.Bind(p.Send)
	_, err := p.Run()
	return err
}

// NewTUICmd creates the tui command with explicit dependencies.
func NewTUICmd(d deps) *cobra.Command {
	if d == nil {
		panic("NewTUICmd: deps cannot be nil")
	}

	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive contact manager",
		Long:  tuiCommandLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), d)
		},
	}
}

func runTUI(ctx context.Context, d deps) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctrl, bundle, err := newController(d)
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}

	store, err := d.Prefs()
	if err != nil {
		colors.Warning(fmt.Sprintf("preferences unavailable, changes will not be saved: %v", err))
		store = prefs.NewMemoryStore()
	}

	m, err := state.NewModel(state.Options{
		Controller: ctrl,
		Bundle:     bundle,
		Prefs:      store,
		Context:    ctx,
		Language:   cmd.LanguageOverride(),
	})
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}

	// Log lines on stderr would corrupt the alternate screen.
	colors.DisableStructuredLogging()
	return runProgram(ctx, m)
}

// tuiCmd represents the tui command
var tuiCmd = NewTUICmd(defaultDeps)

func init() {
	cmd.RootCmd.AddCommand(tuiCmd)
	cmd.RootCmd.RunE = tuiCmd.RunE
}
