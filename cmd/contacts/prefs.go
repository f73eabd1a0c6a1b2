/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"fmt"
	"io"
	"slices"

	"github.com/cristianoliveira/contacts/cmd"
	"github.com/cristianoliveira/contacts/internal/prefs"
	"github.com/spf13/cobra"
)

const (
	prefsCommandLong = `Read and write the saved UI preferences.

USAGE:
    contacts prefs <subcommand>

SUBCOMMANDS:
    get [key]            Print one preference, or all of them
    set <key> <value>    Save a preference

KEYS:
    darkMode             true or false
    language             language code, e.g. en, es, de

EXAMPLES:
    contacts prefs get
    contacts prefs set darkMode true
    contacts prefs set language es`
)

type prefsClient interface {
	Prefs() (prefs.Store, error)
}

// NewPrefsCmd creates the prefs command with explicit dependencies.
func NewPrefsCmd(client prefsClient) *cobra.Command {
	if client == nil {
		panic("NewPrefsCmd: client dependency cannot be nil")
	}

	prefsCmd := &cobra.Command{
		Use:   "prefs",
		Short: "Manage saved preferences",
		Long:  prefsCommandLong,
	}
	prefsCmd.AddCommand(newPrefsGetCmd(client), newPrefsSetCmd(client))
	return prefsCmd
}

// newPrefsGetCmd creates the get subcommand.
func newPrefsGetCmd(client prefsClient) *cobra.Command {
	return &cobra.Command{
		Use:   "get [key]",
		Short: "Print preferences",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := ""
			if len(args) == 1 {
				key = args[0]
			}
			return runPrefsGet(client, key, cmd.OutOrStdout())
		},
	}
}

// newPrefsSetCmd creates the set subcommand.
func newPrefsSetCmd(client prefsClient) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Save a preference",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrefsSet(client, args[0], args[1])
		},
	}
}

func runPrefsGet(client prefsClient, key string, out io.Writer) error {
	store, err := client.Prefs()
	if err != nil {
		return fmt.Errorf("failed to open preferences: %w", err)
	}

	if key != "" {
		if !slices.Contains(prefs.Keys(), key) {
			return fmt.Errorf("%w: %s", prefs.ErrUnknownKey, key)
		}
		value, _, err := store.Get(key)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", key, err)
		}
		_, err = fmt.Fprintln(out, value)
		return err
	}

	all, err := store.All()
	if err != nil {
		return fmt.Errorf("failed to read preferences: %w", err)
	}
	for _, k := range prefs.SortedKeys(all) {
		if _, err := fmt.Fprintf(out, "%s=%s\n", k, all[k]); err != nil {
			return err
		}
	}
	return nil
}

func runPrefsSet(client prefsClient, key, value string) error {
	normalized, err := prefs.Normalize(key, value)
	if err != nil {
		return err
	}
	store, err := client.Prefs()
	if err != nil {
		return fmt.Errorf("failed to open preferences: %w", err)
	}
	if err := store.Set(key, normalized); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	cliHandler.Success(fmt.Sprintf("Saved %s=%s", key, normalized))
	return nil
}

// prefsCmd represents the prefs command
var prefsCmd = NewPrefsCmd(defaultDeps)

func init() {
	cmd.RootCmd.AddCommand(prefsCmd)
}
