/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cristianoliveira/contacts/cmd"
	apperrors "github.com/cristianoliveira/contacts/internal/errors"
	"github.com/cristianoliveira/contacts/internal/sync"
	"github.com/spf13/cobra"
)

const deleteCommandLong = `Delete a contact by id.

Asks for confirmation on stdin unless --yes is given.

USAGE:
    contacts delete <id> [OPTIONS]

OPTIONS:
    -y, --yes            Delete without confirmation
    -h, --help           Show this help`

// NewDeleteCmd creates the delete command with explicit dependencies.
func NewDeleteCmd(d deps) *cobra.Command {
	if d == nil {
		panic("NewDeleteCmd: deps cannot be nil")
	}

	var yes bool
	deleteCmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a contact",
		Long:  deleteCommandLong,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(cmd.Context(), d, args[0], yes, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	deleteCmd.Flags().BoolVarP(&yes, "yes", "y", false, "delete without confirmation")
	return deleteCmd
}

func runDelete(ctx context.Context, d deps, arg string, yes bool, in io.Reader, out io.Writer) error {
	id, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || id <= 0 {
		return fmt.Errorf("delete: invalid id %q", arg)
	}

	ctrl, bundle, err := newController(d)
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	defer ctrl.Close()

	confirm := sync.Confirmer(sync.AlwaysConfirm)
	if !yes {
		confirm = promptConfirm(in, out, bundle.Instant("messages.confirmDelete", nil))
	}

	err = ctrl.Delete(ctx, id, confirm)
	switch {
	case apperrors.IsConfirmationDeclined(err):
		cliHandler.Info(bundle.Instant("messages.cancelled", nil))
		return nil
	case err != nil:
		return fmt.Errorf("%s: %w", ctrl.Status().Error, err)
	}

	cliHandler.Success(ctrl.Status().Success)
	return nil
}

// promptConfirm asks question on out and approves on "y" or "yes".
// Unreadable input declines.
func promptConfirm(in io.Reader, out io.Writer, question string) sync.Confirmer {
	return func(id int) bool {
		fmt.Fprintf(out, "%s [#%d] (y/N): ", question, id)
		answer, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && answer == "" {
			return false
		}
		answer = strings.TrimSpace(strings.ToLower(answer))
		return answer == "y" || answer == "yes"
	}
}

// deleteCmd represents the delete command
var deleteCmd = NewDeleteCmd(defaultDeps)

func init() {
	cmd.RootCmd.AddCommand(deleteCmd)
}
