/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/cristianoliveira/contacts/cmd"
	"github.com/cristianoliveira/contacts/internal/domain"
	apperrors "github.com/cristianoliveira/contacts/internal/errors"
	"github.com/cristianoliveira/contacts/internal/form"
	"github.com/spf13/cobra"
)

const addCommandLong = `Add a contact.

The input is validated before anything is sent: name needs at least 2
characters, phone must look like +14155552671 and email, when given, must be
a valid address.

USAGE:
    contacts add --name <name> --phone <phone> [OPTIONS]

OPTIONS:
    --name <name>        Contact name (required)
    --phone <phone>      Phone number in E.164 form (required)
    --email <email>      Email address
    --inactive           Store the contact as inactive
    -h, --help           Show this help`

// NewAddCmd creates the add command with explicit dependencies.
func NewAddCmd(d deps) *cobra.Command {
	if d == nil {
		panic("NewAddCmd: deps cannot be nil")
	}

	var inactive bool
	draft := domain.DefaultDraft()
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a contact",
		Long:  addCommandLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			input := draft
			input.Active = !inactive
			return runAdd(cmd.Context(), d, input)
		},
	}

	flags := addCmd.Flags()
	flags.StringVar(&draft.Name, "name", "", "contact name")
	flags.StringVar(&draft.Phone, "phone", "", "phone number (E.164)")
	flags.StringVar(&draft.Email, "email", "", "email address")
	flags.BoolVar(&inactive, "inactive", false, "store the contact as inactive")
	return addCmd
}

func runAdd(ctx context.Context, d deps, draft domain.ContactDraft) error {
	ctrl, _, err := newController(d)
	if err != nil {
		return fmt.Errorf("add: %w", err)
	}
	defer ctrl.Close()

	f := ctrl.Form()
	f.Set(form.FieldName, draft.Name)
	f.Set(form.FieldEmail, draft.Email)
	f.Set(form.FieldPhone, draft.Phone)
	f.Set(form.FieldActive, strconv.FormatBool(draft.Active))

	created, err := ctrl.SubmitForm(ctx)
	if err != nil {
		if apperrors.IsValidation(err) {
			return err
		}
		return fmt.Errorf("%s: %w", ctrl.Status().Error, err)
	}

	st := ctrl.Status()
	cliHandler.Success(fmt.Sprintf("%s (id %s)", st.Success, created.IDString()))
	if st.Error != "" {
		cliHandler.Warning(st.Error)
	}
	return nil
}

// addCmd represents the add command
var addCmd = NewAddCmd(defaultDeps)

func init() {
	cmd.RootCmd.AddCommand(addCmd)
}
