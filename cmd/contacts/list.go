/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"context"
	"fmt"
	"io"

	"github.com/cristianoliveira/contacts/cmd"
	"github.com/cristianoliveira/contacts/internal/domain"
	"github.com/cristianoliveira/contacts/internal/format"
	"github.com/cristianoliveira/contacts/internal/i18n"
	"github.com/spf13/cobra"
)

const listCommandLong = `List contacts from the contact service.

The whole collection is fetched, then filtered, sorted and paginated locally.

USAGE:
    contacts list [OPTIONS]

OPTIONS:
    --search <term>      Case-insensitive match on name, email and phone
    --sort <field>       Sort by id, name, email, phone or isActive
    --order <dir>        Sort direction: asc or desc
    --page <n>           Page to show (clamped to the last page)
    --page-size <n>      Contacts per page (default from page_size)
    --format <type>      Output format: table, simple, compact, json
    -h, --help           Show this help

EXAMPLES:
    contacts list --search ana
    contacts list --sort phone --order desc --page 2`

type listOptions struct {
	search   string
	sortBy   string
	order    string
	format   string
	page     int
	pageSize int
}

// NewListCmd creates the list command with explicit dependencies.
func NewListCmd(d deps) *cobra.Command {
	if d == nil {
		panic("NewListCmd: deps cannot be nil")
	}

	var opts listOptions
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List contacts",
		Long:  listCommandLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd.Context(), d, opts, cmd.OutOrStdout())
		},
	}

	flags := listCmd.Flags()
	flags.StringVar(&opts.search, "search", "", "filter by name, email or phone")
	flags.StringVar(&opts.sortBy, "sort", "", "sort field (id, name, email, phone, isActive)")
	flags.StringVar(&opts.order, "order", "", "sort direction (asc, desc)")
	flags.StringVar(&opts.format, "format", string(format.FormatterTypeTable), "output format (table, simple, compact, json)")
	flags.IntVar(&opts.page, "page", 1, "page to show")
	flags.IntVar(&opts.pageSize, "page-size", 0, "contacts per page")
	return listCmd
}

func runList(ctx context.Context, d deps, opts listOptions, out io.Writer) error {
	formatterType, err := format.ParseFormatterType(opts.format)
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}
	if opts.page < 1 {
		return fmt.Errorf("list: page must be at least 1, got %d", opts.page)
	}
	if opts.pageSize < 0 {
		return fmt.Errorf("list: page-size must be positive, got %d", opts.pageSize)
	}

	ctrl, bundle, err := newController(d)
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}
	defer ctrl.Close()

	list := ctrl.List()
	sortOpts := list.Sort()
	if opts.sortBy != "" {
		if sortOpts.Field, err = domain.ParseSortField(opts.sortBy); err != nil {
			return fmt.Errorf("list: %w", err)
		}
	}
	if opts.order != "" {
		if sortOpts.Direction, err = domain.ParseSortDirection(opts.order); err != nil {
			return fmt.Errorf("list: %w", err)
		}
	}
	list.SetSort(sortOpts.Field, sortOpts.Direction)
	if opts.pageSize > 0 {
		list.SetPageSize(opts.pageSize)
	}

	if err := ctrl.FetchAll(ctx); err != nil {
		return fmt.Errorf("%s: %w", ctrl.Status().Error, err)
	}
	list.SetSearchTerm(opts.search)
	list.GoToPage(opts.page)

	formatter := format.NewFormatter(formatterType)
	if formatterType == format.FormatterTypeJSON {
		return formatter.FormatContacts(list.Page(), out)
	}

	switch {
	case list.Len() == 0:
		_, err = fmt.Fprintf(out, "%s\n%s\n", bundle.Instant("list.emptyTitle", nil), bundle.Instant("list.emptyHint", nil))
		return err
	case list.FilteredCount() == 0:
		_, err = fmt.Fprintln(out, bundle.Instant("list.noMatches", i18n.Params{"term": list.SearchTerm()}))
		return err
	}

	if err := formatter.FormatContacts(list.Page(), out); err != nil {
		return err
	}
	if formatterType != format.FormatterTypeTable {
		return nil
	}
	_, err = fmt.Fprintf(out, "\n%s  %s\n",
		bundle.Instant("list.showing", i18n.Params{
			"from":  list.FirstVisible(),
			"to":    list.LastVisible(),
			"total": list.FilteredCount(),
		}),
		bundle.Instant("list.page", i18n.Params{
			"page":  list.DisplayPage(),
			"pages": list.TotalPages(),
		}))
	return err
}

// listCmd represents the list command
var listCmd = NewListCmd(defaultDeps)

func init() {
	cmd.RootCmd.AddCommand(listCmd)
}
