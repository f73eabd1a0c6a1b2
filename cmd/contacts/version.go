/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"fmt"

	"github.com/cristianoliveira/contacts/cmd"
	"github.com/cristianoliveira/contacts/internal/version"
	"github.com/spf13/cobra"
)

type versionClient interface {
	Version() string
	Detailed() string
}

type buildInfo struct{}

func (buildInfo) Version() string  { return version.String() }
func (buildInfo) Detailed() string { return version.Detailed() }

// NewVersionCmd creates the version command with explicit dependencies.
func NewVersionCmd(client versionClient) *cobra.Command {
	if client == nil {
		panic("NewVersionCmd: client dependency cannot be nil")
	}

	var verbose bool
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Show the current version of contacts.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				fmt.Fprintln(cmd.OutOrStdout(), client.Detailed())
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "contacts version %s\n", client.Version())
			return nil
		},
	}
	versionCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "include build details")

	return versionCmd
}

// versionCmd represents the version command
var versionCmd = NewVersionCmd(buildInfo{})

func init() {
	cmd.RootCmd.AddCommand(versionCmd)
}
