/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/cristianoliveira/contacts/cmd"
	"github.com/cristianoliveira/contacts/internal/colors"
	"github.com/cristianoliveira/contacts/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(os.Args[1:], func() error {
		return cmd.RootCmd.ExecuteContext(ctx)
	})
	stop()
	os.Exit(code)
}

// run executes the CLI with args and returns the process exit code.
func run(args []string, execute func() error) int {
	cmd.RootCmd.SetArgs(args)
	defer func() {
		if err := defaultDeps.Close(); err != nil {
			colors.StructuredWarn("startup", "main", "close_failed", err, "", nil)
		}
		_ = logging.ShutdownGlobal()
	}()

	colors.StructuredInfo("startup", "main", "started", nil, "", nil)
	if err := execute(); err != nil {
		colors.Error(err.Error())
		colors.StructuredError("startup", "main", "failed", err, "", nil)
		return 1
	}
	colors.StructuredInfo("startup", "main", "completed", nil, "", nil)
	return 0
}
