/*
Copyright © 2026 Cristian Oliveira <license@cristianoliveira.dev>
*/
package cmd

import (
	"github.com/cristianoliveira/contacts/internal/colors"
	"github.com/cristianoliveira/contacts/internal/config"
	"github.com/cristianoliveira/contacts/internal/logging"
	"github.com/cristianoliveira/contacts/internal/version"
	"github.com/spf13/cobra"
)

// Persistent flag values. Empty or false means "use the configuration".
var (
	apiURLFlag   string
	languageFlag string
	debugFlag    bool
	quietFlag    bool
	insecureFlag bool
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "contacts",
	Short: "Manage the contacts stored by a remote contact service.",
	Long: `Manage the contacts stored by a remote contact service.

Run without a subcommand to open the interactive UI. The service is reached at
api_base_url from the configuration file ($XDG_CONFIG_HOME/contacts/config.toml)
or CONTACTS_API_BASE_URL.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Execute adds all child commands to the root command and runs it.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.Version = version.String()
	RootCmd.CompletionOptions.HiddenDefaultCmd = true

	flags := RootCmd.PersistentFlags()
	flags.StringVar(&apiURLFlag, "api-url", "", "base URL of the contact service")
	flags.StringVar(&languageFlag, "lang", "", "language code (overrides the saved preference)")
	flags.BoolVar(&debugFlag, "debug", false, "print debug output")
	flags.BoolVar(&quietFlag, "quiet", false, "only print errors")
	flags.BoolVar(&insecureFlag, "insecure", false, "skip TLS certificate verification")
}

// LanguageOverride returns the --lang flag value, or "" when unset.
func LanguageOverride() string {
	return languageFlag
}

// setup loads configuration, applies flag overrides and starts file logging.
func setup(cmd *cobra.Command, args []string) error {
	config.Load()
	if apiURLFlag != "" {
		config.Set("api_base_url", apiURLFlag)
	}
	if debugFlag {
		config.Set("debug", "true")
	}
	if quietFlag {
		config.Set("quiet", "true")
	}
	if insecureFlag {
		config.Set("api_insecure_tls", "true")
	}

	colors.SetDebug(config.GetBool("debug", false))
	if err := logging.InitGlobal(); err != nil {
		colors.Warning("logging disabled: " + err.Error())
	}
	colors.StructuredDebug("cli", "setup", "loaded", nil, cmd.Name(), map[string]interface{}{
		"api_base_url": config.Get("api_base_url", ""),
		"config_path":  config.ConfigPath(),
	})
	return nil
}
