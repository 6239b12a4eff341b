package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/agent-ops/sandboxctl/internal/app"
	"github.com/agent-ops/sandboxctl/internal/logging"
)

var (
	verbose    bool
	jsonOutput bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "sandboxctl",
	Short: "Sandbox lifecycle management CLI",
	Long: `sandboxctl manages remote sandboxes for coding agent sessions.

Each sandbox is a container with:
  - A persistent workspace volume keyed by session
  - Tunnel endpoints for the agent server and service gateway
  - Injected session secrets and persona files
  - Filesystem snapshots for hibernate/restore`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.Setup(verbose, jsonOutput, os.Stderr)

		if configPath != "" {
			a, err := app.Load(configPath)
			if err != nil {
				return err
			}
			app.SetDefault(a)
		}
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output logs in JSON format")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (TOML)")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// Helper aliases for user-facing output (delegates to logging package)
var (
	logInfo    = logging.UserInfo
	logSuccess = logging.UserSuccess
	logWarning = logging.UserWarning
	_          = logging.UserError // reserved for future use
)
