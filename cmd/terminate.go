package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var terminateCmd = &cobra.Command{
	Use:   "terminate <sandbox-id>",
	Short: "Terminate a sandbox without snapshotting",
	Args:  cobra.ExactArgs(1),
	RunE:  runTerminate,
}

func init() {
	rootCmd.AddCommand(terminateCmd)
}

func runTerminate(cmd *cobra.Command, args []string) error {
	o, err := getOrchestrator()
	if err != nil {
		return err
	}

	if _, err := o.Terminate(context.Background(), args[0]); err != nil {
		return err
	}

	logSuccess("Sandbox %s terminated", args[0])
	return nil
}
