package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status <sandbox-id>",
	Short: "Show the status of a sandbox",
	Args:  cobra.ExactArgs(1),
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	o, err := getOrchestrator()
	if err != nil {
		return err
	}

	resp, err := o.Status(context.Background(), args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Sandbox: %s\n", resp.SandboxID)
	fmt.Printf("Status: %s\n", resp.Status)

	return nil
}
