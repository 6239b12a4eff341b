package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agent-ops/sandboxctl/internal/tui"
)

var pickCmd = &cobra.Command{
	Use:   "pick",
	Short: "Interactively pick a sandbox and act on it",
	RunE:  runPick,
}

var pickSimple bool

func init() {
	pickCmd.Flags().BoolVar(&pickSimple, "simple", false, "Print a plain listing instead of the interactive picker")
	rootCmd.AddCommand(pickCmd)
}

func runPick(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	b, err := getBackend()
	if err != nil {
		return err
	}

	sandboxes, err := b.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list sandboxes: %w", err)
	}

	if pickSimple {
		fmt.Print(tui.SimplePicker(sandboxes))
		return nil
	}

	result, err := tui.RunPicker(sandboxes)
	if err != nil {
		return fmt.Errorf("picker failed: %w", err)
	}

	switch result.Action {
	case tui.ActionStatus:
		return runStatus(cmd, []string{result.Sandbox.ID})
	case tui.ActionHibernate:
		return runHibernate(cmd, []string{result.Sandbox.ID})
	case tui.ActionTerminate:
		return runTerminate(cmd, []string{result.Sandbox.ID})
	}

	return nil
}
