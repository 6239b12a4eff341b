package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agent-ops/sandboxctl/internal/logging"
)

var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore a hibernated sandbox from a snapshot",
	Long: `Restore launches a fresh sandbox from a filesystem snapshot taken by
hibernate. The session's workspace volume is reattached, so both the
snapshotted root filesystem and the workspace contents survive.`,
	RunE: runRestore,
}

var restoreSnapshot string

func init() {
	restoreCmd.Flags().AddFlagSet(createCmd.Flags())
	restoreCmd.Flags().StringVar(&restoreSnapshot, "snapshot", "", "Snapshot image ID from hibernate (required)")
	if err := restoreCmd.MarkFlagRequired("snapshot"); err != nil {
		panic(err)
	}
	rootCmd.AddCommand(restoreCmd)
}

func runRestore(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	o, err := getOrchestrator()
	if err != nil {
		return err
	}

	req, err := buildCreateRequest()
	if err != nil {
		return err
	}

	logging.Debug("restoring sandbox", "session", req.SessionID, "snapshot", restoreSnapshot)
	logInfo("Restoring session %s from %s...", req.SessionID, restoreSnapshot)

	resp, err := o.Restore(ctx, req, restoreSnapshot)
	if err != nil {
		return err
	}

	logSuccess("Sandbox %s restored", resp.SandboxID)
	fmt.Printf("  Tunnels:\n")
	printTunnels(resp.TunnelURLs)

	return nil
}
