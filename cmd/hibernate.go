package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agent-ops/sandboxctl/internal/errors"
)

var hibernateCmd = &cobra.Command{
	Use:   "hibernate <sandbox-id>",
	Short: "Snapshot a sandbox's filesystem and terminate it",
	Long: `Hibernate takes a filesystem snapshot of a running sandbox and then
terminates it. The printed snapshot image ID can be passed to restore
to bring the session back.

If the sandbox exited before the snapshot completed, hibernate fails
with a conflict and the sandbox is left untouched.`,
	Args: cobra.ExactArgs(1),
	RunE: runHibernate,
}

func init() {
	rootCmd.AddCommand(hibernateCmd)
}

func runHibernate(cmd *cobra.Command, args []string) error {
	o, err := getOrchestrator()
	if err != nil {
		return err
	}

	logInfo("Hibernating sandbox %s...", args[0])

	resp, err := o.Hibernate(context.Background(), args[0])
	if err != nil {
		if errors.IsAlreadyFinished(err) {
			logWarning("Sandbox %s already finished, nothing to snapshot", args[0])
		}
		return err
	}

	logSuccess("Sandbox %s hibernated", args[0])
	fmt.Printf("  Snapshot: %s\n", resp.SnapshotImageID)
	fmt.Printf("  Restore: sandboxctl restore --snapshot %s ...\n", resp.SnapshotImageID)

	return nil
}
