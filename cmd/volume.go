package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var volumeCmd = &cobra.Command{
	Use:   "volume",
	Short: "Manage workspace volumes",
	Long: `Workspace volumes persist independently of sandbox lifetimes so that
hibernate/restore cycles keep the session's files. Deleting a volume is
the one destructive operation here and only makes sense once a session
is finished for good.`,
}

var volumeDeleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete a session's workspace volume",
	Args:  cobra.ExactArgs(1),
	RunE:  runVolumeDelete,
}

func init() {
	volumeCmd.AddCommand(volumeDeleteCmd)
	rootCmd.AddCommand(volumeCmd)
}

func runVolumeDelete(cmd *cobra.Command, args []string) error {
	o, err := getOrchestrator()
	if err != nil {
		return err
	}

	resp, err := o.DeleteVolume(context.Background(), args[0])
	if err != nil {
		return err
	}

	if resp.Deleted {
		logSuccess("Workspace volume for session %s deleted", args[0])
	} else {
		logInfo("No workspace volume found for session %s", args[0])
	}
	return nil
}
