package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/agent-ops/sandboxctl/internal/backend"
)

var psCmd = &cobra.Command{
	Use:   "ps",
	Short: "List all managed sandboxes",
	RunE:  runPs,
}

func init() {
	rootCmd.AddCommand(psCmd)
}

func runPs(cmd *cobra.Command, args []string) error {
	b, err := getBackend()
	if err != nil {
		return err
	}

	sandboxes, err := b.List(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list sandboxes: %w", err)
	}

	if len(sandboxes) == 0 {
		logInfo("No sandboxes found. Create one with: sandboxctl create --session <id>")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SANDBOX\tSESSION\tUSER\tWORKSPACE\tUPTIME\tSTATUS")
	fmt.Fprintln(w, "-------\t-------\t----\t---------\t------\t------")

	now := time.Now()
	for _, sb := range sandboxes {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			shortID(sb.ID),
			sb.Labels[backend.LabelSessionID],
			sb.Labels[backend.LabelUserID],
			sb.Labels[backend.LabelWorkspace],
			formatUptime(sb, now),
			formatState(sb.Running),
		)
	}

	return w.Flush()
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}

func formatUptime(sb *backend.Info, now time.Time) string {
	if !sb.Running || sb.StartedAt.IsZero() {
		return "-"
	}
	return now.Sub(sb.StartedAt).Round(time.Second).String()
}

func formatState(running bool) string {
	if running {
		return "✓ running"
	}
	return "● stopped"
}
