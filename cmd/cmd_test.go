package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/agent-ops/sandboxctl/internal/app"
	"github.com/agent-ops/sandboxctl/internal/backend"
	"github.com/agent-ops/sandboxctl/internal/errors"
)

// installMockApp wires a mock backend into the default app for the test.
func installMockApp(t *testing.T) *backend.Mock {
	t.Helper()

	mock := backend.NewMock()
	original := app.Default
	app.SetDefault(app.New(app.WithBackend(mock)))
	t.Cleanup(func() { app.SetDefault(original) })

	return mock
}

// resetHelpFlags clears the persisted help flag on a command tree so a
// prior "--help" execution does not short-circuit later executions.
func resetHelpFlags(c *cobra.Command) {
	if f := c.Flags().Lookup("help"); f != nil {
		_ = f.Value.Set("false")
		f.Changed = false
	}
	for _, sub := range c.Commands() {
		resetHelpFlags(sub)
	}
}

func executeCommand(args ...string) (string, string, error) {
	// Reset flag values before each test
	createSession = ""
	createUser = ""
	createWorkspace = ""
	createImage = "base"
	createCallbackURL = ""
	createRunnerToken = ""
	createJWTSecret = ""
	createIdleTimeout = 0
	createEnv = nil
	createPersonasDir = ""
	restoreSnapshot = ""
	pickSimple = false
	serveAddr = ""
	verbose = false
	jsonOutput = false
	configPath = ""

	// Reset cobra's help flag state left behind by earlier --help runs
	resetHelpFlags(rootCmd)

	cmd := rootCmd
	cmd.SetArgs(args)

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)

	err := cmd.Execute()

	// Reset args for next test
	cmd.SetArgs(nil)
	cmd.SetOut(nil)
	cmd.SetErr(nil)

	return stdout.String(), stderr.String(), err
}

func TestRootCommand_Help(t *testing.T) {
	stdout, _, err := executeCommand("--help")
	if err != nil {
		t.Fatalf("Help command failed: %v", err)
	}

	if !strings.Contains(stdout, "sandboxctl") {
		t.Error("Help output should contain 'sandboxctl'")
	}

	if !strings.Contains(stdout, "sandbox") {
		t.Error("Help output should mention sandbox")
	}
}

func TestCreateCommand_Help(t *testing.T) {
	stdout, _, err := executeCommand("create", "--help")
	if err != nil {
		t.Fatalf("Help command failed: %v", err)
	}

	for _, flag := range []string{"--session", "--user", "--workspace", "--callback-url", "--runner-token", "--jwt-secret", "--idle-timeout", "--env"} {
		if !strings.Contains(stdout, flag) {
			t.Errorf("Create help should mention %s flag", flag)
		}
	}
}

func TestCreateCommand_MissingRequiredFlags(t *testing.T) {
	installMockApp(t)

	stdout, stderr, err := executeCommand("create")
	output := stdout + stderr

	if err == nil && !strings.Contains(output, "required") {
		t.Error("Create should fail when required flags are missing")
	}
}

func TestRestoreCommand_Help(t *testing.T) {
	stdout, _, err := executeCommand("restore", "--help")
	if err != nil {
		t.Fatalf("Help command failed: %v", err)
	}

	if !strings.Contains(stdout, "--snapshot") {
		t.Error("Restore help should mention --snapshot flag")
	}
	if !strings.Contains(stdout, "--session") {
		t.Error("Restore help should share the create flags")
	}
}

func TestHibernateCommand_Help(t *testing.T) {
	stdout, _, err := executeCommand("hibernate", "--help")
	if err != nil {
		t.Fatalf("Help command failed: %v", err)
	}

	if !strings.Contains(stdout, "snapshot") {
		t.Error("Hibernate help should mention snapshotting")
	}
}

func TestTerminateCommand_NotFound(t *testing.T) {
	installMockApp(t)

	_, _, err := executeCommand("terminate", "sb-missing")
	if errors.GetExitCode(err) != errors.ExitSandboxNotFound {
		t.Errorf("err = %v, want sandbox-not-found exit code", err)
	}
}

func TestTerminateCommand_Success(t *testing.T) {
	mock := installMockApp(t)
	mock.AddSandbox("sb-1", true)

	_, _, err := executeCommand("terminate", "sb-1")
	if err != nil {
		t.Fatalf("terminate failed: %v", err)
	}
	if calls := mock.GetCallsFor("Terminate"); len(calls) != 1 {
		t.Errorf("Terminate calls = %d, want 1", len(calls))
	}
}

func TestHibernateCommand_Conflict(t *testing.T) {
	mock := installMockApp(t)
	mock.AddSandbox("sb-1", false)

	_, _, err := executeCommand("hibernate", "sb-1")
	if !errors.IsAlreadyFinished(err) {
		t.Errorf("err = %v, want already-finished conflict", err)
	}
}

func TestStatusCommand_TerminatedForUnknown(t *testing.T) {
	installMockApp(t)

	_, _, err := executeCommand("status", "sb-unknown")
	if err != nil {
		t.Fatalf("status failed: %v", err)
	}
}

func TestPsCommand_Help(t *testing.T) {
	stdout, _, err := executeCommand("ps", "--help")
	if err != nil {
		t.Fatalf("Help command failed: %v", err)
	}

	if !strings.Contains(stdout, "List") {
		t.Error("Ps help should mention listing")
	}
}

func TestVolumeDeleteCommand(t *testing.T) {
	mock := installMockApp(t)
	mock.Volumes["workspace-sess-1"] = true

	_, _, err := executeCommand("volume", "delete", "sess-1")
	if err != nil {
		t.Fatalf("volume delete failed: %v", err)
	}
	if mock.Volumes["workspace-sess-1"] {
		t.Error("volume should be removed from the backend")
	}
}

func TestServeCommand_Help(t *testing.T) {
	stdout, _, err := executeCommand("serve", "--help")
	if err != nil {
		t.Fatalf("Help command failed: %v", err)
	}

	if !strings.Contains(stdout, "--addr") {
		t.Error("Serve help should mention --addr flag")
	}
}

func TestGlobalFlags(t *testing.T) {
	stdout, _, err := executeCommand("--help")
	if err != nil {
		t.Fatalf("Help failed: %v", err)
	}

	if !strings.Contains(stdout, "--verbose") {
		t.Error("Should have --verbose flag")
	}

	if !strings.Contains(stdout, "--json") {
		t.Error("Should have --json flag")
	}

	if !strings.Contains(stdout, "--config") {
		t.Error("Should have --config flag")
	}
}

func TestCommandRequiresArgs(t *testing.T) {
	installMockApp(t)

	tests := []struct {
		cmd            string
		shouldShowHelp bool
	}{
		{"terminate", true},
		{"hibernate", true},
		{"status", true},
		{"ps", false},
	}

	for _, tt := range tests {
		t.Run(tt.cmd, func(t *testing.T) {
			stdout, stderr, _ := executeCommand(tt.cmd)
			output := stdout + stderr

			if tt.shouldShowHelp {
				if !strings.Contains(output, "Usage:") && !strings.Contains(output, "Error:") {
					if !strings.Contains(output, tt.cmd) {
						t.Errorf("%s: expected usage info in output", tt.cmd)
					}
				}
			}
		})
	}
}
