package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agent-ops/sandboxctl/internal/errors"
	"github.com/agent-ops/sandboxctl/internal/logging"
	"github.com/agent-ops/sandboxctl/internal/session"
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create and start a sandbox for a session",
	RunE:  runCreate,
}

var (
	createSession        string
	createUser           string
	createWorkspace      string
	createImage          string
	createCallbackURL    string
	createRunnerToken    string
	createJWTSecret      string
	createIdleTimeout    int
	createEnv            []string
	createPersonasDir    string
	createPersonasTarget string
)

func init() {
	createCmd.Flags().StringVarP(&createSession, "session", "s", "", "Session ID (required)")
	createCmd.Flags().StringVarP(&createUser, "user", "u", "", "User ID (required)")
	createCmd.Flags().StringVarP(&createWorkspace, "workspace", "w", "", "Workspace name (required)")
	createCmd.Flags().StringVar(&createImage, "image", "base", "Image type")
	createCmd.Flags().StringVar(&createCallbackURL, "callback-url", "", "Orchestrator websocket callback URL (required)")
	createCmd.Flags().StringVar(&createRunnerToken, "runner-token", "", "Runner auth token (required)")
	createCmd.Flags().StringVar(&createJWTSecret, "jwt-secret", "", "JWT signing secret (required)")
	createCmd.Flags().IntVar(&createIdleTimeout, "idle-timeout", 0, "Requested idle timeout in seconds (0 = default)")
	createCmd.Flags().StringArrayVarP(&createEnv, "env", "e", nil, "Extra env var for the sandbox (KEY=VALUE, repeatable)")
	createCmd.Flags().StringVar(&createPersonasDir, "personas-dir", "", "Directory of persona files to inject")
	createCmd.Flags().StringVar(&createPersonasTarget, "personas-target", "/home/agent", "Target base path for persona files")
	for _, flag := range []string{"session", "user", "workspace", "callback-url", "runner-token", "jwt-secret"} {
		if err := createCmd.MarkFlagRequired(flag); err != nil {
			panic(err)
		}
	}
	rootCmd.AddCommand(createCmd)
}

// buildCreateRequest assembles the request shared by create and restore.
func buildCreateRequest() (*session.CreateRequest, error) {
	env, err := parseEnvFlags(createEnv)
	if err != nil {
		return nil, errors.ValidationError(err.Error())
	}

	req := &session.CreateRequest{
		SessionID:          createSession,
		UserID:             createUser,
		Workspace:          createWorkspace,
		ImageType:          createImage,
		CallbackURL:        createCallbackURL,
		RunnerToken:        createRunnerToken,
		JWTSecret:          createJWTSecret,
		IdleTimeoutSeconds: createIdleTimeout,
		EnvVars:            env,
	}

	if createPersonasDir != "" {
		personas, err := session.LoadPersonaFiles(createPersonasDir, createPersonasTarget)
		if err != nil {
			return nil, errors.ConfigError("failed to load persona files", err)
		}
		req.PersonaFiles = personas
	}

	return req, nil
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	o, err := getOrchestrator()
	if err != nil {
		return err
	}

	req, err := buildCreateRequest()
	if err != nil {
		return err
	}

	logging.Debug("creating sandbox", "session", req.SessionID, "image", req.ImageType)
	logInfo("Creating sandbox for session %s...", req.SessionID)

	resp, err := o.Create(ctx, req)
	if err != nil {
		return err
	}

	logSuccess("Sandbox %s created", resp.SandboxID)
	fmt.Printf("  Tunnels:\n")
	printTunnels(resp.TunnelURLs)

	return nil
}
