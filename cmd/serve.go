package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/agent-ops/sandboxctl/internal/api"
	"github.com/agent-ops/sandboxctl/internal/logging"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the sandbox lifecycle HTTP API",
	Long: `Serve exposes the session lifecycle over HTTP for orchestrators that
manage sandboxes remotely. The listen address comes from the config
file or the SANDBOXCTL_LISTEN_ADDR environment variable.`,
	RunE: runServe,
}

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	o, err := getOrchestrator()
	if err != nil {
		return err
	}

	addr := serveAddr
	if addr == "" {
		addr = settings().ListenAddr
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           api.NewServer(o).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		// No write timeout: create/restore block on cold image pulls.
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logging.Info("api server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logging.Info("shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
