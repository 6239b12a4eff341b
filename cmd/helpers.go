package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agent-ops/sandboxctl/internal/app"
	"github.com/agent-ops/sandboxctl/internal/backend"
	"github.com/agent-ops/sandboxctl/internal/config"
	"github.com/agent-ops/sandboxctl/internal/errors"
	"github.com/agent-ops/sandboxctl/internal/session"
)

// settings returns the loaded configuration.
// This is a helper to reduce repetition in commands.
func settings() *config.Settings {
	return app.Default.Settings
}

// getBackend returns the application backend, or an error if the Docker
// daemon was unreachable at startup.
func getBackend() (backend.Backend, error) {
	if app.Default.Backend == nil {
		return nil, errors.ConfigError("sandbox backend unavailable", nil)
	}
	return app.Default.Backend, nil
}

// getOrchestrator returns the session orchestrator.
func getOrchestrator() (*session.Orchestrator, error) {
	if app.Default.Orchestrator == nil {
		return nil, errors.ConfigError("sandbox backend unavailable", nil)
	}
	return app.Default.Orchestrator, nil
}

// parseEnvFlags parses repeated KEY=VALUE flags into a map.
func parseEnvFlags(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	env := make(map[string]string, len(pairs))
	for _, p := range pairs {
		idx := strings.IndexByte(p, '=')
		if idx <= 0 {
			return nil, fmt.Errorf("invalid env var %q, expected KEY=VALUE", p)
		}
		env[p[:idx]] = p[idx+1:]
	}
	return env, nil
}

// printTunnels prints tunnel URLs in a stable order.
func printTunnels(tunnels map[string]string) {
	names := make([]string, 0, len(tunnels))
	for name := range tunnels {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %s\n", name, tunnels[name])
	}
}
