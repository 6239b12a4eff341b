// Package testutil provides test utilities for integration tests
package testutil

import (
	"testing"

	"github.com/agent-ops/sandboxctl/internal/app"
	"github.com/agent-ops/sandboxctl/internal/backend"
	"github.com/agent-ops/sandboxctl/internal/config"
	"github.com/agent-ops/sandboxctl/internal/manager"
	"github.com/agent-ops/sandboxctl/internal/session"
)

// TestEnv holds the test environment
type TestEnv struct {
	T            *testing.T
	Settings     *config.Settings
	Backend      *backend.Mock
	Manager      *manager.Manager
	Orchestrator *session.Orchestrator
	App          *app.App
}

// NewTestEnv creates a new test environment with the mock backend and
// installs it as the default app for the duration of the test.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	settings := config.Defaults()
	mock := backend.NewMock()

	testApp := app.New(
		app.WithSettings(settings),
		app.WithBackend(mock),
	)

	originalDefault := app.Default
	app.SetDefault(testApp)
	t.Cleanup(func() {
		app.SetDefault(originalDefault)
	})

	return &TestEnv{
		T:            t,
		Settings:     settings,
		Backend:      mock,
		Manager:      testApp.Manager,
		Orchestrator: testApp.Orchestrator,
	}
}

// AddRunningSandbox registers a running sandbox with the mock backend
// and returns its ID.
func (e *TestEnv) AddRunningSandbox(id string) string {
	e.T.Helper()
	e.Backend.AddSandbox(id, true)
	return id
}

// AddStoppedSandbox registers an exited sandbox with the mock backend
// and returns its ID.
func (e *TestEnv) AddStoppedSandbox(id string) string {
	e.T.Helper()
	e.Backend.AddSandbox(id, false)
	return id
}

// AddWorkspaceVolume registers the session's workspace volume with the
// mock backend.
func (e *TestEnv) AddWorkspaceVolume(name string) {
	e.T.Helper()
	e.Backend.Volumes[name] = true
}

// SetTunnels sets the tunnel URLs the mock backend reports for any sandbox.
func (e *TestEnv) SetTunnels(tunnels map[int]string) {
	e.T.Helper()
	e.Backend.SetTunnels(tunnels)
}
