// Package app provides the application context for sandboxctl.
// It allows dependency injection for testing.
package app

import (
	"github.com/agent-ops/sandboxctl/internal/backend"
	"github.com/agent-ops/sandboxctl/internal/config"
	"github.com/agent-ops/sandboxctl/internal/logging"
	"github.com/agent-ops/sandboxctl/internal/manager"
	"github.com/agent-ops/sandboxctl/internal/session"
)

// App holds the application dependencies
type App struct {
	// Settings holds the loaded configuration
	Settings *config.Settings

	// Backend is the sandbox backend
	Backend backend.Backend

	// Manager is the sandbox lifecycle manager
	Manager *manager.Manager

	// Orchestrator is the session-level API above the manager
	Orchestrator *session.Orchestrator
}

// Option is a function that configures the App
type Option func(*App)

// WithSettings sets custom settings
func WithSettings(s *config.Settings) Option {
	return func(a *App) {
		a.Settings = s
	}
}

// WithBackend sets a custom backend
func WithBackend(b backend.Backend) Option {
	return func(a *App) {
		a.Backend = b
	}
}

// New creates a new App with the given options.
// If a backend is not provided via WithBackend, the Docker backend is used.
func New(opts ...Option) *App {
	app := &App{}

	for _, opt := range opts {
		opt(app)
	}

	if app.Settings == nil {
		app.Settings = config.Defaults()
	}

	if app.Backend == nil {
		b, err := backend.NewDocker()
		if err != nil {
			logging.Debug("failed to initialize docker backend", "error", err)
		} else {
			app.Backend = b
		}
	}

	if app.Backend != nil {
		app.Manager = manager.New(app.Backend, app.Settings)
		app.Orchestrator = session.NewOrchestrator(app.Manager)
	}

	return app
}

// Load builds an App from the config file at path, layering environment
// overrides on top. A missing file falls back to defaults.
func Load(path string, opts ...Option) (*App, error) {
	settings, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	return New(append([]Option{WithSettings(settings)}, opts...)...), nil
}

// Default is the default application instance
var Default = New()

// SetDefault sets the default application instance (used for testing)
func SetDefault(app *App) {
	Default = app
}

// ResetDefault resets to the default application instance
func ResetDefault() {
	Default = New()
}
