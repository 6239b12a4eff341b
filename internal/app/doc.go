// Package app provides the application context for sandboxctl.
//
// This package manages application-wide dependencies using the functional
// options pattern, enabling easy testing through dependency injection.
//
// # App Context
//
// The App struct holds core dependencies:
//
//	type App struct {
//	    Settings     *config.Settings      // Daemon and lifecycle settings
//	    Backend      backend.Backend       // Sandbox backend
//	    Manager      *manager.Manager      // Lifecycle manager
//	    Orchestrator *session.Orchestrator // Session-level API
//	}
//
// # Creating an App
//
// Use New with functional options:
//
//	// Production usage
//	a := app.New()
//
//	// Testing with custom dependencies
//	a := app.New(
//	    app.WithSettings(testSettings),
//	    app.WithBackend(backend.NewMock()),
//	)
//
// # Available Options
//
//	WithSettings(settings) // Custom settings
//	WithBackend(backend)   // Custom sandbox backend
package app
