// Package testutil provides test fixtures and utilities.
//
// This package contains embedded JSON fixtures and helper functions for
// building a fully-wired test environment around the mock backend.
//
// # Fixtures
//
// JSON fixtures are embedded using go:embed:
//
//	fixtures/valid_create_request.json
//	fixtures/invalid_create_request.json
//	fixtures/restore_request.json
//
// # Loading Fixtures
//
// Helper functions load and parse fixtures into typed request objects:
//
//	req, err := testutil.ValidCreateRequest()
//	req, err := testutil.InvalidCreateRequest()
//
// # Test Environment
//
// NewTestEnv wires settings, the mock backend, manager, and orchestrator
// into an app.App, installs it as the process default, and restores the
// original on cleanup:
//
//	func TestSomething(t *testing.T) {
//	    env := testutil.NewTestEnv(t)
//	    env.Backend.AddSandbox("sb-1", true)
//	    // exercise code that uses app.Default
//	}
package testutil
