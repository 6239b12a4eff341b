// Package api exposes the session lifecycle over HTTP.
//
// The surface mirrors the orchestrator one-to-one: create, terminate,
// hibernate, restore, status, and workspace volume deletion, all as POST
// endpoints taking and returning camelCase JSON. Errors render through
// the taxonomy in internal/errors; in particular, hibernating a sandbox
// that has already exited yields 409 with the stable error code
// "sandbox_already_finished" rather than a generic failure.
//
// Create and restore can take minutes on cold images, so the server is
// run without write timeouts; callers own their deadlines.
package api
