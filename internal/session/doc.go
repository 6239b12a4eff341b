// Package session is the thin orchestration layer above the lifecycle
// manager.
//
// It translates external session-shaped requests (camelCase JSON, string
// image types, optional fields with defaults) into the manager's typed
// configuration and back into response values, validating caller input
// before any backend call is made. It holds no state and adds no policy
// of its own.
package session
