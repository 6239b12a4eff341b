// Package backend defines the sandbox-provisioning backend interface and
// its implementations.
//
// The Backend interface is the only seam between the lifecycle manager and
// the remote provisioning system: create, terminate, inspect, filesystem
// snapshot, tunnel listing, and volume deletion. Backend-specific error
// shapes never cross this boundary; implementations translate them to the
// package sentinels ErrNotFound and ErrAlreadyExited.
//
// # Docker Backend
//
// Docker is the concrete implementation. Sandboxes are labeled containers,
// workspace volumes are named Docker volumes (created lazily on first
// attach), filesystem snapshots are container commits, and tunnels are
// container ports published on loopback ephemeral host ports. Idle timeout
// and lifetime ceiling are recorded as labels and enforced by the sandbox
// image's own supervisor, which exits the entry command after the idle
// window; that exit is exactly the asynchronous reclamation the hibernate
// conflict path exists for.
//
// # Mock Backend
//
// For testing, use NewMock() to create an in-memory implementation that
// records a call log and can be configured with per-operation errors and
// canned tunnel maps.
package backend
