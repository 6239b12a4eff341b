// Package manager implements the sandbox lifecycle state machine.
//
// Per sandbox instance the states are inferred, never persisted:
//
//	NonExistent --Create--> Running
//	Running --Terminate--> Terminated
//	Running --idle timeout (backend, async)--> Terminated
//	Running --Hibernate--> snapshot + Terminated, or the already-finished
//	                       conflict when the sandbox exited concurrently
//	Snapshot --Restore--> Running (new sandbox ID)
//
// The Manager composes the three leaf helpers (secrets composition,
// resource naming, tunnel resolution) and the image-selection policy
// around a single provisioning backend. It performs no retries and adds
// no locking: operations on different sandbox IDs are independent, and
// races between operations on the same ID are resolved by whichever
// backend call lands first. The hibernate conflict path exists precisely
// to make losing that race observable rather than fatal.
//
// Callers retain sandbox IDs; no directory of live sandboxes is kept here.
package manager
