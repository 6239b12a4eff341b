// Package errors defines the error taxonomy for sandboxctl.
//
// Every error that crosses a component boundary is a *SandboxError carrying
// a numeric code. The code drives both the process exit code for the CLI
// and the HTTP status for the API layer, so backend-specific error shapes
// never leak past internal/backend.
//
// The hibernate conflict ("sandbox already finished") is a first-class
// member of the taxonomy: construct it with AlreadyFinished and detect it
// with IsAlreadyFinished. It maps to HTTP 409 with the stable API code
// "sandbox_already_finished".
package errors
