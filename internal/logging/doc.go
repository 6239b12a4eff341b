// Package logging provides logging utilities for sandboxctl.
//
// This package provides two categories of output:
//   - Debug logging: Structured logs for debugging (via slog)
//   - User output: Formatted messages for end users
//
// # Debug Logging
//
// Debug logs are written using slog and controlled by verbosity settings:
//
//	logging.Debug("creating sandbox", "session", sessionID, "image", imageType)
//	logging.Warn("snapshot slow", "sandbox", id, "elapsed", elapsed)
//
// # User Output
//
// User-facing messages are formatted with status indicators:
//
//	logging.UserInfo("Creating sandbox for session %s...", sessionID)
//	logging.UserSuccess("Sandbox %s is running", id)
//	logging.UserWarning("Sandbox %s already exited", id)
//	logging.UserError("Failed to hibernate: %v", err)
//
// Output destinations:
//   - UserInfo, UserSuccess: stdout
//   - UserWarning, UserError: stderr
package logging
