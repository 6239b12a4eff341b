package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Exit codes for sandboxctl
const (
	ExitSuccess         = 0
	ExitGeneralError    = 1
	ExitSandboxNotFound = 2
	ExitAlreadyFinished = 3
	ExitBackendError    = 4
	ExitConfigError     = 5
	ExitValidation      = 6
	ExitVolumeNotFound  = 7
)

// Stable API error codes, used in HTTP responses.
const (
	CodeSandboxNotFound = "sandbox_not_found"
	CodeAlreadyFinished = "sandbox_already_finished"
	CodeBackendError    = "backend_error"
	CodeInvalidRequest  = "invalid_request"
	CodeVolumeNotFound  = "volume_not_found"
)

// SandboxError is the base error type for sandboxctl.
type SandboxError struct {
	Code      int
	APICode   string
	Message   string
	SandboxID string
	Cause     error
}

func (e *SandboxError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *SandboxError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the process exit code for this error.
func (e *SandboxError) ExitCode() int {
	return e.Code
}

// HTTPStatus maps the error to an HTTP status code for the API layer.
func (e *SandboxError) HTTPStatus() int {
	switch e.Code {
	case ExitSandboxNotFound, ExitVolumeNotFound:
		return http.StatusNotFound
	case ExitAlreadyFinished:
		return http.StatusConflict
	case ExitValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// New creates a new SandboxError.
func New(code int, message string) *SandboxError {
	return &SandboxError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a SandboxError.
func Wrap(code int, message string, cause error) *SandboxError {
	return &SandboxError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Common error constructors

// SandboxNotFound returns an error for an unknown sandbox ID.
func SandboxNotFound(id string) *SandboxError {
	return &SandboxError{
		Code:      ExitSandboxNotFound,
		APICode:   CodeSandboxNotFound,
		Message:   fmt.Sprintf("sandbox not found: %s", id),
		SandboxID: id,
	}
}

// AlreadyFinished returns the conflict error for hibernating a sandbox
// that has already exited (typically via backend idle-timeout reclamation).
// This is an expected outcome, not a failure.
func AlreadyFinished(id string) *SandboxError {
	return &SandboxError{
		Code:      ExitAlreadyFinished,
		APICode:   CodeAlreadyFinished,
		Message:   fmt.Sprintf("sandbox %s has already finished and cannot be snapshotted", id),
		SandboxID: id,
	}
}

// BackendFailed returns an error for a failed backend operation.
func BackendFailed(op string, cause error) *SandboxError {
	return &SandboxError{
		Code:    ExitBackendError,
		APICode: CodeBackendError,
		Message: fmt.Sprintf("backend %s failed", op),
		Cause:   cause,
	}
}

// ConfigError returns an error for configuration issues.
func ConfigError(message string, cause error) *SandboxError {
	return Wrap(ExitConfigError, message, cause)
}

// ValidationError returns an error for input validation failures.
func ValidationError(message string) *SandboxError {
	return &SandboxError{
		Code:    ExitValidation,
		APICode: CodeInvalidRequest,
		Message: message,
	}
}

// VolumeNotFound returns an error for a missing workspace volume.
func VolumeNotFound(name string) *SandboxError {
	return &SandboxError{
		Code:    ExitVolumeNotFound,
		APICode: CodeVolumeNotFound,
		Message: fmt.Sprintf("volume not found: %s", name),
	}
}

// IsAlreadyFinished reports whether err is the hibernate conflict outcome.
func IsAlreadyFinished(err error) bool {
	var se *SandboxError
	return errors.As(err, &se) && se.Code == ExitAlreadyFinished
}

// IsNotFound reports whether err is a sandbox or volume not-found condition.
func IsNotFound(err error) bool {
	var se *SandboxError
	return errors.As(err, &se) &&
		(se.Code == ExitSandboxNotFound || se.Code == ExitVolumeNotFound)
}

// GetExitCode extracts the exit code from an error.
func GetExitCode(err error) int {
	var se *SandboxError
	if errors.As(err, &se) {
		return se.ExitCode()
	}
	return ExitGeneralError
}

// Is checks if an error matches a target error.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
