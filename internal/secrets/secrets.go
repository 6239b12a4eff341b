// Package secrets composes the environment bundle injected into a sandbox.
//
// Composition is a pure function over the caller-supplied environment and
// the session's core secrets. Two invariants hold for every result:
//
//   - A core key always carries the core value whenever that value is
//     non-empty, regardless of what the caller supplied under the same key.
//   - No key maps to an empty string; empty values are stripped so the
//     backend never sets blank environment variables.
package secrets

import (
	"encoding/json"
	"fmt"
)

// Environment variable names of the core session secrets.
const (
	KeyCallbackURL    = "DO_WS_URL"
	KeyRunnerToken    = "RUNNER_TOKEN"
	KeySessionID      = "SESSION_ID"
	KeyJWTSecret      = "JWT_SECRET"
	KeyServerPassword = "OPENCODE_SERVER_PASSWORD"
	KeyPersonaFiles   = "PERSONA_FILES_JSON"
)

// Core holds the session identity secrets. ServerPassword may be empty at
// call time (it is optional); empty values are dropped from the result.
type Core struct {
	SessionID      string
	CallbackURL    string
	RunnerToken    string
	JWTSecret      string
	ServerPassword string
}

// PersonaFile is a persona or config file payload injected into the
// sandbox, serialized as JSON under PERSONA_FILES_JSON.
type PersonaFile struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// Compose merges caller-supplied environment variables with the core
// session secrets. Core keys are applied after env so callers cannot
// override them; empty values are stripped from the result.
func Compose(env map[string]string, core Core, personas []PersonaFile) (map[string]string, error) {
	merged := make(map[string]string, len(env)+6)
	for k, v := range env {
		merged[k] = v
	}

	// Core secrets are set last so env cannot override them.
	merged[KeyCallbackURL] = core.CallbackURL
	merged[KeyRunnerToken] = core.RunnerToken
	merged[KeySessionID] = core.SessionID
	merged[KeyJWTSecret] = core.JWTSecret
	merged[KeyServerPassword] = core.ServerPassword

	if len(personas) > 0 {
		payload, err := json.Marshal(personas)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize persona files: %w", err)
		}
		merged[KeyPersonaFiles] = string(payload)
	}

	// Strip empty values so the backend doesn't set blank env vars.
	for k, v := range merged {
		if v == "" {
			delete(merged, k)
		}
	}

	return merged, nil
}
