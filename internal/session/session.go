package session

import (
	"context"

	apperrors "github.com/agent-ops/sandboxctl/internal/errors"
	"github.com/agent-ops/sandboxctl/internal/image"
	"github.com/agent-ops/sandboxctl/internal/manager"
	"github.com/agent-ops/sandboxctl/internal/secrets"
)

// CreateRequest is a session-shaped create (or restore) request. Field
// names follow the external JSON contract.
type CreateRequest struct {
	SessionID          string                `json:"sessionId"`
	UserID             string                `json:"userId"`
	Workspace          string                `json:"workspace"`
	ImageType          string                `json:"imageType"`
	CallbackURL        string                `json:"doWsUrl"`
	RunnerToken        string                `json:"runnerToken"`
	JWTSecret          string                `json:"jwtSecret"`
	IdleTimeoutSeconds int                   `json:"idleTimeoutSeconds"`
	EnvVars            map[string]string     `json:"envVars,omitempty"`
	PersonaFiles       []secrets.PersonaFile `json:"personaFiles,omitempty"`
}

// Validate rejects malformed requests before any backend call is made.
func (r *CreateRequest) Validate() error {
	switch {
	case r.SessionID == "":
		return apperrors.ValidationError("sessionId is required")
	case r.UserID == "":
		return apperrors.ValidationError("userId is required")
	case r.Workspace == "":
		return apperrors.ValidationError("workspace is required")
	case r.CallbackURL == "":
		return apperrors.ValidationError("doWsUrl is required")
	case r.RunnerToken == "":
		return apperrors.ValidationError("runnerToken is required")
	case r.JWTSecret == "":
		return apperrors.ValidationError("jwtSecret is required")
	}
	return nil
}

// config translates the request into the manager's immutable config.
func (r *CreateRequest) config() manager.Config {
	return manager.Config{
		SessionID:          r.SessionID,
		UserID:             r.UserID,
		Workspace:          r.Workspace,
		ImageType:          image.ParseType(r.ImageType),
		CallbackURL:        r.CallbackURL,
		RunnerToken:        r.RunnerToken,
		JWTSecret:          r.JWTSecret,
		IdleTimeoutSeconds: r.IdleTimeoutSeconds,
		EnvVars:            r.EnvVars,
		PersonaFiles:       r.PersonaFiles,
	}
}

// CreateResponse is returned for create and restore.
type CreateResponse struct {
	SandboxID  string            `json:"sandboxId"`
	TunnelURLs map[string]string `json:"tunnelUrls"`
}

// TerminateResponse reports a terminate outcome.
type TerminateResponse struct {
	Success bool `json:"success"`
}

// HibernateResponse carries the snapshot image ID.
type HibernateResponse struct {
	SnapshotImageID string `json:"snapshotImageId"`
}

// StatusResponse reports coarse sandbox liveness.
type StatusResponse struct {
	SandboxID string `json:"sandboxId"`
	Status    string `json:"status"`
}

// VolumeDeleteResponse reports whether a workspace volume was deleted.
type VolumeDeleteResponse struct {
	Deleted bool `json:"deleted"`
}

// Orchestrator translates session-shaped requests into lifecycle manager
// calls and back into responses. Pure pass-through above the core.
type Orchestrator struct {
	manager *manager.Manager
}

// NewOrchestrator wraps a lifecycle manager.
func NewOrchestrator(m *manager.Manager) *Orchestrator {
	return &Orchestrator{manager: m}
}

// Create spawns a sandbox for a session.
func (o *Orchestrator) Create(ctx context.Context, req *CreateRequest) (*CreateResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	result, err := o.manager.Create(ctx, req.config())
	if err != nil {
		return nil, err
	}
	return &CreateResponse{SandboxID: result.SandboxID, TunnelURLs: result.TunnelURLs}, nil
}

// Terminate ends a session's sandbox.
func (o *Orchestrator) Terminate(ctx context.Context, sandboxID string) (*TerminateResponse, error) {
	if sandboxID == "" {
		return nil, apperrors.ValidationError("sandboxId is required")
	}
	if err := o.manager.Terminate(ctx, sandboxID); err != nil {
		return nil, err
	}
	return &TerminateResponse{Success: true}, nil
}

// Hibernate snapshots a session's sandbox filesystem and terminates it.
// The already-finished conflict propagates unchanged for the transport
// layer to render.
func (o *Orchestrator) Hibernate(ctx context.Context, sandboxID string) (*HibernateResponse, error) {
	if sandboxID == "" {
		return nil, apperrors.ValidationError("sandboxId is required")
	}
	imageID, err := o.manager.Hibernate(ctx, sandboxID)
	if err != nil {
		return nil, err
	}
	return &HibernateResponse{SnapshotImageID: imageID}, nil
}

// Restore recreates a session's sandbox from a snapshot image.
func (o *Orchestrator) Restore(ctx context.Context, req *CreateRequest, snapshotImageID string) (*CreateResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if snapshotImageID == "" {
		return nil, apperrors.ValidationError("snapshotImageId is required")
	}

	result, err := o.manager.Restore(ctx, req.config(), snapshotImageID)
	if err != nil {
		return nil, err
	}
	return &CreateResponse{SandboxID: result.SandboxID, TunnelURLs: result.TunnelURLs}, nil
}

// Status reports a session sandbox's liveness.
func (o *Orchestrator) Status(ctx context.Context, sandboxID string) (*StatusResponse, error) {
	if sandboxID == "" {
		return nil, apperrors.ValidationError("sandboxId is required")
	}
	st := o.manager.SandboxStatus(ctx, sandboxID)
	return &StatusResponse{SandboxID: st.SandboxID, Status: st.Status}, nil
}

// DeleteVolume removes a session's workspace volume.
func (o *Orchestrator) DeleteVolume(ctx context.Context, sessionID string) (*VolumeDeleteResponse, error) {
	if sessionID == "" {
		return nil, apperrors.ValidationError("sessionId is required")
	}
	deleted, err := o.manager.DeleteWorkspaceVolume(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return &VolumeDeleteResponse{Deleted: deleted}, nil
}
