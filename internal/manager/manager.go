package manager

import (
	"context"

	"github.com/agent-ops/sandboxctl/internal/backend"
	"github.com/agent-ops/sandboxctl/internal/config"
	apperrors "github.com/agent-ops/sandboxctl/internal/errors"
	"github.com/agent-ops/sandboxctl/internal/image"
	"github.com/agent-ops/sandboxctl/internal/logging"
	"github.com/agent-ops/sandboxctl/internal/naming"
	"github.com/agent-ops/sandboxctl/internal/secrets"
	"github.com/agent-ops/sandboxctl/internal/tunnel"
)

// Sandbox status values reported by Status. All non-running conditions,
// including lookup failures, collapse into StatusTerminated.
const (
	StatusRunning    = "running"
	StatusTerminated = "terminated"
)

// Config is the immutable value object for one create or restore call.
// Constructed fresh per call, never mutated afterwards.
type Config struct {
	SessionID          string
	UserID             string
	Workspace          string
	ImageType          image.Type
	CallbackURL        string
	RunnerToken        string
	JWTSecret          string
	IdleTimeoutSeconds int
	EnvVars            map[string]string
	PersonaFiles       []secrets.PersonaFile
}

// Result is returned by Create and Restore.
type Result struct {
	SandboxID  string
	TunnelURLs map[string]string
}

// Status reports the coarse liveness of a sandbox.
type Status struct {
	SandboxID string
	Status    string
}

// Manager owns the sandbox state transitions: create, terminate, hibernate
// (snapshot + terminate), restore, and status. It holds no in-process
// mutable state; all durable state lives in the backend's volume, image,
// and sandbox registries.
type Manager struct {
	backend  backend.Backend
	settings *config.Settings
}

// New creates a Manager driving the given backend.
func New(b backend.Backend, settings *config.Settings) *Manager {
	return &Manager{backend: b, settings: settings}
}

// Create provisions a new sandbox for a session. The image is resolved
// from the config's image type; unrecognized types have already fallen
// back to the base image at parse time.
func (m *Manager) Create(ctx context.Context, cfg Config) (*Result, error) {
	ref := image.Resolve(cfg.ImageType, m.settings)
	logging.Debug("creating sandbox", "session", cfg.SessionID, "image", cfg.ImageType.String())
	return m.launch(ctx, cfg, ref)
}

// Restore provisions a new sandbox whose root filesystem starts from a
// hibernation snapshot. Identical to Create except for image resolution;
// the snapshot is not invalidated by this layer.
func (m *Manager) Restore(ctx context.Context, cfg Config, snapshotImageID string) (*Result, error) {
	logging.Debug("restoring sandbox", "session", cfg.SessionID, "snapshot", snapshotImageID)
	return m.launch(ctx, cfg, image.FromSnapshot(snapshotImageID))
}

// launch is the shared create/restore path: compose secrets, derive the
// volume attachments, request backend creation, and resolve tunnels.
func (m *Manager) launch(ctx context.Context, cfg Config, ref image.Ref) (*Result, error) {
	composed, err := secrets.Compose(cfg.EnvVars, secrets.Core{
		SessionID:      cfg.SessionID,
		CallbackURL:    cfg.CallbackURL,
		RunnerToken:    cfg.RunnerToken,
		JWTSecret:      cfg.JWTSecret,
		ServerPassword: m.settings.OpencodeServerPassword,
	}, cfg.PersonaFiles)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ExitGeneralError, "failed to compose secrets", err)
	}

	command, err := m.settings.Command()
	if err != nil {
		return nil, apperrors.ConfigError("invalid entry command", err)
	}

	volumes := []backend.VolumeMount{{
		Volume:          naming.WorkspaceVolumeName(cfg.SessionID),
		MountPath:       m.settings.WorkspaceMount,
		CreateIfMissing: true,
	}}
	if m.settings.AssetsVolume != "" {
		volumes = append(volumes, backend.VolumeMount{
			Volume:    m.settings.AssetsVolume,
			MountPath: m.settings.AssetsMount,
			ReadOnly:  true,
		})
	}

	id, err := m.backend.CreateSandbox(ctx, backend.CreateSpec{
		Image:       ref,
		Command:     command,
		TunnelPorts: []int{m.settings.OpencodePort, m.settings.GatewayPort},
		MaxLifetime: m.settings.MaxLifetime(),
		IdleTimeout: m.settings.BackendIdleTimeout(cfg.IdleTimeoutSeconds),
		Secrets:     composed,
		Volumes:     volumes,
		Labels: map[string]string{
			backend.LabelSessionID: cfg.SessionID,
			backend.LabelUserID:    cfg.UserID,
			backend.LabelWorkspace: cfg.Workspace,
		},
	})
	if err != nil {
		return nil, apperrors.BackendFailed("create", err)
	}

	tunnels, err := m.backend.Tunnels(ctx, id)
	if err != nil {
		return nil, apperrors.BackendFailed("list tunnels", err)
	}

	urls := tunnel.Resolve(tunnels, tunnel.Ports{
		Opencode: m.settings.OpencodePort,
		Gateway:  m.settings.GatewayPort,
	})

	logging.Info("sandbox running", "id", id, "session", cfg.SessionID, "tunnels", len(urls))
	return &Result{SandboxID: id, TunnelURLs: urls}, nil
}

// Terminate stops and releases a sandbox. Unknown IDs surface as a
// not-found condition; the surrounding orchestrator may treat that as
// non-fatal.
func (m *Manager) Terminate(ctx context.Context, sandboxID string) error {
	if err := m.backend.Terminate(ctx, sandboxID); err != nil {
		if apperrors.Is(err, backend.ErrNotFound) {
			return apperrors.SandboxNotFound(sandboxID)
		}
		return apperrors.BackendFailed("terminate", err)
	}
	logging.Info("sandbox terminated", "id", sandboxID)
	return nil
}

// Hibernate snapshots a sandbox's filesystem and terminates it, returning
// the snapshot image ID. When the sandbox has already exited (idle-timeout
// reclamation is asynchronous and out of our control), the distinguishable
// already-finished conflict is returned and terminate is not attempted.
// Any other snapshot failure also fails closed: the sandbox is left as-is.
func (m *Manager) Hibernate(ctx context.Context, sandboxID string) (string, error) {
	imageID, err := m.backend.SnapshotFilesystem(ctx, sandboxID, m.settings.SnapshotTimeout())
	if err != nil {
		switch {
		case apperrors.Is(err, backend.ErrAlreadyExited):
			return "", apperrors.AlreadyFinished(sandboxID)
		case apperrors.Is(err, backend.ErrNotFound):
			return "", apperrors.SandboxNotFound(sandboxID)
		default:
			return "", apperrors.BackendFailed("snapshot", err)
		}
	}

	if err := m.backend.Terminate(ctx, sandboxID); err != nil {
		return "", apperrors.BackendFailed("terminate after snapshot", err)
	}

	logging.Info("sandbox hibernated", "id", sandboxID, "snapshot", imageID)
	return imageID, nil
}

// SandboxStatus reports whether a sandbox is running. Every lookup failure
// folds into StatusTerminated: absence is the operationally meaningful
// answer to "is it alive", not an error.
func (m *Manager) SandboxStatus(ctx context.Context, sandboxID string) *Status {
	info, err := m.backend.Inspect(ctx, sandboxID)
	if err != nil || info == nil || !info.Running {
		return &Status{SandboxID: sandboxID, Status: StatusTerminated}
	}
	return &Status{SandboxID: sandboxID, Status: StatusRunning}
}

// DeleteWorkspaceVolume deletes a session's workspace volume. Returns true
// when the volume was deleted, false when it did not exist. Deletion is
// never automatic on terminate or hibernate; this is the explicit path.
func (m *Manager) DeleteWorkspaceVolume(ctx context.Context, sessionID string) (bool, error) {
	name := naming.WorkspaceVolumeName(sessionID)
	if err := m.backend.DeleteVolume(ctx, name); err != nil {
		if apperrors.Is(err, backend.ErrNotFound) {
			return false, nil
		}
		return false, apperrors.BackendFailed("delete volume", err)
	}
	logging.Info("workspace volume deleted", "volume", name)
	return true, nil
}
