package backend

import (
	"context"
	"errors"
	"time"

	"github.com/agent-ops/sandboxctl/internal/image"
)

// Sentinel errors distinguishing backend conditions the lifecycle layer
// must react to. Implementations wrap these with %w.
var (
	// ErrNotFound is returned when a sandbox or volume ID is unknown.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExited is returned by SnapshotFilesystem when the sandbox
	// has already finished (e.g. it hit its idle timeout concurrently).
	ErrAlreadyExited = errors.New("sandbox already exited")
)

// Session labels stamped on sandboxes at creation, for discovery by List
// and the CLI.
const (
	LabelSessionID = "sandboxctl.session-id"
	LabelUserID    = "sandboxctl.user-id"
	LabelWorkspace = "sandboxctl.workspace"
)

// VolumeMount attaches a named backend volume to a sandbox.
type VolumeMount struct {
	Volume          string
	MountPath       string
	ReadOnly        bool
	CreateIfMissing bool
}

// CreateSpec describes one sandbox creation request.
type CreateSpec struct {
	// Image is the root filesystem: a named tag or a snapshot by ID.
	Image image.Ref

	// Command is the sandbox entry command in argv form.
	Command []string

	// TunnelPorts lists container ports to expose as encrypted tunnels.
	TunnelPorts []int

	// MaxLifetime is the hard wall-clock ceiling, independent of idle.
	MaxLifetime time.Duration

	// IdleTimeout is the inactivity window after which the backend may
	// reclaim the sandbox.
	IdleTimeout time.Duration

	// Secrets is the composed environment bundle.
	Secrets map[string]string

	// Volumes are the volume attachments.
	Volumes []VolumeMount

	// Labels annotate the sandbox for later discovery.
	Labels map[string]string
}

// Info describes a backend-known sandbox.
type Info struct {
	ID        string
	Running   bool
	StartedAt time.Time
	Labels    map[string]string
}

// Backend is the single sandbox-provisioning backend this controller
// drives. All methods must be safe for concurrent use; serialization of
// racing operations on one sandbox ID is the backend's concern, not the
// caller's.
type Backend interface {
	// Name returns the backend identifier (e.g. "docker", "mock").
	Name() string

	// CreateSandbox provisions and starts a sandbox, returning its ID.
	// May take minutes on a cold image; callers set generous deadlines.
	CreateSandbox(ctx context.Context, spec CreateSpec) (string, error)

	// Terminate stops and releases a sandbox. Unknown IDs return
	// ErrNotFound.
	Terminate(ctx context.Context, id string) error

	// Inspect reports liveness for a sandbox. Unknown IDs return
	// ErrNotFound.
	Inspect(ctx context.Context, id string) (*Info, error)

	// SnapshotFilesystem captures the sandbox filesystem as an immutable
	// image and returns the image ID. Returns ErrAlreadyExited when the
	// sandbox has already finished, ErrNotFound when the ID is unknown.
	SnapshotFilesystem(ctx context.Context, id string, timeout time.Duration) (string, error)

	// Tunnels returns the live tunnel URLs keyed by container port.
	Tunnels(ctx context.Context, id string) (map[int]string, error)

	// DeleteVolume removes a named volume. Returns ErrNotFound when the
	// volume does not exist.
	DeleteVolume(ctx context.Context, name string) error

	// List enumerates sandboxes this controller created, running or not.
	List(ctx context.Context) ([]*Info, error)
}
