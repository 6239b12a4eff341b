package backend

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Mock is an in-memory Backend implementation for testing.
type Mock struct {
	mu sync.RWMutex

	// Sandboxes tracks the state of mock sandboxes by ID.
	Sandboxes map[string]*Info

	// Volumes tracks volume names known to the mock.
	Volumes map[string]bool

	// TunnelMap is returned by Tunnels for any running sandbox.
	TunnelMap map[int]string

	// Snapshots records snapshot image IDs produced per sandbox.
	Snapshots map[string]string

	// Errors allows injecting errors for specific operations by method name.
	Errors map[string]error

	// CallLog records all method calls for verification.
	CallLog []MockCall

	// LastCreateSpec holds the spec of the most recent CreateSandbox call.
	LastCreateSpec CreateSpec
}

// MockCall represents a recorded method call.
type MockCall struct {
	Method string
	Args   []interface{}
}

// NewMock creates a new mock backend.
func NewMock() *Mock {
	return &Mock{
		Sandboxes: make(map[string]*Info),
		Volumes:   make(map[string]bool),
		TunnelMap: make(map[int]string),
		Snapshots: make(map[string]string),
		Errors:    make(map[string]error),
		CallLog:   make([]MockCall, 0),
	}
}

func (m *Mock) record(method string, args ...interface{}) {
	m.CallLog = append(m.CallLog, MockCall{Method: method, Args: args})
}

// SetError sets an error to be returned for a specific operation.
func (m *Mock) SetError(operation string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors[operation] = err
}

// SetTunnels sets the tunnel map returned for running sandboxes.
func (m *Mock) SetTunnels(tunnels map[int]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TunnelMap = tunnels
}

// AddSandbox registers a sandbox in the given liveness state.
func (m *Mock) AddSandbox(id string, running bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sandboxes[id] = &Info{ID: id, Running: running, StartedAt: time.Now()}
}

// GetCallsFor returns all recorded calls for a specific method.
func (m *Mock) GetCallsFor(method string) []MockCall {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var calls []MockCall
	for _, call := range m.CallLog {
		if call.Method == method {
			calls = append(calls, call)
		}
	}
	return calls
}

// Reset clears all state.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sandboxes = make(map[string]*Info)
	m.Volumes = make(map[string]bool)
	m.TunnelMap = make(map[int]string)
	m.Snapshots = make(map[string]string)
	m.Errors = make(map[string]error)
	m.CallLog = make([]MockCall, 0)
	m.LastCreateSpec = CreateSpec{}
}

// Name returns the backend identifier.
func (m *Mock) Name() string {
	return "mock"
}

// CreateSandbox registers a new running sandbox with a generated ID.
func (m *Mock) CreateSandbox(ctx context.Context, spec CreateSpec) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("CreateSandbox", spec)
	m.LastCreateSpec = spec

	if err, ok := m.Errors["CreateSandbox"]; ok {
		return "", err
	}

	for _, v := range spec.Volumes {
		if !v.CreateIfMissing && !m.Volumes[v.Volume] {
			return "", fmt.Errorf("volume %s: %w", v.Volume, ErrNotFound)
		}
		m.Volumes[v.Volume] = true
	}

	id := "sb-" + uuid.NewString()
	m.Sandboxes[id] = &Info{
		ID:        id,
		Running:   true,
		StartedAt: time.Now(),
		Labels:    spec.Labels,
	}
	return id, nil
}

// Terminate removes a sandbox.
func (m *Mock) Terminate(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Terminate", id)

	if err, ok := m.Errors["Terminate"]; ok {
		return err
	}

	if _, ok := m.Sandboxes[id]; !ok {
		return fmt.Errorf("sandbox %s: %w", id, ErrNotFound)
	}
	delete(m.Sandboxes, id)
	return nil
}

// Inspect reports liveness for a sandbox.
func (m *Mock) Inspect(ctx context.Context, id string) (*Info, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Inspect", id)

	if err, ok := m.Errors["Inspect"]; ok {
		return nil, err
	}

	if info, ok := m.Sandboxes[id]; ok {
		return info, nil
	}
	return nil, fmt.Errorf("sandbox %s: %w", id, ErrNotFound)
}

// SnapshotFilesystem produces a snapshot image ID for a running sandbox.
func (m *Mock) SnapshotFilesystem(ctx context.Context, id string, timeout time.Duration) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("SnapshotFilesystem", id, timeout)

	if err, ok := m.Errors["SnapshotFilesystem"]; ok {
		return "", err
	}

	info, ok := m.Sandboxes[id]
	if !ok {
		return "", fmt.Errorf("sandbox %s: %w", id, ErrNotFound)
	}
	if !info.Running {
		return "", fmt.Errorf("sandbox %s: %w", id, ErrAlreadyExited)
	}

	imageID := "img-" + uuid.NewString()
	m.Snapshots[id] = imageID
	return imageID, nil
}

// Tunnels returns the configured tunnel map for a known sandbox.
func (m *Mock) Tunnels(ctx context.Context, id string) (map[int]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("Tunnels", id)

	if err, ok := m.Errors["Tunnels"]; ok {
		return nil, err
	}

	if _, ok := m.Sandboxes[id]; !ok {
		return nil, fmt.Errorf("sandbox %s: %w", id, ErrNotFound)
	}

	tunnels := make(map[int]string, len(m.TunnelMap))
	for k, v := range m.TunnelMap {
		tunnels[k] = v
	}
	return tunnels, nil
}

// DeleteVolume removes a volume.
func (m *Mock) DeleteVolume(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("DeleteVolume", name)

	if err, ok := m.Errors["DeleteVolume"]; ok {
		return err
	}

	if !m.Volumes[name] {
		return fmt.Errorf("volume %s: %w", name, ErrNotFound)
	}
	delete(m.Volumes, name)
	return nil
}

// List enumerates all mock sandboxes.
func (m *Mock) List(ctx context.Context) ([]*Info, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("List")

	if err, ok := m.Errors["List"]; ok {
		return nil, err
	}

	var infos []*Info
	for _, info := range m.Sandboxes {
		infos = append(infos, info)
	}
	return infos, nil
}

// Ensure Mock implements Backend
var _ Backend = (*Mock)(nil)
