package backend

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	imagetypes "github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/mount"
	"github.com/docker/docker/api/types/volume"
	"github.com/docker/docker/client"
	"github.com/docker/docker/errdefs"
	"github.com/docker/go-connections/nat"

	"github.com/agent-ops/sandboxctl/internal/logging"
)

// Labels stamped on every container this controller creates.
const (
	labelManaged     = "sandboxctl.managed"
	labelIdleTimeout = "sandboxctl.idle-timeout-seconds"
	labelMaxLifetime = "sandboxctl.max-lifetime-seconds"

	snapshotRepository = "sandboxctl/snapshot"
)

// Docker implements Backend against a Docker engine. Sandboxes are labeled
// containers; snapshots are container commits; tunnels are container ports
// published on loopback ephemeral host ports.
type Docker struct {
	cli *client.Client
}

// NewDocker creates a Docker backend from the environment (DOCKER_HOST etc.).
func NewDocker() (*Docker, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("failed to create Docker client: %w", err)
	}
	return &Docker{cli: cli}, nil
}

// NewDockerWithClient creates a Docker backend around an existing client.
func NewDockerWithClient(cli *client.Client) *Docker {
	return &Docker{cli: cli}
}

// Name returns the backend identifier.
func (d *Docker) Name() string {
	return "docker"
}

// CreateSandbox provisions and starts a sandbox container.
func (d *Docker) CreateSandbox(ctx context.Context, spec CreateSpec) (string, error) {
	imageRef, err := d.resolveImage(ctx, spec.Image.Tag, spec.Image.SnapshotID)
	if err != nil {
		return "", err
	}

	mounts, err := d.prepareVolumes(ctx, spec.Volumes)
	if err != nil {
		return "", err
	}

	exposed, bindings := tunnelPortBindings(spec.TunnelPorts)

	labels := map[string]string{
		labelManaged:     "true",
		labelIdleTimeout: strconv.Itoa(int(spec.IdleTimeout.Seconds())),
		labelMaxLifetime: strconv.Itoa(int(spec.MaxLifetime.Seconds())),
	}
	for k, v := range spec.Labels {
		labels[k] = v
	}

	containerCfg := &container.Config{
		Image:        imageRef,
		Cmd:          spec.Command,
		Env:          envList(spec.Secrets),
		Labels:       labels,
		ExposedPorts: exposed,
	}
	hostCfg := &container.HostConfig{
		Mounts:       mounts,
		PortBindings: bindings,
	}

	resp, err := d.cli.ContainerCreate(ctx, containerCfg, hostCfg, nil, nil, "")
	if err != nil {
		return "", fmt.Errorf("failed to create container: %w", err)
	}

	if err := d.cli.ContainerStart(ctx, resp.ID, container.StartOptions{}); err != nil {
		_ = d.cli.ContainerRemove(ctx, resp.ID, container.RemoveOptions{Force: true})
		return "", fmt.Errorf("failed to start container: %w", err)
	}

	logging.Debug("sandbox container started", "id", resp.ID, "image", imageRef)
	return resp.ID, nil
}

// resolveImage returns the image reference to boot from, pulling named tags
// that are not present locally. Snapshot IDs are always local (they are
// produced by commits on this engine).
func (d *Docker) resolveImage(ctx context.Context, tag, snapshotID string) (string, error) {
	if snapshotID != "" {
		if _, _, err := d.cli.ImageInspectWithRaw(ctx, snapshotID); err != nil {
			if errdefs.IsNotFound(err) {
				return "", fmt.Errorf("snapshot image %s: %w", snapshotID, ErrNotFound)
			}
			return "", fmt.Errorf("failed to inspect snapshot image %s: %w", snapshotID, err)
		}
		return snapshotID, nil
	}

	if _, _, err := d.cli.ImageInspectWithRaw(ctx, tag); err == nil {
		return tag, nil
	}

	logging.Debug("pulling image", "tag", tag)
	reader, err := d.cli.ImagePull(ctx, tag, imagetypes.PullOptions{})
	if err != nil {
		return "", fmt.Errorf("failed to pull image %s: %w", tag, err)
	}
	defer reader.Close()
	if _, err := io.Copy(io.Discard, reader); err != nil {
		return "", fmt.Errorf("failed to pull image %s: %w", tag, err)
	}

	return tag, nil
}

// prepareVolumes ensures named volumes exist per their CreateIfMissing
// policy and returns the container mounts.
func (d *Docker) prepareVolumes(ctx context.Context, vols []VolumeMount) ([]mount.Mount, error) {
	mounts := make([]mount.Mount, 0, len(vols))
	for _, v := range vols {
		if v.CreateIfMissing {
			// VolumeCreate is a no-op for an existing name.
			if _, err := d.cli.VolumeCreate(ctx, volume.CreateOptions{Name: v.Volume}); err != nil {
				return nil, fmt.Errorf("failed to ensure volume %s: %w", v.Volume, err)
			}
		} else {
			if _, err := d.cli.VolumeInspect(ctx, v.Volume); err != nil {
				if errdefs.IsNotFound(err) {
					return nil, fmt.Errorf("volume %s: %w", v.Volume, ErrNotFound)
				}
				return nil, fmt.Errorf("failed to inspect volume %s: %w", v.Volume, err)
			}
		}

		mounts = append(mounts, mount.Mount{
			Type:     mount.TypeVolume,
			Source:   v.Volume,
			Target:   v.MountPath,
			ReadOnly: v.ReadOnly,
		})
	}
	return mounts, nil
}

// Terminate stops and removes a sandbox container.
func (d *Docker) Terminate(ctx context.Context, id string) error {
	if _, err := d.cli.ContainerInspect(ctx, id); err != nil {
		if errdefs.IsNotFound(err) {
			return fmt.Errorf("sandbox %s: %w", id, ErrNotFound)
		}
		return fmt.Errorf("failed to inspect sandbox %s: %w", id, err)
	}

	stopTimeout := 10
	if err := d.cli.ContainerStop(ctx, id, container.StopOptions{Timeout: &stopTimeout}); err != nil && !errdefs.IsNotFound(err) {
		logging.Debug("container stop failed, forcing removal", "id", id, "error", err)
	}

	if err := d.cli.ContainerRemove(ctx, id, container.RemoveOptions{Force: true}); err != nil {
		if errdefs.IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("failed to remove sandbox %s: %w", id, err)
	}

	return nil
}

// Inspect reports liveness for a sandbox container.
func (d *Docker) Inspect(ctx context.Context, id string) (*Info, error) {
	detail, err := d.cli.ContainerInspect(ctx, id)
	if err != nil {
		if errdefs.IsNotFound(err) {
			return nil, fmt.Errorf("sandbox %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to inspect sandbox %s: %w", id, err)
	}

	info := &Info{
		ID:      detail.ID,
		Running: detail.State != nil && detail.State.Running,
	}
	if detail.Config != nil {
		info.Labels = detail.Config.Labels
	}
	if detail.State != nil && detail.State.StartedAt != "" {
		if ts, err := time.Parse(time.RFC3339Nano, detail.State.StartedAt); err == nil {
			info.StartedAt = ts
		}
	}
	return info, nil
}

// SnapshotFilesystem commits the sandbox filesystem to an immutable image.
func (d *Docker) SnapshotFilesystem(ctx context.Context, id string, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	detail, err := d.cli.ContainerInspect(ctx, id)
	if err != nil {
		if errdefs.IsNotFound(err) {
			return "", fmt.Errorf("sandbox %s: %w", id, ErrNotFound)
		}
		return "", fmt.Errorf("failed to inspect sandbox %s: %w", id, err)
	}
	if detail.State == nil || !detail.State.Running {
		return "", fmt.Errorf("sandbox %s: %w", id, ErrAlreadyExited)
	}

	ref := fmt.Sprintf("%s:%d", snapshotRepository, time.Now().UnixNano())
	resp, err := d.cli.ContainerCommit(ctx, id, container.CommitOptions{Reference: ref})
	if err != nil {
		if errdefs.IsNotFound(err) || errdefs.IsConflict(err) {
			return "", fmt.Errorf("sandbox %s: %w", id, ErrAlreadyExited)
		}
		return "", fmt.Errorf("failed to snapshot sandbox %s: %w", id, err)
	}

	logging.Debug("filesystem snapshot committed", "sandbox", id, "image", resp.ID)
	return resp.ID, nil
}

// Tunnels returns the published-port URLs for a running sandbox.
func (d *Docker) Tunnels(ctx context.Context, id string) (map[int]string, error) {
	detail, err := d.cli.ContainerInspect(ctx, id)
	if err != nil {
		if errdefs.IsNotFound(err) {
			return nil, fmt.Errorf("sandbox %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to inspect sandbox %s: %w", id, err)
	}

	if detail.NetworkSettings == nil {
		return map[int]string{}, nil
	}
	return tunnelsFromPortMap(detail.NetworkSettings.Ports), nil
}

// DeleteVolume removes a named volume.
func (d *Docker) DeleteVolume(ctx context.Context, name string) error {
	if err := d.cli.VolumeRemove(ctx, name, false); err != nil {
		if errdefs.IsNotFound(err) {
			return fmt.Errorf("volume %s: %w", name, ErrNotFound)
		}
		return fmt.Errorf("failed to remove volume %s: %w", name, err)
	}
	return nil
}

// List enumerates the containers this controller created.
func (d *Docker) List(ctx context.Context) ([]*Info, error) {
	args := filters.NewArgs(filters.Arg("label", labelManaged+"=true"))
	containers, err := d.cli.ContainerList(ctx, container.ListOptions{All: true, Filters: args})
	if err != nil {
		return nil, fmt.Errorf("failed to list sandboxes: %w", err)
	}

	infos := make([]*Info, 0, len(containers))
	for _, c := range containers {
		infos = append(infos, &Info{
			ID:        c.ID,
			Running:   c.State == "running",
			StartedAt: time.Unix(c.Created, 0),
			Labels:    c.Labels,
		})
	}
	return infos, nil
}

// envList flattens a secrets map into KEY=VALUE form, sorted for stable
// container configs.
func envList(secrets map[string]string) []string {
	keys := make([]string, 0, len(secrets))
	for k := range secrets {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	env := make([]string, 0, len(keys))
	for _, k := range keys {
		env = append(env, k+"="+secrets[k])
	}
	return env
}

// tunnelPortBindings builds the exposed-port set and loopback ephemeral
// host bindings for the requested tunnel ports.
func tunnelPortBindings(ports []int) (nat.PortSet, nat.PortMap) {
	exposed := make(nat.PortSet, len(ports))
	bindings := make(nat.PortMap, len(ports))
	for _, p := range ports {
		port := nat.Port(fmt.Sprintf("%d/tcp", p))
		exposed[port] = struct{}{}
		bindings[port] = []nat.PortBinding{{HostIP: "127.0.0.1", HostPort: ""}}
	}
	return exposed, bindings
}

// tunnelsFromPortMap converts published-port bindings to tunnel URLs keyed
// by container port.
func tunnelsFromPortMap(ports nat.PortMap) map[int]string {
	tunnels := make(map[int]string)
	for port, bindings := range ports {
		if len(bindings) == 0 {
			continue
		}
		hostPort := bindings[0].HostPort
		if hostPort == "" {
			continue
		}
		tunnels[port.Int()] = "http://127.0.0.1:" + hostPort
	}
	return tunnels
}

// Ensure Docker implements Backend
var _ Backend = (*Docker)(nil)
