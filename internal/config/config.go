package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joeshaw/envdecode"
	"github.com/kballard/go-shellquote"
)

// DefaultConfigPath is where sandboxctl looks for its settings file
// when --config is not given.
const DefaultConfigPath = "/etc/sandboxctl/config.toml"

// Settings holds the fixed system parameters for the sandbox controller.
// Values come from defaults, then an optional TOML file, then environment
// variables, in that order of precedence (environment wins).
type Settings struct {
	// DefaultIdleTimeoutSeconds is used when a request omits its idle timeout.
	DefaultIdleTimeoutSeconds int `toml:"default_idle_timeout_seconds" env:"SANDBOXCTL_DEFAULT_IDLE_TIMEOUT_SECONDS"`

	// IdleTimeoutBufferSeconds is added on top of the requested idle timeout
	// before it is handed to the backend, so the backend never reclaims a
	// sandbox before the caller-visible idle timeout has elapsed.
	IdleTimeoutBufferSeconds int `toml:"idle_timeout_buffer_seconds" env:"SANDBOXCTL_IDLE_TIMEOUT_BUFFER_SECONDS"`

	// MaxLifetimeSeconds is the hard wall-clock ceiling for any sandbox,
	// independent of idle activity.
	MaxLifetimeSeconds int `toml:"max_lifetime_seconds" env:"SANDBOXCTL_MAX_LIFETIME_SECONDS"`

	// SnapshotTimeoutSeconds bounds the filesystem snapshot call during
	// hibernation. Kept well under typical request timeouts because the
	// caller is usually itself inside a time-boxed request.
	SnapshotTimeoutSeconds int `toml:"snapshot_timeout_seconds" env:"SANDBOXCTL_SNAPSHOT_TIMEOUT_SECONDS"`

	// OpencodePort is the container port of the primary interactive service.
	OpencodePort int `toml:"opencode_port" env:"SANDBOXCTL_OPENCODE_PORT"`

	// GatewayPort is the container port of the multiplexed gateway
	// (vscode, vnc and ttyd are path routes behind it).
	GatewayPort int `toml:"gateway_port" env:"SANDBOXCTL_GATEWAY_PORT"`

	// BaseImage is the image used for image type "base".
	BaseImage string `toml:"base_image" env:"SANDBOXCTL_BASE_IMAGE"`

	// EntryCommand is the sandbox entry command as a shell-quoted string.
	EntryCommand string `toml:"entry_command" env:"SANDBOXCTL_ENTRY_COMMAND"`

	// WorkspaceMount is the mount point of the session workspace volume.
	WorkspaceMount string `toml:"workspace_mount" env:"SANDBOXCTL_WORKSPACE_MOUNT"`

	// AssetsVolume optionally names a shared read-only volume (model
	// assets) attached to every sandbox. Empty disables the mount.
	AssetsVolume string `toml:"assets_volume" env:"SANDBOXCTL_ASSETS_VOLUME"`

	// AssetsMount is the mount point for AssetsVolume.
	AssetsMount string `toml:"assets_mount" env:"SANDBOXCTL_ASSETS_MOUNT"`

	// ListenAddr is the bind address for `sandboxctl serve`.
	ListenAddr string `toml:"listen_addr" env:"SANDBOXCTL_LISTEN_ADDR"`

	// OpencodeServerPassword is an optional shared password injected into
	// every sandbox. Environment only, never read from the config file.
	OpencodeServerPassword string `toml:"-" env:"OPENCODE_SERVER_PASSWORD"`
}

// Defaults returns the built-in settings.
func Defaults() *Settings {
	return &Settings{
		DefaultIdleTimeoutSeconds: 900,
		IdleTimeoutBufferSeconds:  1800,
		MaxLifetimeSeconds:        24 * 60 * 60,
		SnapshotTimeoutSeconds:    55,
		OpencodePort:              4096,
		GatewayPort:               9000,
		BaseImage:                 "agentops/sandbox-base:latest",
		EntryCommand:              "/bin/bash /start.sh",
		WorkspaceMount:            "/workspace",
		AssetsMount:               "/models",
		ListenAddr:                "127.0.0.1:8080",
	}
}

// Load builds Settings from defaults, an optional TOML file at path, and
// environment variable overrides. A missing file is not an error; a
// malformed one is.
func Load(path string) (*Settings, error) {
	s := Defaults()

	if path == "" {
		path = DefaultConfigPath
	}
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, s); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	s.applyEnv()

	if err := s.Validate(); err != nil {
		return nil, err
	}

	return s, nil
}

// applyEnv overlays environment variables onto s. Only variables that are
// actually set override file or default values.
func (s *Settings) applyEnv() {
	var env Settings
	// Best-effort: envdecode errors only when nothing is tagged, which
	// cannot happen here.
	_ = envdecode.Decode(&env)

	if env.DefaultIdleTimeoutSeconds != 0 {
		s.DefaultIdleTimeoutSeconds = env.DefaultIdleTimeoutSeconds
	}
	if env.IdleTimeoutBufferSeconds != 0 {
		s.IdleTimeoutBufferSeconds = env.IdleTimeoutBufferSeconds
	}
	if env.MaxLifetimeSeconds != 0 {
		s.MaxLifetimeSeconds = env.MaxLifetimeSeconds
	}
	if env.SnapshotTimeoutSeconds != 0 {
		s.SnapshotTimeoutSeconds = env.SnapshotTimeoutSeconds
	}
	if env.OpencodePort != 0 {
		s.OpencodePort = env.OpencodePort
	}
	if env.GatewayPort != 0 {
		s.GatewayPort = env.GatewayPort
	}
	if env.BaseImage != "" {
		s.BaseImage = env.BaseImage
	}
	if env.EntryCommand != "" {
		s.EntryCommand = env.EntryCommand
	}
	if env.WorkspaceMount != "" {
		s.WorkspaceMount = env.WorkspaceMount
	}
	if env.AssetsVolume != "" {
		s.AssetsVolume = env.AssetsVolume
	}
	if env.AssetsMount != "" {
		s.AssetsMount = env.AssetsMount
	}
	if env.ListenAddr != "" {
		s.ListenAddr = env.ListenAddr
	}
	if env.OpencodeServerPassword != "" {
		s.OpencodeServerPassword = env.OpencodeServerPassword
	}
}

// Validate checks that the settings are usable.
func (s *Settings) Validate() error {
	if s.DefaultIdleTimeoutSeconds <= 0 {
		return fmt.Errorf("default_idle_timeout_seconds must be positive")
	}
	if s.IdleTimeoutBufferSeconds < 0 {
		return fmt.Errorf("idle_timeout_buffer_seconds cannot be negative")
	}
	if s.MaxLifetimeSeconds <= 0 {
		return fmt.Errorf("max_lifetime_seconds must be positive")
	}
	if s.SnapshotTimeoutSeconds <= 0 {
		return fmt.Errorf("snapshot_timeout_seconds must be positive")
	}
	if s.OpencodePort <= 0 || s.OpencodePort > 65535 {
		return fmt.Errorf("opencode_port out of range: %d", s.OpencodePort)
	}
	if s.GatewayPort <= 0 || s.GatewayPort > 65535 {
		return fmt.Errorf("gateway_port out of range: %d", s.GatewayPort)
	}
	if s.OpencodePort == s.GatewayPort {
		return fmt.Errorf("opencode_port and gateway_port must differ")
	}
	if s.BaseImage == "" {
		return fmt.Errorf("base_image is required")
	}
	if s.WorkspaceMount == "" {
		return fmt.Errorf("workspace_mount is required")
	}
	if _, err := s.Command(); err != nil {
		return err
	}
	return nil
}

// Command returns the sandbox entry command parsed into argv form.
func (s *Settings) Command() ([]string, error) {
	argv, err := shellquote.Split(s.EntryCommand)
	if err != nil {
		return nil, fmt.Errorf("invalid entry_command %q: %w", s.EntryCommand, err)
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("entry_command is empty")
	}
	return argv, nil
}

// MaxLifetime returns the hard wall-clock ceiling as a duration.
func (s *Settings) MaxLifetime() time.Duration {
	return time.Duration(s.MaxLifetimeSeconds) * time.Second
}

// SnapshotTimeout returns the snapshot call bound as a duration.
func (s *Settings) SnapshotTimeout() time.Duration {
	return time.Duration(s.SnapshotTimeoutSeconds) * time.Second
}

// BackendIdleTimeout computes the idle timeout handed to the backend for a
// requested caller value. Zero or negative requests fall back to the
// default. The safety buffer is always added so backend reclamation never
// races ahead of the caller-visible idle timeout.
func (s *Settings) BackendIdleTimeout(requestedSeconds int) time.Duration {
	if requestedSeconds <= 0 {
		requestedSeconds = s.DefaultIdleTimeoutSeconds
	}
	return time.Duration(requestedSeconds+s.IdleTimeoutBufferSeconds) * time.Second
}
