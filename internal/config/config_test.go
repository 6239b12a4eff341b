package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	s := Defaults()

	if s.DefaultIdleTimeoutSeconds != 900 {
		t.Errorf("DefaultIdleTimeoutSeconds = %d, want 900", s.DefaultIdleTimeoutSeconds)
	}
	if s.IdleTimeoutBufferSeconds != 1800 {
		t.Errorf("IdleTimeoutBufferSeconds = %d, want 1800", s.IdleTimeoutBufferSeconds)
	}
	if s.MaxLifetimeSeconds != 86400 {
		t.Errorf("MaxLifetimeSeconds = %d, want 86400", s.MaxLifetimeSeconds)
	}
	if s.OpencodePort != 4096 || s.GatewayPort != 9000 {
		t.Errorf("ports = %d/%d, want 4096/9000", s.OpencodePort, s.GatewayPort)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Defaults should validate: %v", err)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load() with missing file failed: %v", err)
	}
	if s.DefaultIdleTimeoutSeconds != 900 {
		t.Errorf("expected defaults, got idle timeout %d", s.DefaultIdleTimeoutSeconds)
	}
}

func TestLoad_TOMLOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
default_idle_timeout_seconds = 600
gateway_port = 9001
base_image = "agentops/sandbox-base:v2"
assets_volume = "whisper-models"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if s.DefaultIdleTimeoutSeconds != 600 {
		t.Errorf("DefaultIdleTimeoutSeconds = %d, want 600", s.DefaultIdleTimeoutSeconds)
	}
	if s.GatewayPort != 9001 {
		t.Errorf("GatewayPort = %d, want 9001", s.GatewayPort)
	}
	if s.BaseImage != "agentops/sandbox-base:v2" {
		t.Errorf("BaseImage = %q", s.BaseImage)
	}
	if s.AssetsVolume != "whisper-models" {
		t.Errorf("AssetsVolume = %q", s.AssetsVolume)
	}
	// Untouched fields keep defaults
	if s.OpencodePort != 4096 {
		t.Errorf("OpencodePort = %d, want default 4096", s.OpencodePort)
	}
}

func TestLoad_EnvWinsOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("gateway_port = 9001\n"), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("SANDBOXCTL_GATEWAY_PORT", "9002")
	t.Setenv("OPENCODE_SERVER_PASSWORD", "hunter2")

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if s.GatewayPort != 9002 {
		t.Errorf("GatewayPort = %d, want env override 9002", s.GatewayPort)
	}
	if s.OpencodeServerPassword != "hunter2" {
		t.Errorf("OpencodeServerPassword = %q", s.OpencodeServerPassword)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("not [valid toml"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load() should fail on malformed TOML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
	}{
		{"zero idle timeout", func(s *Settings) { s.DefaultIdleTimeoutSeconds = 0 }},
		{"negative buffer", func(s *Settings) { s.IdleTimeoutBufferSeconds = -1 }},
		{"zero lifetime", func(s *Settings) { s.MaxLifetimeSeconds = 0 }},
		{"port out of range", func(s *Settings) { s.OpencodePort = 70000 }},
		{"equal ports", func(s *Settings) { s.GatewayPort = s.OpencodePort }},
		{"empty image", func(s *Settings) { s.BaseImage = "" }},
		{"empty workspace mount", func(s *Settings) { s.WorkspaceMount = "" }},
		{"unbalanced entry command", func(s *Settings) { s.EntryCommand = `/bin/bash "unterminated` }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Defaults()
			tt.mutate(s)
			if err := s.Validate(); err == nil {
				t.Error("Validate() should have failed")
			}
		})
	}
}

func TestCommand(t *testing.T) {
	s := Defaults()
	argv, err := s.Command()
	if err != nil {
		t.Fatalf("Command() failed: %v", err)
	}
	if len(argv) != 2 || argv[0] != "/bin/bash" || argv[1] != "/start.sh" {
		t.Errorf("Command() = %v", argv)
	}

	s.EntryCommand = `/usr/bin/env sh -c "exec /start.sh --mode full"`
	argv, err = s.Command()
	if err != nil {
		t.Fatalf("Command() failed: %v", err)
	}
	want := []string{"/usr/bin/env", "sh", "-c", "exec /start.sh --mode full"}
	if len(argv) != len(want) {
		t.Fatalf("Command() = %v, want %v", argv, want)
	}
	for i := range want {
		if argv[i] != want[i] {
			t.Errorf("argv[%d] = %q, want %q", i, argv[i], want[i])
		}
	}
}

func TestBackendIdleTimeout(t *testing.T) {
	s := Defaults()

	if got := s.BackendIdleTimeout(900); got != 2700*time.Second {
		t.Errorf("BackendIdleTimeout(900) = %v, want 45m", got)
	}
	// Zero falls back to the default before the buffer is applied
	if got := s.BackendIdleTimeout(0); got != 2700*time.Second {
		t.Errorf("BackendIdleTimeout(0) = %v, want 45m", got)
	}
	if got := s.BackendIdleTimeout(-5); got != 2700*time.Second {
		t.Errorf("BackendIdleTimeout(-5) = %v, want 45m", got)
	}
}
