// Package config holds the fixed system parameters for sandboxctl.
//
// Settings are layered: built-in defaults, then an optional TOML file
// (default /etc/sandboxctl/config.toml), then environment variables. The
// one secret-valued setting (OPENCODE_SERVER_PASSWORD) is environment-only
// so it never lands in a config file on disk.
//
// The sandbox entry command is configured as a single shell-quoted string
// and parsed into argv form with Command(), so operators can write
// `entry_command = "/bin/bash /start.sh"` naturally.
package config
