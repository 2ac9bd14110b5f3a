package config

import (
	"fmt"
	"os"

	"github.com/xdg/connectproxy/internal/pathutil"
)

// Dir returns the proxy configuration directory: $XDG_CONFIG_HOME/connectproxy/
// or ~/.config/connectproxy/ if XDG_CONFIG_HOME is unset. The returned path
// always has a trailing slash.
func Dir() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		base = "~/.config"
	}
	return pathutil.ExpandHome(base) + "/connectproxy/"
}

// EnsureDir creates the configuration directory if it doesn't exist, with
// 0700 permissions (user-only access).
func EnsureDir() error {
	if err := os.MkdirAll(Dir(), 0o700); err != nil {
		return fmt.Errorf("ensure config dir: %w", err)
	}
	return nil
}

// FileConfigPath returns the full path to the configuration file.
func FileConfigPath() string {
	return Dir() + "config.yaml"
}
