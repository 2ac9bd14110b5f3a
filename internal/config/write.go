package config

import (
	"errors"
	"fmt"
	"os"
)

// WriteDefaultConfig creates the default configuration file if none exists.
// The config directory is created if needed; the file is written with 0600
// permissions (user read/write only).
func WriteDefaultConfig() error {
	path := FileConfigPath()

	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat config file: %w", err)
	}

	if err := EnsureDir(); err != nil {
		return err
	}

	data, err := MarshalFileConfig(DefaultFileConfig())
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write default config: %w", err)
	}
	return nil
}

// WriteFileConfig writes cfg to the configuration file, overwriting any
// existing contents.
func WriteFileConfig(cfg *FileConfig) error {
	path := FileConfigPath()

	if err := EnsureDir(); err != nil {
		return err
	}

	data, err := MarshalFileConfig(cfg)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
