package config

import (
	"errors"
	"fmt"
	"log"
	"os"
)

// LoadFileConfig loads the configuration from the default path. If the file
// doesn't exist, it writes the defaults to disk and returns them. If the
// file exists but cannot be read, parsed, or validated, it returns an
// error.
func LoadFileConfig() (*FileConfig, error) {
	path := FileConfigPath()
	log.Printf("config: loading config from %s", path)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Printf("config: file not found, creating defaults")
			if writeErr := WriteDefaultConfig(); writeErr != nil {
				log.Printf("config: warning: failed to create default config: %v", writeErr)
			}
			return DefaultFileConfig(), nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg, err := ParseFileConfig(data)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if err := ValidateFileConfig(cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return cfg, nil
}
