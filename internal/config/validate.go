package config

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validPolicyModes = map[string]bool{
	"":           true,
	"allow_list": true,
	"deny_list":  true,
}

// ValidateFileConfig checks that every field of cfg contains a valid value.
// It returns nil if the config is valid, or an error naming the invalid
// field.
func ValidateFileConfig(cfg *FileConfig) error {
	if cfg.Listen != "" {
		if err := validateListenAddr(cfg.Listen, "listen"); err != nil {
			return err
		}
	}

	if !validPolicyModes[cfg.Policy.Mode] {
		return fmt.Errorf("policy.mode: invalid value %q, must be allow_list or deny_list", cfg.Policy.Mode)
	}
	if err := validateRegex(cfg.Policy.Pattern, "policy.pattern"); err != nil {
		return err
	}

	if cfg.HandshakeStepTimeout != "" {
		if err := validateDuration(cfg.HandshakeStepTimeout, "handshake_step_timeout"); err != nil {
			return err
		}
	}
	if cfg.TunnelTTL != "" {
		if err := validateDuration(cfg.TunnelTTL, "tunnel_ttl"); err != nil {
			return err
		}
	}
	if cfg.MaxRequestBytes < 0 {
		return fmt.Errorf("max_request_bytes: must be non-negative, got %d", cfg.MaxRequestBytes)
	}
	if cfg.MaxOpenConnections < 0 {
		return fmt.Errorf("max_open_connections: must be non-negative, got %d", cfg.MaxOpenConnections)
	}

	if cfg.Log.Level != "" && !validLogLevels[cfg.Log.Level] {
		return fmt.Errorf("log.level: invalid value %q, must be one of: debug, info, warn, error", cfg.Log.Level)
	}

	return nil
}

func validateListenAddr(addr, field string) error {
	colonIdx := strings.LastIndex(addr, ":")
	if colonIdx == -1 {
		return fmt.Errorf("%s: invalid format %q, expected host:port or :port", field, addr)
	}

	portStr := addr[colonIdx+1:]
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return fmt.Errorf("%s: invalid port %q in %q", field, portStr, addr)
	}
	if port < 1 || port > 65535 {
		return fmt.Errorf("%s: invalid port number %d, must be 1-65535", field, port)
	}

	return nil
}

func validateDuration(d, field string) error {
	if _, err := time.ParseDuration(d); err != nil {
		return fmt.Errorf("%s: invalid duration %q", field, d)
	}
	return nil
}

func validateRegex(pattern, field string) error {
	if pattern == "" {
		return nil
	}
	if _, err := regexp.Compile(pattern); err != nil {
		return fmt.Errorf("%s: invalid regex %q: %v", field, pattern, err)
	}
	return nil
}
