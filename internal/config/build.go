package config

import (
	"fmt"
	"regexp"
	"time"

	"github.com/xdg/connectproxy/internal/tunnel"
)

// Build converts a validated FileConfig into the immutable tunnel.Config the
// core pipeline runs with. Callers must call ValidateFileConfig (or go
// through LoadFileConfig, which already does) before calling Build, since
// Build assumes durations and the regex pattern already parse.
func Build(cfg *FileConfig) (*tunnel.Config, error) {
	var policy *tunnel.Policy
	if cfg.Policy.Pattern != "" {
		matcher, err := regexp.Compile(cfg.Policy.Pattern)
		if err != nil {
			return nil, fmt.Errorf("build config: policy.pattern: %w", err)
		}
		mode := tunnel.AllowList
		if cfg.Policy.Mode == "deny_list" {
			mode = tunnel.DenyList
		}
		policy = &tunnel.Policy{Matcher: matcher, Mode: mode}
	}

	stepTimeout, err := parseDurationOrDefault(cfg.HandshakeStepTimeout, 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("build config: handshake_step_timeout: %w", err)
	}
	ttl, err := parseDurationOrDefault(cfg.TunnelTTL, 30*time.Second)
	if err != nil {
		return nil, fmt.Errorf("build config: tunnel_ttl: %w", err)
	}

	maxRequestBytes := cfg.MaxRequestBytes
	if maxRequestBytes == 0 {
		maxRequestBytes = 2048
	}
	maxOpenConnections := cfg.MaxOpenConnections
	if maxOpenConnections == 0 {
		maxOpenConnections = 10000
	}

	return &tunnel.Config{
		Policy:               policy,
		HandshakeStepTimeout: stepTimeout,
		TunnelTTL:            ttl,
		MaxRequestBytes:      maxRequestBytes,
		MaxOpenConnections:   maxOpenConnections,
	}, nil
}

func parseDurationOrDefault(s string, def time.Duration) (time.Duration, error) {
	if s == "" {
		return def, nil
	}
	return time.ParseDuration(s)
}
