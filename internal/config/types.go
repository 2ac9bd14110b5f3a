// Package config loads and validates the on-disk YAML configuration for the
// proxy and builds the immutable tunnel.Config the core pipeline runs with.
package config

// FileConfig is the on-disk shape of the proxy configuration file, typically
// stored at ~/.config/connectproxy/config.yaml. Durations are kept as
// strings (parsed by ValidateFileConfig/Build) so the YAML stays readable
// ("5s" rather than a nanosecond integer).
type FileConfig struct {
	Listen string `yaml:"listen,omitempty"`

	Policy PolicyConfig `yaml:"policy,omitempty"`

	HandshakeStepTimeout string `yaml:"handshake_step_timeout,omitempty"`
	TunnelTTL            string `yaml:"tunnel_ttl,omitempty"`
	MaxRequestBytes      int    `yaml:"max_request_bytes,omitempty"`
	MaxOpenConnections   int    `yaml:"max_open_connections,omitempty"`

	Log LogConfig `yaml:"log,omitempty"`
}

// PolicyConfig configures the Policy Gate. An empty Pattern permits every
// target, matching the core's "policy absent" rule.
type PolicyConfig struct {
	Mode    string `yaml:"mode,omitempty"` // "allow_list" or "deny_list"
	Pattern string `yaml:"pattern,omitempty"`
}

// LogConfig holds the logging settings. Level and ResultFile configure the
// structured per-request result sink (internal/resultlog). File and Stdout
// are stored and written back but not read by any command: the operational
// logger (internal/clog) always writes to clog.DefaultLogPath().
type LogConfig struct {
	File   string `yaml:"file,omitempty"`
	Stdout bool   `yaml:"stdout,omitempty"`
	Level  string `yaml:"level,omitempty"`

	// ResultFile, when set, receives one JSON line per RequestResult,
	// independent of the operational log. Empty means stdout.
	ResultFile string `yaml:"result_file,omitempty"`
}
