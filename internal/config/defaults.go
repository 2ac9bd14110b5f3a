package config

// DefaultFileConfig returns a FileConfig with every default populated.
//
// Security philosophy: with no policy configured, every target is
// permitted. Operators running this proxy anywhere near untrusted clients
// should set policy.mode to allow_list and supply a narrow pattern; the
// default favors "it works out of the box" over "secure out of the box",
// matching the core's own "policy absent ⇒ all targets permitted" rule.
func DefaultFileConfig() *FileConfig {
	return &FileConfig{
		Listen: ":3128",
		Policy: PolicyConfig{
			Mode:    "allow_list",
			Pattern: "",
		},
		HandshakeStepTimeout: "5s",
		TunnelTTL:            "30s",
		MaxRequestBytes:      2048,
		MaxOpenConnections:   10000,
		Log: LogConfig{
			File:   "~/.local/share/connectproxy/connectproxy.log",
			Stdout: true,
			Level:  "info",
		},
	}
}
