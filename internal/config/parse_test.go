package config

import "testing"

const sampleConfig = `
listen: ":3128"
policy:
  mode: allow_list
  pattern: "^.*\\.example\\.com:443$"
handshake_step_timeout: 5s
tunnel_ttl: 30s
max_request_bytes: 2048
max_open_connections: 10000
log:
  file: "~/.local/share/connectproxy/connectproxy.log"
  stdout: true
  level: info
`

func TestParseFileConfig_Valid(t *testing.T) {
	cfg, err := ParseFileConfig([]byte(sampleConfig))
	if err != nil {
		t.Fatalf("ParseFileConfig() error = %v", err)
	}
	if cfg.Listen != ":3128" {
		t.Errorf("Listen = %q, want %q", cfg.Listen, ":3128")
	}
	if cfg.Policy.Mode != "allow_list" {
		t.Errorf("Policy.Mode = %q, want allow_list", cfg.Policy.Mode)
	}
	if cfg.MaxRequestBytes != 2048 {
		t.Errorf("MaxRequestBytes = %d, want 2048", cfg.MaxRequestBytes)
	}
	if cfg.MaxOpenConnections != 10000 {
		t.Errorf("MaxOpenConnections = %d, want 10000", cfg.MaxOpenConnections)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want info", cfg.Log.Level)
	}
}

func TestParseFileConfig_Empty(t *testing.T) {
	cfg, err := ParseFileConfig(nil)
	if err != nil {
		t.Fatalf("ParseFileConfig(nil) error = %v", err)
	}
	if cfg.Listen != "" {
		t.Errorf("Listen = %q, want empty", cfg.Listen)
	}
}

func TestParseFileConfig_UnknownField(t *testing.T) {
	_, err := ParseFileConfig([]byte("bogus_field: true\n"))
	if err == nil {
		t.Fatal("ParseFileConfig() with unknown field: want error, got nil")
	}
}

func TestMarshalFileConfig_RoundTrip(t *testing.T) {
	want := DefaultFileConfig()
	data, err := MarshalFileConfig(want)
	if err != nil {
		t.Fatalf("MarshalFileConfig() error = %v", err)
	}
	got, err := ParseFileConfig(data)
	if err != nil {
		t.Fatalf("ParseFileConfig() error = %v", err)
	}
	if got.Listen != want.Listen || got.MaxRequestBytes != want.MaxRequestBytes {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, want)
	}
}
