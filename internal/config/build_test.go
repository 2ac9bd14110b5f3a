package config

import (
	"testing"
	"time"

	"github.com/xdg/connectproxy/internal/tunnel"
)

func TestBuild_NoPolicy(t *testing.T) {
	cfg := DefaultFileConfig()
	cfg.Policy.Pattern = ""

	rt, err := Build(cfg)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if rt.Policy != nil {
		t.Errorf("Policy = %+v, want nil", rt.Policy)
	}
	if rt.HandshakeStepTimeout != 5*time.Second {
		t.Errorf("HandshakeStepTimeout = %v, want 5s", rt.HandshakeStepTimeout)
	}
	if rt.MaxRequestBytes != 2048 {
		t.Errorf("MaxRequestBytes = %d, want 2048", rt.MaxRequestBytes)
	}
}

func TestBuild_WithPolicy(t *testing.T) {
	cfg := DefaultFileConfig()
	cfg.Policy.Mode = "deny_list"
	cfg.Policy.Pattern = "^169\\.254\\."

	rt, err := Build(cfg)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if rt.Policy == nil {
		t.Fatal("Policy = nil, want non-nil")
	}
	if rt.Policy.Mode != tunnel.DenyList {
		t.Errorf("Policy.Mode = %v, want DenyList", rt.Policy.Mode)
	}
	if !rt.Policy.Matcher.MatchString("169.254.169.254:80") {
		t.Error("Matcher did not match expected target")
	}
}

func TestBuild_BadPattern(t *testing.T) {
	cfg := DefaultFileConfig()
	cfg.Policy.Pattern = "("
	if _, err := Build(cfg); err == nil {
		t.Fatal("Build() with invalid pattern: want error, got nil")
	}
}
