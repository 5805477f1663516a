package config

import (
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_FlagsWinOverEnv(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PROMPTVAL_PROVIDER", "gemini")
	t.Setenv("PROMPTVAL_MODEL", "env-model")

	cfg, err := Load("pol.yaml", "log.jsonl", "anthropic", "flag-model", "", 10*time.Second, 0.5)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Provider != "anthropic" {
		t.Errorf("provider = %q, want flag value", cfg.Provider)
	}
	if cfg.Model != "flag-model" {
		t.Errorf("model = %q, want flag value", cfg.Model)
	}
	if cfg.PolicyPath != "pol.yaml" || cfg.LogPath != "log.jsonl" {
		t.Errorf("paths = %q %q, want flag values", cfg.PolicyPath, cfg.LogPath)
	}
	if cfg.Timeout != 10*time.Second || cfg.Temperature != 0.5 {
		t.Errorf("timeout/temperature = %v/%v", cfg.Timeout, cfg.Temperature)
	}
}

func TestLoad_EnvFallbacks(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PROMPTVAL_PROVIDER", "gemini")
	t.Setenv("PROMPTVAL_MODEL", "gemini-1.5-pro")
	t.Setenv("PROMPTVAL_TIMEOUT", "2.5")
	t.Setenv("PROMPTVAL_TEMPERATURE", "0.2")

	cfg, err := Load("", "", "", "", "", 0, 0)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Provider != "gemini" || cfg.Model != "gemini-1.5-pro" {
		t.Errorf("provider/model = %q/%q", cfg.Provider, cfg.Model)
	}
	if cfg.Timeout != 2500*time.Millisecond {
		t.Errorf("timeout = %v, want 2.5s", cfg.Timeout)
	}
	if cfg.Temperature != 0.2 {
		t.Errorf("temperature = %v, want 0.2", cfg.Temperature)
	}
}

func TestLoad_Defaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("PROMPTVAL_PROVIDER", "")
	t.Setenv("PROMPTVAL_TIMEOUT", "")

	cfg, err := Load("", "", "", "", "", 0, 0)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Provider != DefaultProvider {
		t.Errorf("provider = %q, want %q", cfg.Provider, DefaultProvider)
	}
	wantDir := filepath.Join(home, DefaultConfigDir)
	if cfg.ConfigDir != wantDir {
		t.Errorf("config dir = %q, want %q", cfg.ConfigDir, wantDir)
	}
	if cfg.PolicyPath != filepath.Join(wantDir, DefaultPolicyFile) {
		t.Errorf("policy path = %q", cfg.PolicyPath)
	}
	if cfg.LogPath != filepath.Join(wantDir, DefaultLogFile) {
		t.Errorf("log path = %q", cfg.LogPath)
	}
}

func TestLoad_IgnoresMalformedTimeout(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PROMPTVAL_TIMEOUT", "soon")

	cfg, err := Load("", "", "", "", "", 0, 0)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Timeout != 0 {
		t.Errorf("timeout = %v, want 0 for unparsable env value", cfg.Timeout)
	}
}
