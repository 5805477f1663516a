package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultConfigDir  = ".promptval"
	DefaultPolicyFile = "policy.yaml"
	DefaultLogFile    = "audit.jsonl"
	DefaultProvider   = "openai"
)

// Config is the resolved runtime configuration. Flag values win over
// PROMPTVAL_* environment variables, which win over defaults. A .env file
// in the working directory is honored if present.
type Config struct {
	ConfigDir  string
	PolicyPath string
	LogPath    string

	Provider    string
	Model       string
	BaseURL     string
	Timeout     time.Duration
	Temperature float64
}

// Load resolves the configuration. Empty arguments fall back to env vars
// and then defaults; the config directory is created when missing.
func Load(policyPath, logPath, provider, model, baseURL string, timeout time.Duration, temperature float64) (*Config, error) {
	// Optional; absence of a .env file is the normal case.
	_ = godotenv.Load()

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	configDir := filepath.Join(homeDir, DefaultConfigDir)
	if err := ensureDir(configDir); err != nil {
		return nil, err
	}

	cfg := &Config{
		ConfigDir:   configDir,
		PolicyPath:  policyPath,
		LogPath:     logPath,
		Provider:    provider,
		Model:       model,
		BaseURL:     baseURL,
		Timeout:     timeout,
		Temperature: temperature,
	}

	if cfg.PolicyPath == "" {
		cfg.PolicyPath = filepath.Join(configDir, DefaultPolicyFile)
	}
	if cfg.LogPath == "" {
		cfg.LogPath = filepath.Join(configDir, DefaultLogFile)
	}
	if cfg.Provider == "" {
		cfg.Provider = envOr("PROMPTVAL_PROVIDER", DefaultProvider)
	}
	if cfg.Model == "" {
		cfg.Model = os.Getenv("PROMPTVAL_MODEL")
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = os.Getenv("PROMPTVAL_BASE_URL")
	}
	if cfg.Timeout <= 0 {
		if secs, ok := envFloat("PROMPTVAL_TIMEOUT"); ok {
			cfg.Timeout = time.Duration(secs * float64(time.Second))
		}
	}
	if cfg.Temperature == 0 {
		if temp, ok := envFloat("PROMPTVAL_TEMPERATURE"); ok {
			cfg.Temperature = temp
		}
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envFloat(key string) (float64, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func ensureDir(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, 0700)
	}
	return nil
}
