// Package config loads and manages oceanlens configuration.
// Configuration source priority (highest to lowest):
// 1. Environment variables (OCEANLENS_BASE_URL, OCEANLENS_DATA_DIR, etc.),
//    including values from a local .env file
// 2. Config file path specified via --config flag
// 3. ~/.config/oceanlens/config.yaml
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the complete configuration structure for oceanlens.
type Config struct {
	// BaseURL is the analysis service endpoint.
	BaseURL string `yaml:"base_url"`

	// DataDir overrides where the session database lives
	// (default ~/.local/share/oceanlens).
	DataDir string `yaml:"data_dir"`

	// TweetCount is how many posts an analysis samples.
	TweetCount int `yaml:"tweet_count"`

	// RequestTimeoutMS bounds auth/account/history calls.
	RequestTimeoutMS int `yaml:"request_timeout_ms"`

	// AnalyzeTimeoutMS bounds the analysis call, which runs a scrape and
	// scoring pass server-side.
	AnalyzeTimeoutMS int `yaml:"analyze_timeout_ms"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:          "http://127.0.0.1:5000",
		TweetCount:       5,
		RequestTimeoutMS: 10_000,
		AnalyzeTimeoutMS: 60_000,
	}
}

// Load reads the config file and merges environment variable overrides.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	// A local .env feeds the environment overrides below; absence is fine.
	_ = godotenv.Load()

	if configPath == "" {
		home, err := os.UserHomeDir()
		if err == nil {
			configPath = filepath.Join(home, ".config", "oceanlens", "config.yaml")
		}
	}

	// Read config file (use defaults if not found).
	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// RequestTimeout returns the standard per-call deadline.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMS) * time.Millisecond
}

// AnalyzeTimeout returns the analysis-call deadline.
func (c *Config) AnalyzeTimeout() time.Duration {
	return time.Duration(c.AnalyzeTimeoutMS) * time.Millisecond
}

// applyEnvOverrides applies environment variable overrides to the config.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("OCEANLENS_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("OCEANLENS_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("OCEANLENS_TWEET_COUNT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TweetCount = n
		}
	}
	if v := os.Getenv("OCEANLENS_REQUEST_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.RequestTimeoutMS = n
		}
	}
	if v := os.Getenv("OCEANLENS_ANALYZE_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.AnalyzeTimeoutMS = n
		}
	}
}
