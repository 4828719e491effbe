// Package config loads server configuration from an optional YAML file
// with environment-variable overrides. The zero config is usable:
// embedded reference data, no history, listening on :8090.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment override variables.
const (
	EnvListenAddr   = "PROMPTCOACH_LISTEN_ADDR"
	EnvLogLevel     = "PROMPTCOACH_LOG_LEVEL"
	EnvLogFormat    = "PROMPTCOACH_LOG_FORMAT"
	EnvDataDir      = "PROMPTCOACH_DATA_DIR"
	EnvWatch        = "PROMPTCOACH_WATCH"
	EnvHistoryPath  = "PROMPTCOACH_HISTORY_PATH"
	EnvDefaultModel = "PROMPTCOACH_DEFAULT_MODEL"
)

// HistoryConfig controls the optional estimate history store.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Config holds all server settings.
type Config struct {
	ListenAddr string `yaml:"listen_addr"`
	LogLevel   string `yaml:"log_level"`
	LogFormat  string `yaml:"log_format"` // "json" or "console"

	// DataDir points at external reference tables; empty means use the
	// embedded defaults.
	DataDir string `yaml:"data_dir"`
	// Watch reloads the external tables on change. Ignored without
	// DataDir.
	Watch bool `yaml:"watch"`

	History HistoryConfig `yaml:"history"`

	// DefaultModel is used by the analyze endpoint when the request
	// names no model.
	DefaultModel string `yaml:"default_model"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ListenAddr:   ":8090",
		LogLevel:     "info",
		LogFormat:    "console",
		DefaultModel: "gpt-4o-mini",
		History: HistoryConfig{
			Path: "promptcoach-history.db",
		},
	}
}

// Load reads configuration from path (optional; missing file means
// defaults) and applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnv(&cfg)

	if cfg.History.Enabled && strings.TrimSpace(cfg.History.Path) == "" {
		return Config{}, fmt.Errorf("history enabled but no path configured")
	}

	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv(EnvListenAddr); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv(EnvDataDir); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv(EnvWatch); v != "" {
		cfg.Watch = strings.EqualFold(v, "true") || v == "1"
	}
	if v := os.Getenv(EnvHistoryPath); v != "" {
		cfg.History.Enabled = true
		cfg.History.Path = v
	}
	if v := os.Getenv(EnvDefaultModel); v != "" {
		cfg.DefaultModel = v
	}
}
