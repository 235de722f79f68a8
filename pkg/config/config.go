// Package config loads the porty configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the porty configuration
type Config struct {
	Log    LogConfig    `yaml:"log"`
	Docker DockerConfig `yaml:"docker"`
	Kill   KillConfig   `yaml:"kill"`
	Detail DetailConfig `yaml:"detail"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DockerConfig controls container-runtime enrichment
type DockerConfig struct {
	// Enrich toggles the container-name rewrite pass. Disabling it skips
	// every Docker daemon query during discovery.
	Enrich bool `yaml:"enrich"`
}

// KillConfig contains process-termination settings
type KillConfig struct {
	// GracePeriod is the wait between SIGTERM and the liveness check.
	GracePeriod time.Duration `yaml:"grace_period"`
}

// DetailConfig contains detail-view settings
type DetailConfig struct {
	// EnvAllowlist names the environment variables the detail view may
	// show; everything else is dropped to avoid leaking secrets.
	EnvAllowlist []string `yaml:"env_allowlist"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Docker: DockerConfig{
			Enrich: true,
		},
		Kill: KillConfig{
			GracePeriod: 300 * time.Millisecond,
		},
		Detail: DetailConfig{
			EnvAllowlist: []string{
				"NODE_ENV", "PORT", "DATABASE_URL", "RAILS_ENV", "FLASK_ENV",
				"DJANGO_SETTINGS_MODULE", "PYTHON_ENV", "GO_ENV", "RUST_ENV",
				"PATH", "HOME", "USER", "PWD", "LANG",
			},
		},
	}
}

// DefaultPath returns the default config file location under the user
// config directory.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "porty", "config.yaml")
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults without error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		path = DefaultPath()
	}
	if path == "" {
		return cfg, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json")
	}

	if c.Kill.GracePeriod <= 0 {
		return fmt.Errorf("kill.grace_period must be positive")
	}

	return nil
}
