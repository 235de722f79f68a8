package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jihwankim/porty/pkg/config"
	"github.com/jihwankim/porty/pkg/discovery"
	"github.com/jihwankim/porty/pkg/docker"
	"github.com/jihwankim/porty/pkg/reporting"
)

// loadConfig loads the configuration file and wires up logging. --verbose
// drops the log level to debug regardless of the config.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	level := reporting.LogLevel(cfg.Log.Level)
	if verbose {
		level = reporting.LogLevelDebug
	}

	reporting.InitGlobalLogger(reporting.LoggerConfig{
		Level:  level,
		Format: reporting.LogFormat(cfg.Log.Format),
		Output: os.Stderr,
	})

	return cfg, nil
}

// snapshot discovers and enriches the current listener set. A discovery
// failure is reported once and treated as an empty snapshot.
func snapshot(ctx context.Context, cfg *config.Config) []discovery.PortEntry {
	entries, err := discovery.Discover(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "discovery error: %v\n", err)
		return nil
	}

	if cfg.Docker.Enrich {
		docker.EnrichLive(ctx, entries)
	}

	return entries
}
