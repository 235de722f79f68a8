package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jihwankim/porty/pkg/config"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := config.DefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Docker.Enrich)
	assert.Equal(t, 300*time.Millisecond, cfg.Kill.GracePeriod)
	assert.Contains(t, cfg.Detail.EnvAllowlist, "NODE_ENV")
	assert.Contains(t, cfg.Detail.EnvAllowlist, "PATH")
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
log:
  level: debug
  format: json
docker:
  enrich: false
kill:
  grace_period: 1s
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.False(t, cfg.Docker.Enrich)
	assert.Equal(t, time.Second, cfg.Kill.GracePeriod)
	// Untouched sections keep their defaults.
	assert.Contains(t, cfg.Detail.EnvAllowlist, "DATABASE_URL")
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log: [not: a map"), 0o644))

	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Log.Level = "chatty"
	assert.Error(t, cfg.Validate())

	cfg = config.DefaultConfig()
	cfg.Log.Format = "xml"
	assert.Error(t, cfg.Validate())

	cfg = config.DefaultConfig()
	cfg.Kill.GracePeriod = 0
	assert.Error(t, cfg.Validate())
}
