package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ACCESSD_CONFIG_PATH", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.BindAddress)
	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 30, cfg.CatalogCacheTTL)
	assert.True(t, cfg.FeedEnabled)
	assert.True(t, cfg.AuditEnabled)
	assert.Equal(t, "default", cfg.Source("port"))
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	content := "port: 9000\nlog_level: debug\ncatalog_cache_ttl: 120\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(content), 0o644))
	t.Setenv("ACCESSD_CONFIG_PATH", dir)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 120, cfg.CatalogCacheTTL)
	assert.Equal(t, "file", cfg.Source("port"))
	assert.Equal(t, "default", cfg.Source("bind_address"))
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("port: 9000\n"), 0o644))
	t.Setenv("ACCESSD_CONFIG_PATH", dir)
	t.Setenv("ACCESSD_PORT", "9443")
	t.Setenv("ACCESSD_FEED_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9443, cfg.Port)
	assert.Equal(t, "environment", cfg.Source("port"))
	assert.False(t, cfg.FeedEnabled)
	assert.Equal(t, "environment", cfg.Source("feed_enabled"))
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("port: [not a port\n"), 0o644))
	t.Setenv("ACCESSD_CONFIG_PATH", dir)

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(c *Config) {}},
		{name: "port out of range", mutate: func(c *Config) { c.Port = 70000 }, wantErr: true},
		{name: "zero port", mutate: func(c *Config) { c.Port = 0 }, wantErr: true},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "verbose" }, wantErr: true},
		{name: "zero cache ttl", mutate: func(c *Config) { c.CatalogCacheTTL = 0 }, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := newDefault()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAttributes(t *testing.T) {
	t.Setenv("ACCESSD_CONFIG_PATH", t.TempDir())
	t.Setenv("ACCESSD_LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	attrs := cfg.Attributes()
	byName := make(map[string]Attribute, len(attrs))
	for _, attr := range attrs {
		byName[attr.Name] = attr
	}

	assert.Equal(t, "warn", byName["log_level"].Value)
	assert.Equal(t, "environment", byName["log_level"].Source)
	assert.Equal(t, "8000", byName["port"].Value)
	assert.Contains(t, cfg.FormatText(), "log_level")
}
