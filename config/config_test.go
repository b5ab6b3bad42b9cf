package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_FileValues(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8080
inventory:
  baseURL: https://inventory.internal/api
  perPage: 25
cache:
  enabled: true
  provider: redis
  redis:
    addr: redis:6379
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "https://inventory.internal/api", cfg.Inventory.BaseURL)
	assert.Equal(t, 25, cfg.Inventory.PerPage)
	assert.Equal(t, "redis", cfg.Cache.Provider)
	assert.Equal(t, "redis:6379", cfg.Cache.Redis.Addr)
	// defaults still applied
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout())
	assert.Equal(t, uint32(5), cfg.Inventory.Breaker.ConsecutiveFailures)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "inventory:\n  baseURL: http://localhost:5000\n")

	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("INVENTORY_URL", "http://backend:5000")
	t.Setenv("INVENTORY_PER_PAGE", "50")
	t.Setenv("CACHE_ENABLED", "false")
	t.Setenv("CACHE_TTL", "5")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "http://backend:5000", cfg.Inventory.BaseURL)
	assert.Equal(t, 50, cfg.Inventory.PerPage)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, 5*time.Second, cfg.CacheTTL())
}

func TestValidate_PerPageBounds(t *testing.T) {
	tests := []struct {
		name     string
		perPage  int
		expected int
	}{
		{name: "zero uses default", perPage: 0, expected: 10},
		{name: "negative uses default", perPage: -3, expected: 10},
		{name: "too large is clamped", perPage: 500, expected: 100},
		{name: "in range kept", perPage: 42, expected: 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.Inventory.PerPage = tt.perPage
			require.NoError(t, cfg.Validate())
			assert.Equal(t, tt.expected, cfg.Inventory.PerPage)
		})
	}
}

func TestValidate_Rejects(t *testing.T) {
	t.Run("bad base url", func(t *testing.T) {
		cfg := &Config{}
		cfg.Inventory.BaseURL = "localhost:5000"
		assert.Error(t, cfg.Validate())
	})

	t.Run("unknown cache provider", func(t *testing.T) {
		cfg := &Config{}
		cfg.Cache.Provider = "memcached"
		assert.Error(t, cfg.Validate())
	})

	t.Run("redis without address", func(t *testing.T) {
		cfg := &Config{}
		cfg.Cache.Enabled = true
		cfg.Cache.Provider = "redis"
		assert.Error(t, cfg.Validate())
	})
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("INVENTORY_URL", "http://inventory:5000")
	t.Setenv("INVENTORY_PER_PAGE", "20")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "http://inventory:5000", cfg.Inventory.BaseURL)
	assert.Equal(t, 20, cfg.Inventory.PerPage)
	assert.Equal(t, 3030, cfg.Server.Port)

	t.Setenv("INVENTORY_URL", "ftp://inventory")
	_, err = FromEnv()
	assert.Error(t, err)
}
