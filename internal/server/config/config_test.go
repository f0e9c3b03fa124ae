package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := LoadConfig(nil)

	assert.Equal(t, ":8080", cfg.EndpointAddr)
	assert.Equal(t, "lovelab", cfg.Namespace)
	assert.Equal(t, 30*24*time.Hour, cfg.LinkTTL)
	assert.Equal(t, int64(124), cfg.StatsFallbackCount)
	assert.Empty(t, cfg.RedisURL)
	assert.Empty(t, cfg.DatabaseDSN)
	assert.Empty(t, cfg.BadgerPath)
}

func TestLoadConfig_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("ADDRESS", ":9090")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("LINK_TTL", "0s")
	t.Setenv("STATS_FALLBACK_COUNT", "42")

	cfg := LoadConfig(nil)

	assert.Equal(t, ":9090", cfg.EndpointAddr)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.Equal(t, time.Duration(0), cfg.LinkTTL)
	assert.Equal(t, int64(42), cfg.StatsFallbackCount)
}

func TestLoadConfig_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("ADDRESS", ":9090")

	cfg := LoadConfig([]string{"-a", ":7070", "-ttl", "24h", "-n", "hearts"})

	assert.Equal(t, ":7070", cfg.EndpointAddr)
	assert.Equal(t, 24*time.Hour, cfg.LinkTTL)
	assert.Equal(t, "hearts", cfg.Namespace)
}

func TestLoadConfig_JSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"endpoint_addr": ":6060",
		"badger_path": "/var/lib/lovelab",
		"link_ttl": "720h",
		"stats_fallback_count": 7
	}`), 0o600))

	cfg := LoadConfig([]string{"-c", path})

	assert.Equal(t, ":6060", cfg.EndpointAddr)
	assert.Equal(t, "/var/lib/lovelab", cfg.BadgerPath)
	assert.Equal(t, 720*time.Hour, cfg.LinkTTL)
	assert.Equal(t, int64(7), cfg.StatsFallbackCount)
}

func TestLoadConfig_FlagsOverrideJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"endpoint_addr": ":6060"}`), 0o600))

	cfg := LoadConfig([]string{"-c", path, "-a", ":5050"})

	assert.Equal(t, ":5050", cfg.EndpointAddr)
}

func TestConfigFilePath(t *testing.T) {
	assert.Equal(t, "x.json", configFilePath([]string{"-c", "x.json"}))
	assert.Equal(t, "y.json", configFilePath([]string{"-a", ":1", "-config", "y.json"}))
	assert.Equal(t, "z.json", configFilePath([]string{"--config=z.json"}))
	assert.Empty(t, configFilePath([]string{"-a", ":1"}))
}
