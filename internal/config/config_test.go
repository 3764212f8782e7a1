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
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("YOUTUBE_API_KEY", "")

	cfg, err := Load(writeConfig(t, "app:\n  name: birdcams-tv\n"))

	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "https://www.googleapis.com", cfg.YouTube.BaseURL)
	assert.Equal(t, "UCZXZQxS3d6NpR-eH_gdDwYA", cfg.YouTube.ChannelID)
	assert.Empty(t, cfg.YouTube.APIKey)
	assert.Equal(t, "file", cfg.Cache.Backend)
	assert.Equal(t, "server-cache/youtube-data.json", cfg.Cache.Path)
	assert.Equal(t, 2*time.Hour, cfg.Cache.TTL)
	assert.Equal(t, 90*time.Minute, cfg.Refresh.Interval)
	assert.True(t, cfg.Fallback.SubstituteOnFailure)
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
app:
  env: production
  port: 9090
cache:
  backend: memory
  ttl: 30m
fallback:
  substitute_on_failure: false
youtube:
  rate_limit:
    requests_per_second: 1
    burst: 2
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "production", cfg.App.Env)
	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, "memory", cfg.Cache.Backend)
	assert.Equal(t, 30*time.Minute, cfg.Cache.TTL)
	assert.False(t, cfg.Fallback.SubstituteOnFailure)
	assert.Equal(t, 1.0, cfg.YouTube.RateLimit.RequestsPerSecond)
	assert.Equal(t, 2, cfg.YouTube.RateLimit.Burst)
}

func TestLoad_APIKeyFromEnvironment(t *testing.T) {
	t.Setenv("YOUTUBE_API_KEY", "AIza-test")

	cfg, err := Load(writeConfig(t, ""))

	require.NoError(t, err)
	assert.Equal(t, "AIza-test", cfg.YouTube.APIKey)
}

func TestLoad_PrefixedEnvironmentOverrides(t *testing.T) {
	t.Setenv("APP_APP_PORT", "7070")
	t.Setenv("APP_CACHE_TTL", "45m")

	cfg, err := Load(writeConfig(t, ""))

	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.App.Port)
	assert.Equal(t, 45*time.Minute, cfg.Cache.TTL)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown cache backend", "cache:\n  backend: redis\n"},
		{"zero ttl", "cache:\n  ttl: 0s\n"},
		{"bad environment", "app:\n  env: qa\n"},
		{"port out of range", "app:\n  port: 70000\n"},
		{"sentry without dsn", "sentry:\n  enabled: true\n"},
		{"bad failure ratio", "youtube:\n  circuit_breaker:\n    failure_ratio: 1.5\n"},
		{"negative refresh interval", "refresh:\n  interval: -1m\n"},
		{"negative refresh timeout", "refresh:\n  timeout: -5s\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))

			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid config")
		})
	}
}

func TestLoad_RefreshInterval(t *testing.T) {
	t.Run("negative from environment", func(t *testing.T) {
		t.Setenv("APP_REFRESH_INTERVAL", "-1m")

		_, err := Load(writeConfig(t, ""))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "refresh.interval must be positive")
	})

	t.Run("ignored when refresh is disabled", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "refresh:\n  enabled: false\n  interval: 0s\n"))

		require.NoError(t, err)
		assert.False(t, cfg.Refresh.Enabled)
	})
}

func TestLoad_MalformedFile(t *testing.T) {
	_, err := Load(writeConfig(t, "app: [unterminated"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}
