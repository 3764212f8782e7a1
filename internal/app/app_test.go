package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"birdcams-tv/internal/config"
	"birdcams-tv/internal/infra/cache"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.Name = "birdcams-tv"
	cfg.YouTube.BaseURL = "http://127.0.0.1:1"
	cfg.YouTube.ChannelID = "UCZXZQxS3d6NpR-eH_gdDwYA"
	cfg.YouTube.Timeout = time.Second
	cfg.Cache.Backend = "file"
	cfg.Cache.Path = filepath.Join(t.TempDir(), "youtube-data.json")
	cfg.Cache.TTL = 2 * time.Hour
	cfg.Refresh.Timeout = 5 * time.Second
	cfg.Fallback.SubstituteOnFailure = true

	return cfg
}

func TestNew_FileBackendWithoutKeyServesSubstitutes(t *testing.T) {
	cfg := testConfig(t)

	c, err := New(cfg, zap.NewNop())
	require.NoError(t, err)

	store, ok := c.Store.(*cache.FileStore)
	require.True(t, ok)
	assert.Equal(t, cfg.Cache.Path, store.Path())
	assert.True(t, c.Ready(context.Background()), "substitute mode is ready")

	report, err := c.Aggregates.Rebuild(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, report.LiveStreams)
	assert.Equal(t, 3, report.Playlists)
	assert.FileExists(t, cfg.Cache.Path)
}

func TestNew_MemoryBackend(t *testing.T) {
	cfg := testConfig(t)
	cfg.Cache.Backend = "memory"

	c, err := New(cfg, zap.NewNop())

	require.NoError(t, err)
	assert.IsType(t, &cache.MemoryStore{}, c.Store)
}

func TestNew_UnknownBackend(t *testing.T) {
	cfg := testConfig(t)
	cfg.Cache.Backend = "redis"

	_, err := New(cfg, zap.NewNop())

	assert.Error(t, err)
}

func TestReady_WithKeyFollowsHealth(t *testing.T) {
	cfg := testConfig(t)
	cfg.YouTube.APIKey = "test-key"

	c, err := New(cfg, zap.NewNop())
	require.NoError(t, err)

	// Closed breaker, nothing cached yet.
	assert.True(t, c.Ready(context.Background()))
}
