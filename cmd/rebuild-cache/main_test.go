package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCmd(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err = cmd.Execute()

	return out.String(), errOut.String(), err
}

func TestRebuildCache_WithoutKeyWritesSubstitutes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "server-cache", "youtube-data.json")
	t.Setenv("YOUTUBE_API_KEY", "")
	t.Setenv("APP_CACHE_PATH", path)

	stdout, _, err := runCmd(t)

	require.NoError(t, err)
	assert.Equal(t, "Cache rebuilt. Live: 2, Playlists: 3\n", stdout)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var env struct {
		Timestamp int64 `json:"timestamp"`
		Data      struct {
			LiveStreams []json.RawMessage `json:"liveStreams"`
			Playlists   []json.RawMessage `json:"playlists"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(raw, &env))
	assert.Positive(t, env.Timestamp)
	assert.Len(t, env.Data.LiveStreams, 2)
	assert.Len(t, env.Data.Playlists, 3)
}

func TestRebuildCache_UpstreamFailureExitsWithError(t *testing.T) {
	t.Setenv("YOUTUBE_API_KEY", "test-key")
	t.Setenv("APP_YOUTUBE_BASE_URL", "http://127.0.0.1:1")
	t.Setenv("APP_YOUTUBE_RETRY_MAX_ATTEMPTS", "0")
	t.Setenv("APP_FALLBACK_SUBSTITUTE_ON_FAILURE", "false")
	t.Setenv("APP_CACHE_PATH", filepath.Join(t.TempDir(), "youtube-data.json"))

	stdout, stderr, err := runCmd(t, "--timeout", "5s")

	require.Error(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Failed to rebuild cache")
}

func TestRebuildCache_InvalidConfig(t *testing.T) {
	t.Setenv("APP_CACHE_BACKEND", "floppy")

	_, stderr, err := runCmd(t)

	require.Error(t, err)
	assert.Contains(t, stderr, "invalid config")
}

func TestRebuildCache_RejectsArgs(t *testing.T) {
	_, _, err := runCmd(t, "extra")

	assert.Error(t, err)
}
