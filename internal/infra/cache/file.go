// Package cache provides domain.CacheStore implementations.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"birdcams-tv/internal/domain"
)

// Defaults for the on-disk cache.
const (
	DefaultPath = "server-cache/youtube-data.json"
	DefaultTTL  = 2 * time.Hour
)

// Option configures a store.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock overrides the time source (useful for testing).
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// FileStore implements domain.CacheStore with a single JSON file.
// Writes replace the whole file via rename; there is no locking.
type FileStore struct {
	path   string
	ttl    time.Duration
	now    func() time.Time
	logger *zap.Logger
}

// NewFileStore creates a file-backed cache at path with the given TTL.
func NewFileStore(path string, ttl time.Duration, logger *zap.Logger, opts ...Option) *FileStore {
	if path == "" {
		path = DefaultPath
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	o := buildOptions(opts)

	return &FileStore{
		path:   path,
		ttl:    ttl,
		now:    o.now,
		logger: logger,
	}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// TTL returns the freshness window.
func (s *FileStore) TTL() time.Duration {
	return s.ttl
}

// Read returns the envelope if the file exists, parses, and is fresh.
// Every failure is reported as a miss.
func (s *FileStore) Read(_ context.Context) (*domain.CacheEnvelope, bool) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.logger.Debug("cache miss: no cache file", zap.String("path", s.path))
		} else {
			s.logger.Warn("cache read failed", zap.String("path", s.path), zap.Error(err))
		}

		return nil, false
	}

	var env domain.CacheEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		s.logger.Warn("cache file corrupt, treating as miss",
			zap.String("path", s.path),
			zap.Error(err),
		)

		return nil, false
	}

	now := s.now()
	if !env.IsFresh(now, s.ttl) {
		s.logger.Debug("cache miss: stale",
			zap.String("path", s.path),
			zap.Duration("age", env.Age(now)),
			zap.Duration("ttl", s.ttl),
		)

		return nil, false
	}

	env.Data = env.Data.Normalize()

	s.logger.Debug("cache hit",
		zap.String("path", s.path),
		zap.Int("bytes", len(raw)),
		zap.Duration("age", env.Age(now)),
	)

	return &env, true
}

const fileMode os.FileMode = 0o644

// Write replaces the cache file with {now, data}, creating the directory if needed.
func (s *FileStore) Write(_ context.Context, data domain.AppData) error {
	env := domain.NewCacheEnvelope(data.Normalize(), s.now())

	raw, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding cache envelope: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating cache dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".youtube-data-*.json")
	if err != nil {
		return fmt.Errorf("creating temp cache file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	// CreateTemp opens with 0600; the cache file is meant to be world-readable.
	if err := tmp.Chmod(fileMode); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("setting cache file mode: %w", err)
	}
	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing temp cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp cache file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replacing cache file: %w", err)
	}

	s.logger.Debug("cache written",
		zap.String("path", s.path),
		zap.Int("bytes", len(raw)),
		zap.Int("live_streams", len(env.Data.LiveStreams)),
		zap.Int("playlists", len(env.Data.Playlists)),
	)

	return nil
}

// Clear removes the cache file. A missing file is not an error.
func (s *FileStore) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing cache file: %w", err)
	}

	s.logger.Info("cache cleared", zap.String("path", s.path))

	return nil
}
