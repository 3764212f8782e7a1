// Package service provides application use cases.
package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"birdcams-tv/internal/domain"
)

// AggregateConfig holds aggregate provider settings.
type AggregateConfig struct {
	// FetchTimeout bounds a whole cache-miss fetch cycle. Zero disables it.
	FetchTimeout time.Duration
	// TTL is the cache freshness window, used for status reporting.
	TTL time.Duration
}

// AggregateService is the single entry point for the kiosk's data.
// It serves from the cache when fresh and refetches from the source otherwise.
type AggregateService struct {
	store  domain.CacheStore
	source domain.VideoSource
	cfg    AggregateConfig
	group  singleflight.Group
	now    func() time.Time
	logger *zap.Logger
}

// NewAggregateService creates a new AggregateService.
func NewAggregateService(
	store domain.CacheStore,
	source domain.VideoSource,
	cfg AggregateConfig,
	logger *zap.Logger,
) *AggregateService {
	return &AggregateService{
		store:  store,
		source: source,
		cfg:    cfg,
		now:    time.Now,
		logger: logger,
	}
}

// RebuildReport summarizes a forced cache rebuild.
type RebuildReport struct {
	LiveStreams  int
	Playlists    int
	Videos       int
	Duration     time.Duration
	CacheWritten bool
}

// CacheStatus describes the current cache envelope.
type CacheStatus struct {
	Fresh     bool
	WrittenAt time.Time
	Age       time.Duration
	ExpiresIn time.Duration
}

// GetAggregate returns the aggregate. It never fails: on total failure the
// empty aggregate is returned.
func (s *AggregateService) GetAggregate(ctx context.Context) domain.AppData {
	return s.Resolve(ctx).Data
}

// Resolve returns the aggregate together with how it was obtained.
func (s *AggregateService) Resolve(ctx context.Context) domain.Result {
	if env, ok := s.store.Read(ctx); ok {
		s.logger.Debug("returning cached aggregate",
			zap.Time("written_at", env.WrittenAt()),
		)

		return domain.Hit(*env)
	}

	// Concurrent misses share one upstream round trip. The fetch is detached
	// from the first caller's cancellation so followers are not failed by it.
	v, _, _ := s.group.Do("resolve", func() (any, error) {
		if env, ok := s.store.Read(ctx); ok {
			return domain.Hit(*env), nil
		}

		return s.refresh(context.WithoutCancel(ctx)), nil
	})

	return v.(domain.Result)
}

// Rebuild bypasses the cache, fetches fresh data and writes it.
// Unlike Resolve it reports fetch failures to the caller.
func (s *AggregateService) Rebuild(ctx context.Context) (RebuildReport, error) {
	start := time.Now()

	s.logger.Info("rebuilding aggregate cache")

	data, err := s.fetch(ctx)
	if err != nil {
		s.logger.Error("cache rebuild failed", zap.Error(err))
		return RebuildReport{Duration: time.Since(start)}, fmt.Errorf("rebuilding cache: %w", err)
	}

	report := RebuildReport{
		LiveStreams: len(data.LiveStreams),
		Playlists:   len(data.Playlists),
		Videos:      data.VideoCount(),
	}

	if err := s.store.Write(ctx, data); err != nil {
		s.logger.Error("cache write failed", zap.Error(err))
	} else {
		report.CacheWritten = true
	}

	report.Duration = time.Since(start)

	s.logger.Info("cache rebuilt",
		zap.Int("live_streams", report.LiveStreams),
		zap.Int("playlists", report.Playlists),
		zap.Int("videos", report.Videos),
		zap.Bool("cache_written", report.CacheWritten),
		zap.Duration("duration", report.Duration),
	)

	return report, nil
}

// Status reports whether a fresh envelope is cached and how old it is.
func (s *AggregateService) Status(ctx context.Context) CacheStatus {
	env, ok := s.store.Read(ctx)
	if !ok {
		return CacheStatus{}
	}

	age := env.Age(s.now())
	expiresIn := s.cfg.TTL - age
	if expiresIn < 0 {
		expiresIn = 0
	}

	return CacheStatus{
		Fresh:     true,
		WrittenAt: env.WrittenAt(),
		Age:       age,
		ExpiresIn: expiresIn,
	}
}

// ClearCache drops the cached envelope so the next request refetches.
func (s *AggregateService) ClearCache(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clearing cache: %w", err)
	}

	return nil
}

// refresh fetches, writes the cache and collapses every failure into a
// degraded result.
func (s *AggregateService) refresh(ctx context.Context) domain.Result {
	s.logger.Info("fetching fresh aggregate")

	data, err := s.fetch(ctx)
	if err != nil {
		s.logger.Error("aggregate fetch failed, returning empty aggregate", zap.Error(err))
		return domain.Degraded(err)
	}

	if err := s.store.Write(ctx, data); err != nil {
		s.logger.Error("cache write failed", zap.Error(err))
	}

	s.logger.Info("aggregate fetched",
		zap.Int("live_streams", len(data.LiveStreams)),
		zap.Int("playlists", len(data.Playlists)),
	)

	return domain.Fetched(data, s.now())
}

// fetch runs the live-stream and playlist fetches concurrently.
func (s *AggregateService) fetch(ctx context.Context) (domain.AppData, error) {
	if s.cfg.FetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.FetchTimeout)
		defer cancel()
	}

	var (
		live      []domain.VideoItem
		playlists []domain.Playlist
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(guard(func() error {
		var err error
		live, err = s.source.FetchLiveStreams(gctx)
		if err != nil {
			return fmt.Errorf("fetching live streams: %w", err)
		}
		return nil
	}))

	g.Go(guard(func() error {
		var err error
		playlists, err = s.fetchPlaylists(gctx)
		return err
	}))

	if err := g.Wait(); err != nil {
		return domain.AppData{}, err
	}

	return domain.AppData{
		LiveStreams: live,
		Playlists:   playlists,
	}.Normalize(), nil
}

// fetchPlaylists lists the playlists, then fetches each playlist's items
// one playlist at a time.
func (s *AggregateService) fetchPlaylists(ctx context.Context) ([]domain.Playlist, error) {
	shells, err := s.source.FetchPlaylists(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching playlists: %w", err)
	}

	playlists := make([]domain.Playlist, 0, len(shells))
	for _, p := range shells {
		videos, err := s.source.FetchPlaylistItems(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("fetching items of playlist %s: %w", p.ID, err)
		}

		playlists = append(playlists, domain.Playlist{
			ID:     p.ID,
			Title:  p.Title,
			Videos: videos,
		})
	}

	return playlists, nil
}

// guard turns a panic in fn into an error.
func guard(fn func() error) func() error {
	return func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic during fetch: %v", r)
			}
		}()

		return fn()
	}
}
