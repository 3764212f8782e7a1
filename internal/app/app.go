// Package app wires configuration into the services shared by the entry points.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"birdcams-tv/internal/app/service"
	"birdcams-tv/internal/config"
	"birdcams-tv/internal/domain"
	"birdcams-tv/internal/infra/cache"
	"birdcams-tv/internal/infra/provider"
	"birdcams-tv/internal/infra/youtube"
	"birdcams-tv/internal/logger"
)

// Components holds the wired services.
type Components struct {
	YouTube    *youtube.Client
	Store      domain.CacheStore
	Aggregates *service.AggregateService
}

// NewLogger builds the logger described by cfg.
func NewLogger(cfg *config.Config) (*logger.Logger, error) {
	return logger.New(
		logger.Config{
			Service: cfg.App.Name,
			Level:   cfg.Logger.Level,
			Format:  cfg.Logger.Format,
			Output:  cfg.Logger.Output,
		},
		logger.SentryConfig{
			Enabled:     cfg.Sentry.Enabled,
			DSN:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
			SampleRate:  cfg.Sentry.SampleRate,
		},
	)
}

// New builds the YouTube client, the cache store and the aggregate service.
func New(cfg *config.Config, log *zap.Logger) (*Components, error) {
	yt := youtube.New(youtube.Config{
		ClientConfig: provider.ClientConfig{
			BaseURL: cfg.YouTube.BaseURL,
			Timeout: cfg.YouTube.Timeout,
			Retry: provider.RetryConfig{
				MaxAttempts: cfg.YouTube.Retry.MaxAttempts,
				WaitTime:    cfg.YouTube.Retry.WaitTime,
				MaxWaitTime: cfg.YouTube.Retry.MaxWaitTime,
			},
			CB: provider.CBConfig{
				MaxRequests:  cfg.YouTube.CB.MaxRequests,
				Interval:     cfg.YouTube.CB.Interval,
				Timeout:      cfg.YouTube.CB.Timeout,
				FailureRatio: cfg.YouTube.CB.FailureRatio,
			},
			Rate: provider.RateConfig{
				RequestsPerSecond: cfg.YouTube.RateLimit.RequestsPerSecond,
				Burst:             cfg.YouTube.RateLimit.Burst,
			},
		},
		APIKey:              cfg.YouTube.APIKey,
		ChannelID:           cfg.YouTube.ChannelID,
		SubstituteOnFailure: cfg.Fallback.SubstituteOnFailure,
	}, log)

	if !yt.HasAPIKey() {
		log.Warn("YOUTUBE_API_KEY not set, serving substitute data")
	}

	var store domain.CacheStore
	switch cfg.Cache.Backend {
	case "memory":
		store = cache.NewMemoryStore(cfg.Cache.TTL)
	case "file", "":
		store = cache.NewFileStore(cfg.Cache.Path, cfg.Cache.TTL, log)
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Cache.Backend)
	}

	log.Info("cache configured",
		zap.String("backend", cfg.Cache.Backend),
		zap.String("path", cfg.Cache.Path),
		zap.Duration("ttl", cfg.Cache.TTL),
	)

	aggregates := service.NewAggregateService(store, yt, service.AggregateConfig{
		FetchTimeout: cfg.Refresh.Timeout,
		TTL:          cfg.Cache.TTL,
	}, log)

	return &Components{
		YouTube:    yt,
		Store:      store,
		Aggregates: aggregates,
	}, nil
}

// Ready reports whether kiosk data can be served: a fresh envelope is cached,
// the API is reachable, or substitutes are in use.
func (c *Components) Ready(ctx context.Context) bool {
	if c.Aggregates.Status(ctx).Fresh {
		return true
	}
	if !c.YouTube.HasAPIKey() {
		return true
	}

	return c.YouTube.HealthCheck(ctx) == nil
}
