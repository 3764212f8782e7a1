// Package handler provides HTTP handlers for the API.
package handler

import (
	"context"

	"birdcams-tv/internal/app/service"
	"birdcams-tv/internal/domain"
)

// AggregateResolver resolves the kiosk aggregate.
type AggregateResolver interface {
	Resolve(ctx context.Context) domain.Result
}

// Station answers play queue and playlist queries.
type Station interface {
	Queue(ctx context.Context, req domain.QueueRequest) (domain.Queue, error)
	Playlist(ctx context.Context, id string) (domain.Playlist, error)
}

// CacheAdmin inspects and clears the aggregate cache.
type CacheAdmin interface {
	Status(ctx context.Context) service.CacheStatus
	ClearCache(ctx context.Context) error
}

// Rebuilder forces a cache rebuild.
type Rebuilder interface {
	Rebuild(ctx context.Context) (service.RebuildReport, error)
}

// OutcomeHeader tells API clients how the aggregate was obtained.
const OutcomeHeader = "X-Cache"
