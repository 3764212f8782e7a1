package domain

import (
	"context"
	"errors"
)

// ErrPlaylistNotFound is returned when a playlist ID is not in the aggregate.
var ErrPlaylistNotFound = errors.New("playlist not found")

// CacheStore persists the aggregate between requests.
// Implementations: cache.FileStore, cache.MemoryStore
type CacheStore interface {
	// Read returns the stored envelope if it exists, is well-formed and is
	// still within the TTL. Every failure is reported as a miss (false).
	Read(ctx context.Context) (*CacheEnvelope, bool)

	// Write replaces the stored envelope with {now, data}.
	Write(ctx context.Context, data AppData) error

	// Clear removes the stored envelope. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}

// VideoSource retrieves normalized entities from the video platform.
// Implementations: internal/infra/youtube
type VideoSource interface {
	// FetchLiveStreams returns the channel's currently live videos.
	FetchLiveStreams(ctx context.Context) ([]VideoItem, error)

	// FetchPlaylists returns the channel's playlists as shells (no videos).
	FetchPlaylists(ctx context.Context) ([]Playlist, error)

	// FetchPlaylistItems returns the videos of one playlist in platform order.
	FetchPlaylistItems(ctx context.Context, playlistID string) ([]VideoItem, error)
}
