package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"birdcams-tv/internal/domain"
)

const memoryKey = "youtube-data"

// MemoryStore implements domain.CacheStore in process memory.
// Envelopes are stored serialized so readers never share slices with writers.
// Freshness follows the envelope timestamp, not go-cache expiry, so the
// injected clock stays authoritative.
type MemoryStore struct {
	items *gocache.Cache
	ttl   time.Duration
	now   func() time.Time
}

// NewMemoryStore creates an in-memory cache with the given TTL.
func NewMemoryStore(ttl time.Duration, opts ...Option) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	o := buildOptions(opts)

	return &MemoryStore{
		items: gocache.New(gocache.NoExpiration, 0),
		ttl:   ttl,
		now:   o.now,
	}
}

// Read returns the stored envelope while it is fresh.
func (s *MemoryStore) Read(_ context.Context) (*domain.CacheEnvelope, bool) {
	item, found := s.items.Get(memoryKey)
	if !found {
		return nil, false
	}

	raw, ok := item.([]byte)
	if !ok {
		return nil, false
	}

	var env domain.CacheEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, false
	}
	if !env.IsFresh(s.now(), s.ttl) {
		return nil, false
	}

	env.Data = env.Data.Normalize()

	return &env, true
}

// Write replaces the stored envelope.
func (s *MemoryStore) Write(_ context.Context, data domain.AppData) error {
	raw, err := json.Marshal(domain.NewCacheEnvelope(data.Normalize(), s.now()))
	if err != nil {
		return fmt.Errorf("encoding cache envelope: %w", err)
	}

	s.items.Set(memoryKey, raw, gocache.NoExpiration)

	return nil
}

// Clear drops the stored envelope.
func (s *MemoryStore) Clear(_ context.Context) error {
	s.items.Delete(memoryKey)

	return nil
}
