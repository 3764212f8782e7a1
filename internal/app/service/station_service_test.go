package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"birdcams-tv/internal/domain"
	"birdcams-tv/internal/infra/cache"
)

func noShuffle(int, func(i, j int)) {}

func newTestStation(t *testing.T) *StationService {
	t.Helper()

	store := cache.NewMemoryStore(time.Hour)
	require.NoError(t, store.Write(context.Background(), domain.AppData{
		LiveStreams: []domain.VideoItem{{ID: "live-1"}, {ID: "live-2"}},
		Playlists: []domain.Playlist{
			{ID: "PL1", Title: "Hawks", Videos: []domain.VideoItem{{ID: "v1"}, {ID: "v2"}}},
			{ID: "PL2", Title: "Herons", Videos: []domain.VideoItem{{ID: "v3"}}},
		},
	}))

	aggregates := newTestService(store, newFakeSource())

	return NewStationService(aggregates, noShuffle, zap.NewNop())
}

func TestStationService_Queue(t *testing.T) {
	station := newTestStation(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		req     domain.QueueRequest
		wantIDs []string
	}{
		{"live", domain.QueueRequest{Mode: domain.ModeLive}, []string{"live-1", "live-2"}},
		{"recorded", domain.QueueRequest{Mode: domain.ModeRecorded}, []string{"v1", "v2", "v3"}},
		{"playlist", domain.QueueRequest{Mode: domain.ModeRecorded, PlaylistID: "PL2"}, []string{"v3"}},
		{"single video", domain.QueueRequest{Mode: domain.ModeRecorded, VideoID: "v2"}, []string{"v2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			queue, err := station.Queue(ctx, tt.req)

			require.NoError(t, err)
			ids := make([]string, len(queue.Items))
			for i, item := range queue.Items {
				ids[i] = item.ID
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestStationService_Queue_InvalidMode(t *testing.T) {
	station := newTestStation(t)

	_, err := station.Queue(context.Background(), domain.QueueRequest{Mode: "vod"})

	assert.Error(t, err)
}

func TestStationService_Playlist(t *testing.T) {
	station := newTestStation(t)
	ctx := context.Background()

	p, err := station.Playlist(ctx, "PL1")
	require.NoError(t, err)
	assert.Equal(t, "Hawks", p.Title)
	assert.Len(t, p.Videos, 2)

	_, err = station.Playlist(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrPlaylistNotFound)
}

func TestNewStationService_DefaultShuffler(t *testing.T) {
	station := NewStationService(newTestService(cache.NewMemoryStore(time.Hour), newFakeSource()), nil, zap.NewNop())

	assert.NotNil(t, station.shuffle)
}
