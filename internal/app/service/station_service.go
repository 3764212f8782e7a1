package service

import (
	"context"
	"math/rand"

	"go.uber.org/zap"

	"birdcams-tv/internal/domain"
)

// StationService answers the kiosk's navigation queries from the aggregate.
type StationService struct {
	aggregates *AggregateService
	shuffle    domain.Shuffler
	logger     *zap.Logger
}

// NewStationService creates a new StationService. A nil shuffler uses math/rand.
func NewStationService(aggregates *AggregateService, shuffle domain.Shuffler, logger *zap.Logger) *StationService {
	if shuffle == nil {
		shuffle = rand.Shuffle
	}

	return &StationService{
		aggregates: aggregates,
		shuffle:    shuffle,
		logger:     logger,
	}
}

// Queue builds the play queue for the given selection.
func (s *StationService) Queue(ctx context.Context, req domain.QueueRequest) (domain.Queue, error) {
	data := s.aggregates.GetAggregate(ctx)

	queue, err := domain.BuildQueue(data, req, s.shuffle)
	if err != nil {
		return domain.Queue{}, err
	}

	s.logger.Debug("queue built",
		zap.String("mode", string(req.Mode)),
		zap.String("playlist_id", req.PlaylistID),
		zap.String("video_id", req.VideoID),
		zap.Int("size", len(queue.Items)),
	)

	return queue, nil
}

// Playlist returns a single playlist by ID.
func (s *StationService) Playlist(ctx context.Context, id string) (domain.Playlist, error) {
	p, ok := s.aggregates.GetAggregate(ctx).FindPlaylist(id)
	if !ok {
		return domain.Playlist{}, domain.ErrPlaylistNotFound
	}

	return p, nil
}
