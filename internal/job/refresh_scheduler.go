// Package job provides background job schedulers.
package job

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"birdcams-tv/internal/app/service"
	"birdcams-tv/pkg/locker"
)

const rebuildLockKey = "cache:rebuild"

// ErrRebuildInProgress is returned when a rebuild is already running.
var ErrRebuildInProgress = errors.New("cache rebuild already in progress")

// Rebuilder forces a fresh fetch of the aggregate into the cache.
type Rebuilder interface {
	Rebuild(ctx context.Context) (service.RebuildReport, error)
}

// RefreshConfig holds refresh scheduler configuration.
type RefreshConfig struct {
	Interval time.Duration
	Timeout  time.Duration
}

// RefreshScheduler rebuilds the cache periodically so kiosk requests keep
// hitting a fresh envelope. Manual rebuilds go through it too, so a tick and
// an admin request never overlap.
type RefreshScheduler struct {
	rebuilder Rebuilder
	interval  time.Duration
	timeout   time.Duration
	locker    locker.Locker
	logger    *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRefreshScheduler creates a new RefreshScheduler.
func NewRefreshScheduler(
	rebuilder Rebuilder,
	cfg RefreshConfig,
	logger *zap.Logger,
	locker locker.Locker,
) *RefreshScheduler {
	return &RefreshScheduler{
		rebuilder: rebuilder,
		interval:  cfg.Interval,
		timeout:   cfg.Timeout,
		locker:    locker,
		logger:    logger,
	}
}

// Start begins the background refresh loop.
func (s *RefreshScheduler) Start(runOnStartup bool) {
	s.ctx, s.cancel = context.WithCancel(context.Background())

	s.logger.Info("starting refresh scheduler",
		zap.Duration("interval", s.interval),
		zap.Bool("run_on_startup", runOnStartup),
	)

	s.wg.Add(1)
	go s.run(runOnStartup)
}

// Stop gracefully stops the scheduler, waiting for a running rebuild.
func (s *RefreshScheduler) Stop() {
	if s.cancel == nil {
		return
	}

	s.logger.Info("stopping refresh scheduler")
	s.cancel()
	s.wg.Wait()
	s.logger.Info("refresh scheduler stopped")
}

// Rebuild runs one rebuild under the rebuild lock and the configured timeout.
func (s *RefreshScheduler) Rebuild(ctx context.Context) (service.RebuildReport, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	var report service.RebuildReport
	err := locker.WithLock(ctx, s.locker, rebuildLockKey, s.lockTTL(), func(ctx context.Context) error {
		var err error
		report, err = s.rebuilder.Rebuild(ctx)
		return err
	})
	if errors.Is(err, locker.ErrLockHeld) {
		return service.RebuildReport{}, ErrRebuildInProgress
	}
	if err != nil {
		return report, fmt.Errorf("refresh: %w", err)
	}

	return report, nil
}

// lockTTL bounds how long a stuck rebuild can block others.
func (s *RefreshScheduler) lockTTL() time.Duration {
	if s.timeout > 0 {
		return s.timeout
	}

	return s.interval
}

func (s *RefreshScheduler) run(runOnStartup bool) {
	defer s.wg.Done()

	if runOnStartup {
		s.executeRefresh()
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.executeRefresh()
		}
	}
}

func (s *RefreshScheduler) executeRefresh() {
	report, err := s.Rebuild(s.ctx)
	switch {
	case errors.Is(err, ErrRebuildInProgress):
		s.logger.Debug("rebuild already running, skipping tick")
	case err != nil:
		// The current envelope keeps serving until its TTL lapses.
		s.logger.Warn("scheduled refresh failed", zap.Error(err))
	default:
		s.logger.Info("scheduled refresh completed",
			zap.Int("live_streams", report.LiveStreams),
			zap.Int("playlists", report.Playlists),
			zap.Duration("duration", report.Duration),
		)
	}
}
