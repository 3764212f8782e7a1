package locker

import (
	"context"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
)

type lease struct {
	token  string
	expiry time.Time
}

// LocalLocker implements Locker within a single process.
// Expired locks are treated as free and reclaimed on the next Acquire.
type LocalLocker struct {
	mu     sync.Mutex
	held   map[string]lease
	seq    uint64
	now    func() time.Time
	logger *zap.Logger
}

// NewLocalLocker creates a new in-process locker.
func NewLocalLocker(logger *zap.Logger) *LocalLocker {
	return &LocalLocker{
		held:   make(map[string]lease),
		now:    time.Now,
		logger: logger,
	}
}

// Acquire takes the lock if it is free or its previous holder's ttl lapsed.
func (l *LocalLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if cur, ok := l.held[key]; ok && now.Before(cur.expiry) {
		l.logger.Debug("lock already held",
			zap.String("key", key),
			zap.Duration("remaining", cur.expiry.Sub(now)),
		)
		return "", false, nil
	}

	l.seq++
	token := strconv.FormatUint(l.seq, 10)
	l.held[key] = lease{token: token, expiry: now.Add(ttl)}

	l.logger.Debug("lock acquired",
		zap.String("key", key),
		zap.Duration("ttl", ttl),
	)

	return token, true, nil
}

// Release frees the lock if token still owns it. A lock that expired and
// was taken by someone else is left alone.
func (l *LocalLocker) Release(_ context.Context, key, token string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	cur, ok := l.held[key]
	if !ok || cur.token != token {
		l.logger.Debug("lock not owned by caller, skipping release", zap.String("key", key))
		return nil
	}

	delete(l.held, key)

	l.logger.Debug("lock released", zap.String("key", key))

	return nil
}
