// Package locker provides keyed locks with automatic expiry for coordinating
// operations that must not overlap.
package locker

import (
	"context"
	"errors"
	"time"
)

// ErrLockHeld is returned by helpers when the lock is owned by someone else.
var ErrLockHeld = errors.New("lock already held")

// Locker provides keyed locks that expire after a ttl.
// Implementations must be safe for concurrent use.
//
// Typical usage:
//
//	token, acquired, err := locker.Acquire(ctx, "cache:rebuild", 2*time.Minute)
//	if err != nil {
//	    return err
//	}
//	if !acquired {
//	    // Someone else is rebuilding
//	    return nil
//	}
//	defer locker.Release(ctx, "cache:rebuild", token)
type Locker interface {
	// Acquire attempts to take the lock identified by key.
	// Returns false, without error, when the lock is already held.
	// The lock expires after ttl if not released. The returned token
	// identifies this holder.
	Acquire(ctx context.Context, key string, ttl time.Duration) (string, bool, error)

	// Release releases the lock identified by key if token still owns it.
	// Releasing a lock that is not held, or is held by another token, is a no-op.
	Release(ctx context.Context, key, token string) error
}

// WithLock runs fn while holding key. It returns ErrLockHeld without running
// fn when the lock is taken.
func WithLock(ctx context.Context, l Locker, key string, ttl time.Duration, fn func(ctx context.Context) error) error {
	token, acquired, err := l.Acquire(ctx, key, ttl)
	if err != nil {
		return err
	}
	if !acquired {
		return ErrLockHeld
	}
	defer func() { _ = l.Release(context.WithoutCancel(ctx), key, token) }()

	return fn(ctx)
}
