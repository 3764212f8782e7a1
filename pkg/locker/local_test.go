package locker

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testLockKey = "test:lock"

func newTestLocker() (*LocalLocker, *time.Time) {
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	l := NewLocalLocker(zap.NewNop())
	l.now = func() time.Time { return now }

	return l, &now
}

func TestLocalLocker_Acquire_Success(t *testing.T) {
	l, _ := newTestLocker()

	token, acquired, err := l.Acquire(context.Background(), testLockKey, 5*time.Second)

	require.NoError(t, err)
	assert.True(t, acquired, "First acquisition should succeed")
	assert.NotEmpty(t, token)
}

func TestLocalLocker_Acquire_AlreadyHeld(t *testing.T) {
	l, _ := newTestLocker()
	ctx := context.Background()

	_, acquired, err := l.Acquire(ctx, testLockKey, 5*time.Second)
	require.NoError(t, err)
	require.True(t, acquired)

	_, acquired, err = l.Acquire(ctx, testLockKey, 5*time.Second)
	require.NoError(t, err)
	assert.False(t, acquired, "Second acquisition should fail while held")

	_, acquired, err = l.Acquire(ctx, "other:lock", 5*time.Second)
	require.NoError(t, err)
	assert.True(t, acquired, "Different keys are independent")
}

func TestLocalLocker_Acquire_AfterExpiry(t *testing.T) {
	l, now := newTestLocker()
	ctx := context.Background()

	_, acquired, _ := l.Acquire(ctx, testLockKey, time.Minute)
	require.True(t, acquired)

	*now = now.Add(time.Minute)

	_, acquired, err := l.Acquire(ctx, testLockKey, time.Minute)
	require.NoError(t, err)
	assert.True(t, acquired, "Expired lock should be reclaimable")
}

func TestLocalLocker_Release(t *testing.T) {
	l, _ := newTestLocker()
	ctx := context.Background()

	require.NoError(t, l.Release(ctx, testLockKey, "1"), "Releasing a free lock is a no-op")

	token, acquired, _ := l.Acquire(ctx, testLockKey, time.Hour)
	require.True(t, acquired)
	require.NoError(t, l.Release(ctx, testLockKey, token))

	_, acquired, err := l.Acquire(ctx, testLockKey, time.Hour)
	require.NoError(t, err)
	assert.True(t, acquired)
}

func TestLocalLocker_Release_StaleHolderKeepsNewLock(t *testing.T) {
	l, now := newTestLocker()
	ctx := context.Background()

	first, acquired, _ := l.Acquire(ctx, testLockKey, time.Minute)
	require.True(t, acquired)

	*now = now.Add(2 * time.Minute)

	second, acquired, _ := l.Acquire(ctx, testLockKey, time.Minute)
	require.True(t, acquired, "Expired lock should be reclaimable")
	require.NotEqual(t, first, second)

	require.NoError(t, l.Release(ctx, testLockKey, first))

	_, acquired, err := l.Acquire(ctx, testLockKey, time.Minute)
	require.NoError(t, err)
	assert.False(t, acquired, "Expired holder must not free the new holder's lock")

	require.NoError(t, l.Release(ctx, testLockKey, second))
	_, acquired, _ = l.Acquire(ctx, testLockKey, time.Minute)
	assert.True(t, acquired)
}

func TestLocalLocker_Acquire_CancelledContext(t *testing.T) {
	l, _ := newTestLocker()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, acquired, err := l.Acquire(ctx, testLockKey, time.Hour)

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, acquired)
}

func TestLocalLocker_ConcurrentAcquire(t *testing.T) {
	l := NewLocalLocker(zap.NewNop())

	var winners atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok, _ := l.Acquire(context.Background(), testLockKey, time.Hour); ok {
				winners.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), winners.Load())
}

func TestWithLock(t *testing.T) {
	l, _ := newTestLocker()
	ctx := context.Background()

	ran := false
	err := WithLock(ctx, l, testLockKey, time.Hour, func(ctx context.Context) error {
		ran = true

		nested := WithLock(ctx, l, testLockKey, time.Hour, func(context.Context) error { return nil })
		assert.ErrorIs(t, nested, ErrLockHeld)

		return nil
	})
	require.NoError(t, err)
	assert.True(t, ran)

	_, acquired, _ := l.Acquire(ctx, testLockKey, time.Hour)
	assert.True(t, acquired, "WithLock should release on return")
}

func TestWithLock_PropagatesError(t *testing.T) {
	l, _ := newTestLocker()
	boom := errors.New("boom")

	err := WithLock(context.Background(), l, testLockKey, time.Hour, func(context.Context) error { return boom })

	assert.ErrorIs(t, err, boom)
	_, acquired, _ := l.Acquire(context.Background(), testLockKey, time.Hour)
	assert.True(t, acquired, "lock released after failure")
}
