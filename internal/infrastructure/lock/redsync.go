package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lending-metrics-api/internal/domain/interfaces"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	goredislib "github.com/redis/go-redis/v9"
)

const (
	defaultRetryDelay = 50 * time.Millisecond
	// upper bound on attempts; the acquisition context normally ends the loop first
	maxTries = 1000
)

// RedsyncLocker implements interfaces.DistributedLocker with the Redlock algorithm
// over a go-redis pool.
type RedsyncLocker struct {
	rs         *redsync.Redsync
	retryDelay time.Duration
}

// NewRedsyncLocker shares client's connection pool with the store
func NewRedsyncLocker(client goredislib.UniversalClient, retryDelay time.Duration) *RedsyncLocker {
	if retryDelay <= 0 {
		retryDelay = defaultRetryDelay
	}
	return &RedsyncLocker{
		rs:         redsync.New(goredis.NewPool(client)),
		retryDelay: retryDelay,
	}
}

// Acquire retries until the lock is taken or ctx is done. The lock expires after lease
// even if never released.
func (l *RedsyncLocker) Acquire(ctx context.Context, key string, lease time.Duration) (interfaces.Lock, error) {
	mutex := l.rs.NewMutex(key,
		redsync.WithExpiry(lease),
		redsync.WithTries(maxTries),
		redsync.WithRetryDelay(l.retryDelay),
	)

	if err := mutex.LockContext(ctx); err != nil {
		var taken *redsync.ErrTaken
		switch {
		case ctx.Err() != nil, errors.Is(err, redsync.ErrFailed), errors.As(err, &taken):
			return nil, fmt.Errorf("%w: %s: %v", interfaces.ErrLockTimeout, key, err)
		default:
			return nil, fmt.Errorf("%w: lock %s: %v", interfaces.ErrStoreUnavailable, key, err)
		}
	}

	return &redsyncLock{mutex: mutex}, nil
}

type redsyncLock struct {
	mutex *redsync.Mutex
}

// Release frees the lock if this holder still owns it
func (h *redsyncLock) Release(ctx context.Context) error {
	ok, err := h.mutex.UnlockContext(ctx)
	if err != nil {
		return fmt.Errorf("unlock %s: %w", h.mutex.Name(), err)
	}
	if !ok {
		return fmt.Errorf("unlock %s: lease expired before release", h.mutex.Name())
	}
	return nil
}
