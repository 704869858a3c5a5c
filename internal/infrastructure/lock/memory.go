package lock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"lending-metrics-api/internal/domain/interfaces"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
)

const memoryPollInterval = 10 * time.Millisecond

type lease struct {
	token     string
	expiresAt time.Time
}

// MemoryLocker implements interfaces.DistributedLocker inside one process with the
// same lease semantics as the Redis lock. Used with the memory store backend.
type MemoryLocker struct {
	mu       sync.Mutex
	leases   map[string]lease
	released chan struct{}
	clock    clockwork.Clock
}

// NewMemoryLocker creates a lease-based in-process locker
func NewMemoryLocker(clock clockwork.Clock) *MemoryLocker {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &MemoryLocker{leases: make(map[string]lease), released: make(chan struct{}), clock: clock}
}

// Acquire retries until key is free or its lease lapsed, or ctx is done.
// Waiters wake on every release and on each poll tick of the locker clock.
func (l *MemoryLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (interfaces.Lock, error) {
	token := uuid.NewString()
	for {
		acquired, released := l.tryAcquire(key, token, ttl)
		if acquired {
			return &memoryLock{locker: l, key: key, token: token}, nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %s: %v", interfaces.ErrLockTimeout, key, ctx.Err())
		case <-released:
		case <-l.clock.After(memoryPollInterval):
		}
	}
}

func (l *MemoryLocker) tryAcquire(key, token string, ttl time.Duration) (bool, <-chan struct{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.clock.Now()
	if current, held := l.leases[key]; held && now.Before(current.expiresAt) {
		return false, l.released
	}
	l.leases[key] = lease{token: token, expiresAt: now.Add(ttl)}
	return true, nil
}

func (l *MemoryLocker) release(key, token string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	current, held := l.leases[key]
	if !held || current.token != token {
		return fmt.Errorf("unlock %s: lease expired before release", key)
	}
	delete(l.leases, key)
	close(l.released)
	l.released = make(chan struct{})
	return nil
}

type memoryLock struct {
	locker *MemoryLocker
	key    string
	token  string
}

func (h *memoryLock) Release(ctx context.Context) error {
	return h.locker.release(h.key, h.token)
}
