package lock

import (
	"context"
	"sync"

	"golang.org/x/sync/semaphore"
)

type keyedSemaphore struct {
	sem  *semaphore.Weighted
	refs int
}

// LocalLocker is a process-local mutex per key. Entries are reference counted so
// idle keys do not accumulate.
type LocalLocker struct {
	mu    sync.Mutex
	locks map[string]*keyedSemaphore
}

// NewLocalLocker creates an empty keyed locker
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{locks: make(map[string]*keyedSemaphore)}
}

// Acquire blocks until key is free or ctx is done
func (l *LocalLocker) Acquire(ctx context.Context, key string) (func(), error) {
	entry := l.ref(key)

	if err := entry.sem.Acquire(ctx, 1); err != nil {
		l.unref(key)
		return nil, err
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			entry.sem.Release(1)
			l.unref(key)
		})
	}, nil
}

// Len returns the number of keys currently held or awaited
func (l *LocalLocker) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

func (l *LocalLocker) ref(key string) *keyedSemaphore {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry, ok := l.locks[key]
	if !ok {
		entry = &keyedSemaphore{sem: semaphore.NewWeighted(1)}
		l.locks[key] = entry
	}
	entry.refs++
	return entry
}

func (l *LocalLocker) unref(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	entry := l.locks[key]
	entry.refs--
	if entry.refs == 0 {
		delete(l.locks, key)
	}
}
