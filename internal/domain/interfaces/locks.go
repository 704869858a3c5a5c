package interfaces

import (
	"context"
	"time"
)

// KeyLocker serializes work on a key inside one process
type KeyLocker interface {
	// Acquire blocks until the key is free or ctx is done. The returned func releases it.
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// Lock is a held distributed lock
type Lock interface {
	Release(ctx context.Context) error
}

// DistributedLocker serializes work on a key across every process sharing the store.
// Acquire gives up when ctx is done and reports ErrLockTimeout.
type DistributedLocker interface {
	Acquire(ctx context.Context, key string, lease time.Duration) (Lock, error)
}
