package interfaces

import (
	"context"
	"time"
)

// NoExpiry is the TTL reported for a key that exists without an expiry
const NoExpiry time.Duration = -1

// Store is the shared key/value collaborator behind the read-through cache.
// Transport failures are reported wrapped in ErrStoreUnavailable.
type Store interface {
	// Get returns the raw value for key; found is false on a miss
	Get(ctx context.Context, key string) (value []byte, found bool, err error)

	// SetIfAbsent writes value only when key does not exist yet
	SetIfAbsent(ctx context.Context, key string, value []byte) (stored bool, err error)

	// ExpireIn sets a relative TTL on an existing key
	ExpireIn(ctx context.Context, key string, ttl time.Duration) error

	// ExpireAt sets an absolute expiry on an existing key
	ExpireAt(ctx context.Context, key string, at time.Time) error

	// TTL returns the remaining lifetime, NoExpiry, or ErrKeyNotFound
	TTL(ctx context.Context, key string) (time.Duration, error)

	Ping(ctx context.Context) error
	Close() error
}

// AtomicStore is implemented by stores that can write a value and its expiry in one call
type AtomicStore interface {
	Store

	SetIfAbsentWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)
	SetIfAbsentUntil(ctx context.Context, key string, value []byte, at time.Time) (bool, error)
}
