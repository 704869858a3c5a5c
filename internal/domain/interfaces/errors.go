package interfaces

import "errors"

// Sentinel errors shared by collaborator implementations. Implementations wrap them
// with context so callers can match with errors.Is.
var (
	// ErrKeyNotFound is returned when a store key does not exist
	ErrKeyNotFound = errors.New("key not found")

	// ErrStoreUnavailable is returned when the cache store cannot be reached
	ErrStoreUnavailable = errors.New("cache store unavailable")

	// ErrLockTimeout is returned when a key lock could not be acquired within its bound
	ErrLockTimeout = errors.New("lock acquisition timed out")

	// ErrUpstreamUnavailable is returned when the chain or an oracle collaborator fails
	ErrUpstreamUnavailable = errors.New("upstream unavailable")

	// ErrPriceUnavailable is returned when an oracle cannot quote every requested token
	ErrPriceUnavailable = errors.New("price unavailable")
)
