package readthrough

import (
	"errors"

	"lending-metrics-api/internal/domain/interfaces"
)

var (
	// ErrLockTimeout is returned when either lock tier could not be acquired in time.
	// The fetch is never run unlocked.
	ErrLockTimeout = interfaces.ErrLockTimeout

	// ErrStoreUnavailable is returned when the cache store fails; the call fails closed
	ErrStoreUnavailable = interfaces.ErrStoreUnavailable

	// ErrInvalidPolicy is returned for an expiry policy not built by a constructor
	ErrInvalidPolicy = errors.New("invalid expiry policy")

	// ErrInvalidOptions is returned by NewEngine for inconsistent timeouts or lease
	ErrInvalidOptions = errors.New("invalid engine options")

	// ErrDecode is returned when a cached payload cannot be decoded
	ErrDecode = errors.New("cached value could not be decoded")

	// ErrEncode is returned when a computed value cannot be encoded for storage
	ErrEncode = errors.New("computed value could not be encoded")
)
