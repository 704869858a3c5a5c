package cache

import (
	"errors"

	"lending-metrics-api/internal/domain/interfaces"
)

var (
	// ErrKeyNotFound is returned when a key does not exist or has expired
	ErrKeyNotFound = interfaces.ErrKeyNotFound

	// ErrStoreUnavailable wraps every transport failure
	ErrStoreUnavailable = interfaces.ErrStoreUnavailable

	// ErrUnsupportedBackend is returned by the factory for an unknown backend name
	ErrUnsupportedBackend = errors.New("unsupported cache backend")
)
