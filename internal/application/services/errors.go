package services

import "errors"

var (
	// ErrInvalidInput marks a request the caller must fix
	ErrInvalidInput = errors.New("invalid input")

	// ErrHistoryUnavailable is returned when no snapshot covers a required point in time
	ErrHistoryUnavailable = errors.New("historical snapshot unavailable")

	// ErrSettingsUnavailable is returned when a cluster has no protocol settings configured
	ErrSettingsUnavailable = errors.New("protocol settings unavailable")
)
