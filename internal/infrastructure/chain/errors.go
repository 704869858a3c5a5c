package chain

import "errors"

var (
	ErrUnknownCluster  = errors.New("no chain endpoint for cluster")
	ErrUnknownProvider = errors.New("unknown chain provider")
	ErrInvalidFixture  = errors.New("invalid chain fixture")
)
