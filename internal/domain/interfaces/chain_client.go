package interfaces

import (
	"context"

	"lending-metrics-api/internal/domain/entities"
)

// ChainClient reads the protocol's program accounts for a cluster
type ChainClient interface {
	FetchAccountState(ctx context.Context, cluster entities.Cluster) (*entities.RawAccountState, error)
}
