package interfaces

import (
	"context"
	"time"

	"lending-metrics-api/internal/domain/entities"
)

// SnapshotRepository persists hourly metrics snapshots for range queries
type SnapshotRepository interface {
	Save(ctx context.Context, snapshot entities.MetricsSnapshot) error

	// Range returns snapshots of cluster created within [from, to], oldest first
	Range(ctx context.Context, cluster entities.Cluster, from, to time.Time) ([]entities.MetricsSnapshot, error)

	Ping(ctx context.Context) error
}
