package snapshot

import (
	"context"
	"fmt"
	"time"

	"lending-metrics-api/internal/domain/entities"
	"lending-metrics-api/internal/domain/interfaces"
	"lending-metrics-api/internal/infrastructure/logging"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrDatabaseUnavailable is returned when the snapshot database cannot be queried.
// It matches interfaces.ErrUpstreamUnavailable.
var ErrDatabaseUnavailable = fmt.Errorf("snapshot database unavailable: %w", interfaces.ErrUpstreamUnavailable)

// Record is one persisted metrics snapshot. CreatedOn is the epoch in milliseconds.
type Record struct {
	ID        uuid.UUID              `gorm:"type:uuid;primaryKey"`
	Cluster   string                 `gorm:"size:32;not null;index:idx_snapshots_cluster_created,priority:1"`
	CreatedOn int64                  `gorm:"not null;index:idx_snapshots_cluster_created,priority:2"`
	Metrics   entities.MetricsResult `gorm:"serializer:json;type:text;not null"`
	CreatedAt time.Time
}

func (Record) TableName() string {
	return "metrics_snapshots"
}

// Repository persists snapshots with gorm
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Save inserts snapshot under a fresh id
func (r *Repository) Save(ctx context.Context, snapshot entities.MetricsSnapshot) error {
	record := Record{
		ID:        uuid.New(),
		Cluster:   snapshot.Cluster.String(),
		CreatedOn: snapshot.CreatedAt.UnixMilli(),
		Metrics:   snapshot.Metrics,
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return fmt.Errorf("%w: save snapshot: %v", ErrDatabaseUnavailable, err)
	}

	logging.Debug(ctx, "Snapshot saved", logging.Fields{
		logging.FieldCluster: snapshot.Cluster.String(),
		"snapshot_id":        record.ID.String(),
		"created_on":         record.CreatedOn,
	})
	return nil
}

// Range returns the snapshots of cluster taken within [from, to], oldest first
func (r *Repository) Range(ctx context.Context, cluster entities.Cluster, from, to time.Time) ([]entities.MetricsSnapshot, error) {
	var records []Record
	err := r.db.WithContext(ctx).
		Where("cluster = ? AND created_on BETWEEN ? AND ?", cluster.String(), from.UnixMilli(), to.UnixMilli()).
		Order("created_on ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("%w: range query: %v", ErrDatabaseUnavailable, err)
	}

	snapshots := make([]entities.MetricsSnapshot, 0, len(records))
	for _, rec := range records {
		snapshots = append(snapshots, entities.MetricsSnapshot{
			Cluster:   entities.Cluster(rec.Cluster),
			CreatedAt: time.UnixMilli(rec.CreatedOn).UTC(),
			Metrics:   rec.Metrics,
		})
	}
	return snapshots, nil
}

// Ping checks the database connection
func (r *Repository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseUnavailable, err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseUnavailable, err)
	}
	return nil
}

// Close releases the connection pool
func (r *Repository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

var _ interfaces.SnapshotRepository = (*Repository)(nil)
