package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"lending-metrics-api/internal/domain/entities"
	"lending-metrics-api/internal/domain/interfaces"
	"lending-metrics-api/internal/infrastructure/logging"
	"lending-metrics-api/internal/infrastructure/metrics"
	"lending-metrics-api/pkg/utils"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"
)

const (
	defaultSnapshotInterval = time.Hour

	// how long a replica waits for a slot held by another one before skipping it
	snapshotLockWait = 2 * time.Second
)

// SnapshotService persists the metrics of each cluster for the history endpoints.
// Each cluster gets at most one snapshot per interval slot across all replicas.
type SnapshotService struct {
	metrics  *MetricsService
	repo     interfaces.SnapshotRepository
	locker   interfaces.DistributedLocker
	clock    clockwork.Clock
	interval time.Duration
}

func NewSnapshotService(metricsService *MetricsService, repo interfaces.SnapshotRepository, locker interfaces.DistributedLocker, clock clockwork.Clock, interval time.Duration) *SnapshotService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if interval <= 0 {
		interval = defaultSnapshotInterval
	}
	return &SnapshotService{
		metrics:  metricsService,
		repo:     repo,
		locker:   locker,
		clock:    clock,
		interval: interval,
	}
}

// Run captures every cluster at each interval boundary until ctx is done.
// Nothing is captured at startup; slots missed while a run was busy are skipped.
func (s *SnapshotService) Run(ctx context.Context, clusters []entities.Cluster, timeout time.Duration) {
	next := utils.NextSlot(s.clock.Now(), s.interval)
	logging.Info(ctx, "Snapshot job started", logging.Fields{
		"interval": s.interval.String(),
		"next_run": next.UTC().Format(time.RFC3339),
	})

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.clock.After(next.Sub(s.clock.Now())):
		}

		captureCtx, cancel := context.WithTimeout(ctx, timeout)
		if err := s.Capture(captureCtx, clusters); err != nil {
			logging.ErrorWithError(ctx, "Snapshot run failed", err, logging.Fields{
				"clusters": len(clusters),
			})
		}
		cancel()

		next = utils.NextSlot(s.clock.Now(), s.interval)
	}
}

// Capture computes fresh metrics for every cluster and saves one snapshot each.
// A failing cluster does not stop the others; all failures are returned joined.
func (s *SnapshotService) Capture(ctx context.Context, clusters []entities.Cluster) error {
	var (
		mu   sync.Mutex
		errs []error
	)

	var g errgroup.Group
	for _, cluster := range clusters {
		cluster := cluster
		g.Go(func() error {
			if err := s.captureCluster(ctx, cluster); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("snapshot %s: %w", cluster, err))
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	return errors.Join(errs...)
}

func (s *SnapshotService) captureCluster(ctx context.Context, cluster entities.Cluster) error {
	start := s.clock.Now()
	slot := start.Truncate(s.interval)

	// the lease outlives the slot on success, so a late replica cannot take it again
	held, claimed, err := s.claimSlot(ctx, cluster, slot)
	if err != nil || !claimed {
		return err
	}

	result, err := s.metrics.Compute(ctx, cluster)
	if err == nil {
		err = s.repo.Save(ctx, entities.MetricsSnapshot{
			Cluster:   cluster,
			CreatedAt: start.UTC(),
			Metrics:   result,
		})
	}

	metrics.RecordSnapshot(cluster.String(), err == nil)
	if err != nil {
		if releaseErr := held.Release(context.WithoutCancel(ctx)); releaseErr != nil {
			logging.WarnWithError(ctx, "Failed to release snapshot slot", releaseErr, logging.Fields{
				"cluster": cluster.String(),
			})
		}
		logging.Business().SnapshotFailed(ctx, cluster.String(), err)
		return err
	}

	logging.Business().SnapshotCaptured(ctx, cluster.String(), float64(s.clock.Since(start).Milliseconds()))
	return nil
}

// claimSlot takes the cluster+slot lock and checks the slot has no snapshot yet.
// claimed is false when another replica holds the slot or already wrote it.
func (s *SnapshotService) claimSlot(ctx context.Context, cluster entities.Cluster, slot time.Time) (interfaces.Lock, bool, error) {
	key := fmt.Sprintf("snapshot:%s:%d", cluster, slot.Unix())

	waitCtx, cancel := context.WithTimeout(ctx, snapshotLockWait)
	held, err := s.locker.Acquire(waitCtx, key, s.interval)
	cancel()
	if errors.Is(err, interfaces.ErrLockTimeout) {
		logging.Info(ctx, "Snapshot slot taken by another replica", logging.Fields{
			"cluster": cluster.String(),
			"slot":    slot.UTC().Format(time.RFC3339),
		})
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	existing, err := s.repo.Range(ctx, cluster, slot, slot.Add(s.interval-time.Nanosecond))
	if err != nil || len(existing) > 0 {
		_ = held.Release(context.WithoutCancel(ctx))
		if err == nil {
			logging.Info(ctx, "Snapshot slot already captured", logging.Fields{
				"cluster": cluster.String(),
				"slot":    slot.UTC().Format(time.RFC3339),
			})
		}
		return nil, false, err
	}
	return held, true, nil
}
