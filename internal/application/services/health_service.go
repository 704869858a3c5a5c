package services

import (
	"context"
	"fmt"

	"lending-metrics-api/internal/domain/interfaces"

	"golang.org/x/sync/errgroup"
)

// HealthService checks the collaborators every request depends on
type HealthService struct {
	store interfaces.Store
	repo  interfaces.SnapshotRepository
}

func NewHealthService(store interfaces.Store, repo interfaces.SnapshotRepository) *HealthService {
	return &HealthService{store: store, repo: repo}
}

// Check pings the cache store and the snapshot database concurrently
func (s *HealthService) Check(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := s.store.Ping(gctx); err != nil {
			return fmt.Errorf("cache store: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := s.repo.Ping(gctx); err != nil {
			return fmt.Errorf("snapshot database: %w", err)
		}
		return nil
	})
	return g.Wait()
}
