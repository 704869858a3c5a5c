package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"lending-metrics-api/internal/application/readthrough"
	"lending-metrics-api/internal/domain/entities"
	"lending-metrics-api/internal/domain/finance"
	"lending-metrics-api/internal/domain/interfaces"
	"lending-metrics-api/pkg/utils"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"
)

const (
	StakingHBB  = "HBB"
	StakingUSDH = "USDH"

	// snapshots are hourly, any one within this distance of the target is close enough
	weekAgoRadius = time.Hour
)

// StakingService reports yield of HBB staking and the USDH stability pool
type StakingService struct {
	engine  *readthrough.Engine
	metrics *MetricsService
	inputs  protocolInputs
	repo    interfaces.SnapshotRepository
	clock   clockwork.Clock
}

func NewStakingService(engine *readthrough.Engine, metricsService *MetricsService, chain interfaces.ChainClient, repo interfaces.SnapshotRepository, clock clockwork.Clock) *StakingService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &StakingService{
		engine:  engine,
		metrics: metricsService,
		inputs:  protocolInputs{chain: chain},
		repo:    repo,
		clock:   clock,
	}
}

// GetStaking returns APR, APY and TVL of both staking products. The value changes
// with each hourly snapshot, so it expires at the next refresh.
func (s *StakingService) GetStaking(ctx context.Context, cluster entities.Cluster) ([]entities.StakingStats, error) {
	now := s.clock.Now()
	policy, err := readthrough.ExpireAtDate(readthrough.NextSnapshotRefresh(now))
	if err != nil {
		return nil, err
	}

	return readthrough.FetchOrCompute(ctx, s.engine, readthrough.StakingKey(cluster), policy,
		func(ctx context.Context) ([]entities.StakingStats, error) {
			return s.computeStaking(ctx, cluster, now)
		})
}

func (s *StakingService) computeStaking(ctx context.Context, cluster entities.Cluster, now time.Time) ([]entities.StakingStats, error) {
	var (
		current  entities.MetricsResult
		state    *entities.RawAccountState
		weekAgo  entities.MetricsSnapshot
		stateErr error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		current, err = s.metrics.GetMetrics(gctx, cluster)
		return err
	})
	g.Go(func() error {
		state, stateErr = s.inputs.state(gctx, cluster)
		return stateErr
	})
	g.Go(func() error {
		var err error
		weekAgo, err = s.snapshotWeekAgo(gctx, cluster, now)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	hbb := current.Hbb
	hbbApr, err := finance.APR(current.Borrowing.Treasury, weekAgo.Metrics.Borrowing.Treasury, hbb.Staked, hbb.Price)
	if err != nil {
		return nil, err
	}
	usdhApr, err := finance.UsdhAPR(state.GlobalConfig.IssuancePerMinute, hbb.Price, current.Usdh.StabilityPool)
	if err != nil {
		return nil, err
	}

	return []entities.StakingStats{
		{Name: StakingHBB, APR: hbbApr, APY: finance.AprToApy(hbbApr), TVL: hbb.Staked.Mul(hbb.Price)},
		{Name: StakingUSDH, APR: usdhApr, APY: finance.AprToApy(usdhApr), TVL: current.Usdh.StabilityPool},
	}, nil
}

// snapshotWeekAgo returns the snapshot nearest to one week before now.
// On a tie the earlier one wins.
func (s *StakingService) snapshotWeekAgo(ctx context.Context, cluster entities.Cluster, now time.Time) (entities.MetricsSnapshot, error) {
	target, from, to := utils.WeekAgoWindow(now, weekAgoRadius)
	snapshots, err := s.repo.Range(ctx, cluster, from, to)
	if err != nil {
		return entities.MetricsSnapshot{}, err
	}
	if len(snapshots) == 0 {
		return entities.MetricsSnapshot{}, fmt.Errorf("%w: no %s snapshot near %s", ErrHistoryUnavailable, cluster, target.UTC().Format(time.RFC3339))
	}

	nearest := snapshots[0]
	for _, snapshot := range snapshots[1:] {
		if distance(snapshot.CreatedAt, target) < distance(nearest.CreatedAt, target) {
			nearest = snapshot
		}
	}
	return nearest, nil
}

func distance(a, b time.Time) time.Duration {
	if a.Before(b) {
		return b.Sub(a)
	}
	return a.Sub(b)
}

// GetHbbStakers lists HBB stakers, largest stake first
func (s *StakingService) GetHbbStakers(ctx context.Context, cluster entities.Cluster) ([]entities.StakingUser, error) {
	return readthrough.FetchOrCompute(ctx, s.engine, readthrough.HbbStakersKey(cluster), stakersExpiry,
		func(ctx context.Context) ([]entities.StakingUser, error) {
			state, err := s.inputs.state(ctx, cluster)
			if err != nil {
				return nil, err
			}

			users := make([]entities.StakingUser, 0, len(state.HbbStakers))
			for _, staker := range state.HbbStakers {
				if !staker.StakedHbb.IsPositive() {
					continue
				}
				users = append(users, entities.StakingUser{
					User:   staker.Owner,
					Staked: finance.LamportsToAmount(staker.StakedHbb, entities.HbbDecimals),
				})
			}
			sortStakers(users)
			return users, nil
		})
}

// GetUsdhStakers lists stability pool providers by their remaining deposit
func (s *StakingService) GetUsdhStakers(ctx context.Context, cluster entities.Cluster) ([]entities.StakingUser, error) {
	return readthrough.FetchOrCompute(ctx, s.engine, readthrough.UsdhStakersKey(cluster), stakersExpiry,
		func(ctx context.Context) ([]entities.StakingUser, error) {
			state, err := s.inputs.state(ctx, cluster)
			if err != nil {
				return nil, err
			}

			users := make([]entities.StakingUser, 0, len(state.StabilityProviders))
			for _, provider := range state.StabilityProviders {
				provided, err := finance.StabilityContribution(state.StabilityPool, provider)
				if err != nil {
					return nil, fmt.Errorf("stability provider %s: %w", provider.Owner, err)
				}
				if !provided.IsPositive() {
					continue
				}
				users = append(users, entities.StakingUser{
					User:   provider.Owner,
					Staked: finance.LamportsToAmount(provided, entities.StablecoinDecimals),
				})
			}
			sortStakers(users)
			return users, nil
		})
}

var stakersExpiry = readthrough.MustExpireInSeconds(60)

func sortStakers(users []entities.StakingUser) {
	sort.SliceStable(users, func(i, j int) bool {
		if users[i].Staked.Equal(users[j].Staked) {
			return users[i].User < users[j].User
		}
		return users[i].Staked.GreaterThan(users[j].Staked)
	})
}
