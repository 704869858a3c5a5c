package services

import (
	"context"

	"lending-metrics-api/internal/application/readthrough"
	"lending-metrics-api/internal/domain/entities"
	"lending-metrics-api/internal/domain/finance"
	"lending-metrics-api/internal/domain/interfaces"
	"lending-metrics-api/internal/infrastructure/logging"
	"lending-metrics-api/internal/infrastructure/metrics"

	"github.com/jonboulle/clockwork"
)

var metricsExpiry = readthrough.MustExpireInSeconds(30)

// MetricsService produces the protocol-wide metrics
type MetricsService struct {
	engine *readthrough.Engine
	inputs protocolInputs
	clock  clockwork.Clock
}

func NewMetricsService(engine *readthrough.Engine, chain interfaces.ChainClient, prices interfaces.PriceProvider, clock clockwork.Clock) *MetricsService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &MetricsService{
		engine: engine,
		inputs: protocolInputs{chain: chain, prices: prices},
		clock:  clock,
	}
}

// GetMetrics returns the cached metrics of cluster, computing them on a miss
func (s *MetricsService) GetMetrics(ctx context.Context, cluster entities.Cluster) (entities.MetricsResult, error) {
	return readthrough.FetchOrCompute(ctx, s.engine, readthrough.MetricsKey(cluster), metricsExpiry,
		func(ctx context.Context) (entities.MetricsResult, error) {
			return s.Compute(ctx, cluster)
		})
}

// Compute runs the pipeline against fresh chain state and prices, bypassing the cache
func (s *MetricsService) Compute(ctx context.Context, cluster entities.Cluster) (entities.MetricsResult, error) {
	state, prices, err := s.inputs.load(ctx, cluster, pricedTokens())
	if err != nil {
		return entities.MetricsResult{}, err
	}

	result, err := finance.BuildMetrics(state, prices, s.clock.Now())
	if err != nil {
		return entities.MetricsResult{}, err
	}

	metrics.UpdateProtocolGauges(cluster.String(), result.TotalValueLocked.InexactFloat64(), result.Collateral.CollateralRatio.InexactFloat64())
	logging.Business().MetricsComputed(ctx, cluster.String(), result.TotalValueLocked.String(), int(result.Borrowing.Loans.Total))
	return result, nil
}
