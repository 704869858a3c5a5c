package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"lending-metrics-api/internal/domain/entities"
	"lending-metrics-api/internal/domain/finance"
	"lending-metrics-api/internal/domain/interfaces"
	"lending-metrics-api/internal/infrastructure/oracle"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsService_GetMetricsIsCached(t *testing.T) {
	f := newFixture(t)
	svc := f.metricsService()
	ctx := context.Background()

	first, err := svc.GetMetrics(ctx, entities.ClusterMainnet)
	require.NoError(t, err)
	second, err := svc.GetMetrics(ctx, entities.ClusterMainnet)
	require.NoError(t, err)

	assert.Equal(t, 1, f.chain.Calls())
	assert.True(t, first.TotalValueLocked.Equal(second.TotalValueLocked))
	assert.Equal(t, entities.ClusterMainnet, first.Cluster)
	assert.Equal(t, int64(3), first.Borrowing.Loans.Total)
	assert.Equal(t, int64(2), first.Borrowing.NumberOfBorrowers)
	assert.True(t, first.Hbb.Price.Equal(d("0.5")))
	assert.Equal(t, testNow.UnixMilli(), first.Timestamp)
}

func TestMetricsService_CachedResultIsExact(t *testing.T) {
	f := newFixture(t)
	prices := testPrices()
	// deposited collateral becomes 7021 against 3900 issued, a ratio with a factor of 1/3
	prices[entities.TokenRAY] = d("1.01")
	svc := NewMetricsService(f.engine, f.chain, oracle.NewStaticProviderFromPrices(prices, f.clock), f.clock)
	ctx := context.Background()

	computed, err := svc.GetMetrics(ctx, entities.ClusterMainnet)
	require.NoError(t, err)
	cached, err := svc.GetMetrics(ctx, entities.ClusterMainnet)
	require.NoError(t, err)
	assert.Equal(t, 1, f.chain.Calls())

	expected := d("7021").DivRound(d("3900"), finance.Precision)
	assert.Equal(t, expected.String(), computed.Collateral.CollateralRatio.String())
	assert.Equal(t, expected.String(), cached.Collateral.CollateralRatio.String())
	assert.True(t, cached.Collateral.Deposited.Equal(d("7021")))

	computedJSON, err := json.Marshal(computed)
	require.NoError(t, err)
	cachedJSON, err := json.Marshal(cached)
	require.NoError(t, err)
	assert.Equal(t, string(computedJSON), string(cachedJSON))
}

func TestMetricsService_ClustersAreCachedSeparately(t *testing.T) {
	f := newFixture(t)
	svc := f.metricsService()
	ctx := context.Background()

	mainnet, err := svc.GetMetrics(ctx, entities.ClusterMainnet)
	require.NoError(t, err)
	devnet, err := svc.GetMetrics(ctx, entities.ClusterDevnet)
	require.NoError(t, err)

	assert.Equal(t, 2, f.chain.Calls())
	assert.True(t, devnet.Usdh.Issued.Equal(mainnet.Usdh.Issued.Mul(d("2"))))
}

func TestMetricsService_MissingPriceIsNotCached(t *testing.T) {
	f := newFixture(t)
	prices := testPrices()
	delete(prices, entities.TokenHBB)
	svc := NewMetricsService(f.engine, f.chain, oracle.NewStaticProviderFromPrices(prices, f.clock), f.clock)

	_, err := svc.GetMetrics(context.Background(), entities.ClusterMainnet)
	require.Error(t, err)
	assert.True(t, errors.Is(err, interfaces.ErrPriceUnavailable))
	assert.Equal(t, 0, f.store.Size())
}

func TestMetricsService_ComputeBypassesCache(t *testing.T) {
	f := newFixture(t)
	svc := f.metricsService()
	ctx := context.Background()

	_, err := svc.Compute(ctx, entities.ClusterMainnet)
	require.NoError(t, err)
	_, err = svc.Compute(ctx, entities.ClusterMainnet)
	require.NoError(t, err)

	assert.Equal(t, 2, f.chain.Calls())
	assert.Equal(t, 0, f.store.Size())
}

func TestMetricsService_UnknownCluster(t *testing.T) {
	f := newFixture(t)
	svc := f.metricsService()

	_, err := svc.GetMetrics(context.Background(), entities.Cluster("testnet"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, interfaces.ErrUpstreamUnavailable))
	assert.False(t, errors.Is(err, finance.ErrInvalidComputation))
}
