package finance

import (
	"encoding/json"
	"testing"
	"time"

	"lending-metrics-api/internal/domain/entities"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleState(borrowedRaw, solRaw string) *entities.RawAccountState {
	return &entities.RawAccountState{
		Cluster: entities.ClusterMainnet,
		BorrowingMarket: entities.BorrowingMarketState{
			StablecoinBorrowed:  d(borrowedRaw),
			DepositedCollateral: entities.CollateralAmounts{entities.TokenSOL: d(solRaw)},
			InactiveCollateral:  entities.CollateralAmounts{},
			NumberOfUsers:       1,
		},
		StakingPool: entities.StakingPoolState{
			TotalStake:             d("1000000000"),
			NumUsers:               4,
			TotalDistributedReward: d("85000000"),
		},
		StabilityPool: entities.StabilityPoolState{
			StablecoinDeposited: d("300000000"),
			P:                   d("1"),
		},
		StabilityProviders: []entities.StabilityProviderState{
			{
				Owner:               "provider-a",
				DepositedStablecoin: d("300000000"),
				UserDepositSnapshot: entities.DepositSnapshot{Enabled: true, Product: d("1")},
			},
			{Owner: "provider-b"},
		},
		UserVaults: []entities.UserVault{
			{
				MetadataPubkey:      "vault-1",
				Owner:               "owner-a",
				BorrowedStablecoin:  d(borrowedRaw),
				DepositedCollateral: entities.CollateralAmounts{entities.TokenSOL: d(solRaw)},
			},
			{MetadataPubkey: "vault-2", Owner: "owner-b"},
		},
		TreasuryVault: d("15000000"),
		HbbSupply:     d("1000000000000"),
		HbbHolders:    12,
	}
}

func TestBuildMetrics(t *testing.T) {
	now := time.Date(2022, 5, 1, 12, 0, 0, 0, time.UTC)

	result, err := BuildMetrics(sampleState("100000000", "18000000000"), uniformPrices("10"), now)
	require.NoError(t, err)

	assert.Equal(t, entities.ClusterMainnet, result.Cluster)
	assert.Equal(t, now.UnixMilli(), result.Timestamp)

	assert.Equal(t, "180", result.Collateral.Deposited.String())
	assert.Equal(t, "180", result.Collateral.Total.String())
	assert.Equal(t, "1.8", result.Collateral.CollateralRatio.String())
	assert.Len(t, result.Collateral.DepositedTokens, len(entities.CollateralTokens()))
	assert.NotEmpty(t, result.Collateral.RatioDistribution)

	assert.Equal(t, "1000", result.Hbb.Staked.String())
	assert.Equal(t, int64(4), result.Hbb.NumberOfStakers)
	assert.Equal(t, "2", result.Hbb.Price.String())
	assert.Equal(t, "1000000", result.Hbb.Issued.String())
	assert.Equal(t, int64(12), result.Hbb.NumberOfHolders)

	assert.Equal(t, "100", result.Revenue.String())

	assert.Equal(t, int64(1), result.Borrowing.NumberOfBorrowers)
	assert.Equal(t, "15", result.Borrowing.Treasury.String())
	assert.Equal(t, int64(1), result.Borrowing.Loans.Total)
	assert.Equal(t, "100", result.Borrowing.Loans.Median.String())

	assert.Equal(t, "300", result.Usdh.StabilityPool.String())
	assert.Equal(t, "100", result.Usdh.Issued.String())
	require.NotEmpty(t, result.Usdh.StabilityPoolDistribution)
	assert.Equal(t, int64(1), result.Usdh.StabilityPoolDistribution[0].TotalCount)

	assert.Equal(t, "2000000", result.CirculatingSupplyValue.String())
	assert.Equal(t, "2480", result.TotalValueLocked.String())
}

func TestBuildMetrics_NothingBorrowed(t *testing.T) {
	state := sampleState("0", "1000000000")

	result, err := BuildMetrics(state, uniformPrices("10"), time.Now())
	require.NoError(t, err)
	assert.True(t, result.Collateral.CollateralRatio.IsZero())
	assert.Equal(t, int64(0), result.Borrowing.Loans.Total)
	assert.Empty(t, result.Collateral.RatioDistribution)
}

func TestBuildMetrics_MissingPrice(t *testing.T) {
	prices := uniformPrices("10")
	delete(prices, entities.TokenHBB)

	_, err := BuildMetrics(sampleState("100000000", "18000000000"), prices, time.Now())
	assert.ErrorIs(t, err, ErrMissingPrice)

	prices = uniformPrices("10")
	delete(prices, entities.TokenBTC)
	_, err = BuildMetrics(sampleState("100000000", "18000000000"), prices, time.Now())
	assert.ErrorIs(t, err, ErrMissingPrice)
}

func TestBuildMetrics_NilState(t *testing.T) {
	_, err := BuildMetrics(nil, uniformPrices("1"), time.Now())
	assert.ErrorIs(t, err, ErrInvalidComputation)
}

func TestMetricsResult_JSONPreservesDecimals(t *testing.T) {
	// 1 SOL at 10 against 30 USDH of debt: a ratio of exactly one third at Precision
	result, err := BuildMetrics(sampleState("30000000", "1000000000"), uniformPrices("10"), time.Now())
	require.NoError(t, err)

	ratio := result.Collateral.CollateralRatio
	require.Equal(t, "0.3333333333333333333333333333", ratio.String())

	raw, err := json.Marshal(result)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"collateralRatio":"0.3333333333333333333333333333"`)

	var decoded entities.MetricsResult
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.True(t, decoded.Collateral.CollateralRatio.Equal(ratio))
	assert.True(t, decoded.TotalValueLocked.Equal(result.TotalValueLocked))
	assert.True(t, decoded.Borrowing.Loans.Average.Equal(result.Borrowing.Loans.Average))

	again, err := json.Marshal(decoded)
	require.NoError(t, err)
	assert.JSONEq(t, string(raw), string(again))

	third := decimal.NewFromInt(1).DivRound(decimal.NewFromInt(3), Precision)
	assert.True(t, decoded.Borrowing.Loans.Distribution[0].Value.Equal(decimal.NewFromInt(30)))
	assert.True(t, decoded.Collateral.RatioDistribution[0].Value.Equal(third))
}
