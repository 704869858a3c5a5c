package finance

import (
	"errors"
	"fmt"
	"time"

	"lending-metrics-api/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// BuildMetrics runs the full pipeline over one account state snapshot and price book
func BuildMetrics(state *entities.RawAccountState, prices entities.PriceBook, now time.Time) (entities.MetricsResult, error) {
	if state == nil {
		return entities.MetricsResult{}, fmt.Errorf("%w: nil account state", ErrInvalidComputation)
	}

	hbbPrice, ok := prices.Price(entities.TokenHBB)
	if !ok {
		return entities.MetricsResult{}, fmt.Errorf("%w for %s", ErrMissingPrice, entities.TokenHBB)
	}

	market := state.BorrowingMarket
	collateral, err := Collateral(market.DepositedCollateral, market.InactiveCollateral, prices)
	if err != nil {
		return entities.MetricsResult{}, err
	}

	loans, err := Loans(state.UserVaults, prices)
	if err != nil {
		return entities.MetricsResult{}, err
	}

	borrowers := make(map[string]struct{}, len(loans))
	loanSizes := make([]decimal.Decimal, 0, len(loans))
	ratios := make([]decimal.Decimal, 0, len(loans))
	for _, loan := range loans {
		borrowers[loan.Owner] = struct{}{}
		loanSizes = append(loanSizes, loan.UsdhDebt)
		ratios = append(ratios, loan.CollateralRatio)
	}

	issued := LamportsToAmount(market.StablecoinBorrowed, entities.StablecoinDecimals)
	marketRatio, err := CollateralRatio(issued, collateral.Deposited)
	if err != nil && !errors.Is(err, ErrDivisionByZero) {
		return entities.MetricsResult{}, err
	}

	stabilityPool := LamportsToAmount(state.StabilityPool.StablecoinDeposited, entities.StablecoinDecimals)
	stabilitySamples := make([]decimal.Decimal, 0, len(state.StabilityProviders))
	for _, provider := range state.StabilityProviders {
		provided, err := StabilityContribution(state.StabilityPool, provider)
		if err != nil {
			return entities.MetricsResult{}, fmt.Errorf("stability provider %s: %w", provider.Owner, err)
		}
		if provided.IsPositive() {
			stabilitySamples = append(stabilitySamples, LamportsToAmount(provided, entities.StablecoinDecimals))
		}
	}

	hbbStaked := LamportsToAmount(state.StakingPool.TotalStake, entities.HbbDecimals)
	hbbIssued := LamportsToAmount(state.HbbSupply, entities.HbbDecimals)

	return entities.MetricsResult{
		Cluster: state.Cluster,
		Collateral: entities.CollateralMetrics{
			Total:             collateral.Total,
			Deposited:         collateral.Deposited,
			Inactive:          collateral.Inactive,
			DepositedTokens:   collateral.Tokens,
			CollateralRatio:   marketRatio,
			RatioDistribution: positiveOnly(Percentiles(ratios)),
		},
		Hbb: entities.HbbMetrics{
			Staked:          hbbStaked,
			NumberOfStakers: state.StakingPool.NumUsers,
			Price:           hbbPrice,
			Issued:          hbbIssued,
			NumberOfHolders: state.HbbHolders,
		},
		Revenue: Revenue(state.StakingPool.TotalDistributedReward),
		Borrowing: entities.BorrowingMetrics{
			NumberOfBorrowers: int64(len(borrowers)),
			Treasury:          LamportsToAmount(state.TreasuryVault, entities.StablecoinDecimals),
			Loans:             Stats(loanSizes),
		},
		Usdh: entities.UsdhMetrics{
			StabilityPool:             stabilityPool,
			StabilityPoolDistribution: Percentiles(stabilitySamples),
			Issued:                    issued,
		},
		CirculatingSupplyValue: hbbIssued.Mul(hbbPrice),
		TotalValueLocked:       hbbStaked.Mul(hbbPrice).Add(collateral.Total).Add(stabilityPool),
		Timestamp:              now.UnixMilli(),
	}, nil
}

func positiveOnly(samples []entities.PercentileSample) []entities.PercentileSample {
	out := make([]entities.PercentileSample, 0, len(samples))
	for _, s := range samples {
		if s.Value.IsPositive() {
			out = append(out, s)
		}
	}
	return out
}
