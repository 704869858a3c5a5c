package finance

import (
	"fmt"

	"lending-metrics-api/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// The treasury vault receives 15% of borrowing fees; stakers receive the other 85%.
var (
	stakersFeeShare  = decimal.NewFromInt(85)
	treasuryFeeShare = decimal.NewFromInt(15)
	revenueShare     = decimal.RequireFromString("0.85")

	daysPerWeek    = decimal.NewFromInt(7)
	daysPerYear    = decimal.NewFromInt(365)
	minutesPerYear = decimal.NewFromInt(365 * 24 * 60)
)

// APR annualizes the fees observed over the last week against the staked value:
// ((now - weekAgo) * 85/15 / 7 * 365) / (staked * price).
// A zero staked value or price violates the caller's precondition.
func APR(nowValue, valueOneWeekAgo, stakedAmount, unitPrice decimal.Decimal) (decimal.Decimal, error) {
	weeklyFees := mustDiv(nowValue.Sub(valueOneWeekAgo).Mul(stakersFeeShare), treasuryFeeShare)
	yearlyFees := mustDiv(weeklyFees, daysPerWeek).Mul(daysPerYear)

	apr, err := div(yearlyFees, stakedAmount.Mul(unitPrice))
	if err != nil {
		return decimal.Zero, fmt.Errorf("apr with zero staked value: %w", err)
	}
	return apr, nil
}

// AprToApy compounds apr daily: (apr/365 + 1)^365 - 1
func AprToApy(apr decimal.Decimal) decimal.Decimal {
	daily := mustDiv(apr, daysPerYear).Add(decimal.NewFromInt(1))
	return powInt(daily, 365).Sub(decimal.NewFromInt(1)).Round(Precision)
}

// UsdhAPR is the HBB issued to the stability pool per year valued at the HBB price,
// relative to the pool size. issuancePerMinute is raw, stabilityPool in UI units.
func UsdhAPR(issuancePerMinute, hbbPrice, stabilityPool decimal.Decimal) (decimal.Decimal, error) {
	yearly := LamportsToAmount(issuancePerMinute, entities.HbbDecimals).Mul(minutesPerYear).Mul(hbbPrice)
	apr, err := div(yearly, stabilityPool)
	if err != nil {
		return decimal.Zero, fmt.Errorf("usdh apr with empty stability pool: %w", err)
	}
	return apr, nil
}

// Revenue grosses the distributed staking rewards (raw HBB units) back up to total protocol revenue
func Revenue(totalDistributedRewards decimal.Decimal) decimal.Decimal {
	return mustDiv(LamportsToAmount(totalDistributedRewards, entities.HbbDecimals), revenueShare)
}
