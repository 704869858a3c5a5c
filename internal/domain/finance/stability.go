package finance

import (
	"lending-metrics-api/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// ScaleFactor is the fixed-point step applied when the pool advances its scale counter
var ScaleFactor = decimal.NewFromInt(1_000_000_000)

// StabilityContribution returns what remains of a provider's stability pool deposit.
// Positions with no deposit, a disabled snapshot or an epoch older than the pool's are fully absorbed.
func StabilityContribution(pool entities.StabilityPoolState, provider entities.StabilityProviderState) (decimal.Decimal, error) {
	snapshot := provider.UserDepositSnapshot
	if provider.DepositedStablecoin.IsZero() || !snapshot.Enabled {
		return decimal.Zero, nil
	}
	if snapshot.Epoch < pool.CurrentEpoch {
		return decimal.Zero, nil
	}

	compounded, err := div(provider.DepositedStablecoin.Mul(pool.P), snapshot.Product)
	if err != nil {
		return decimal.Zero, err
	}

	if pool.CurrentScale == snapshot.Scale {
		return compounded, nil
	}
	return mustDiv(compounded, ScaleFactor), nil
}
