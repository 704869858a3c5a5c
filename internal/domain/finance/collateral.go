package finance

import (
	"fmt"

	"lending-metrics-api/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// Holding is an amount of one collateral kind priced in USD
type Holding struct {
	Amount decimal.Decimal
	Price  decimal.Decimal
}

// CollateralRatio returns depositedValue / borrowed.
// A zero-debt position has no ratio; callers treat ErrDivisionByZero as "nothing to report".
func CollateralRatio(borrowed, depositedValue decimal.Decimal) (decimal.Decimal, error) {
	ratio, err := div(depositedValue, borrowed)
	if err != nil {
		return decimal.Zero, fmt.Errorf("collateral ratio with zero borrowed stablecoin: %w", err)
	}
	return ratio, nil
}

// LoanToValue returns 100 / ratio
func LoanToValue(ratio decimal.Decimal) (decimal.Decimal, error) {
	ltv, err := div(hundred, ratio)
	if err != nil {
		return decimal.Zero, fmt.Errorf("loan to value with zero collateral ratio: %w", err)
	}
	return ltv, nil
}

// TotalCollateralValue sums amount*price over every holding, zero amounts included
func TotalCollateralValue(holdings []Holding) decimal.Decimal {
	total := decimal.Zero
	for _, h := range holdings {
		total = total.Add(h.Amount.Mul(h.Price))
	}
	return total
}

// Collateral converts raw deposited and inactive amounts of every supported token to UI units,
// prices them and sums deposited, inactive and overall value.
func Collateral(deposited, inactive entities.CollateralAmounts, prices entities.PriceBook) (entities.CollateralTotals, error) {
	tokens := entities.CollateralTokens()
	totals := entities.CollateralTotals{
		Tokens:    make([]entities.TokenCollateral, 0, len(tokens)),
		Total:     decimal.Zero,
		Deposited: decimal.Zero,
		Inactive:  decimal.Zero,
	}

	depositedHoldings := make([]Holding, 0, len(tokens))
	inactiveHoldings := make([]Holding, 0, len(tokens))

	for _, token := range tokens {
		price, ok := prices.Price(token.Name)
		if !ok {
			return entities.CollateralTotals{}, fmt.Errorf("%w for %s", ErrMissingPrice, token.Name)
		}

		tc := entities.TokenCollateral{
			Token:     token.Name,
			Deposited: LamportsToAmount(deposited.Amount(token.Name), token.Decimals),
			Inactive:  LamportsToAmount(inactive.Amount(token.Name), token.Decimals),
			Price:     price,
		}
		totals.Tokens = append(totals.Tokens, tc)

		depositedHoldings = append(depositedHoldings, Holding{Amount: tc.Deposited, Price: price})
		inactiveHoldings = append(inactiveHoldings, Holding{Amount: tc.Inactive, Price: price})
	}

	totals.Deposited = TotalCollateralValue(depositedHoldings)
	totals.Inactive = TotalCollateralValue(inactiveHoldings)
	totals.Total = totals.Deposited.Add(totals.Inactive)

	return totals, nil
}

// EvaluateVault derives a Loan from a user vault. Vaults without debt yield ErrDivisionByZero.
func EvaluateVault(vault entities.UserVault, prices entities.PriceBook) (entities.Loan, error) {
	debt := LamportsToAmount(vault.BorrowedStablecoin, entities.StablecoinDecimals)

	collateral, err := Collateral(vault.DepositedCollateral, vault.InactiveCollateral, prices)
	if err != nil {
		return entities.Loan{}, err
	}

	ratio, err := CollateralRatio(debt, collateral.Deposited)
	if err != nil {
		return entities.Loan{}, fmt.Errorf("vault %s: %w", vault.MetadataPubkey, err)
	}

	ltv, err := LoanToValue(ratio)
	if err != nil {
		return entities.Loan{}, fmt.Errorf("vault %s: %w", vault.MetadataPubkey, err)
	}

	return entities.Loan{
		MetadataPubkey:       vault.MetadataPubkey,
		Owner:                vault.Owner,
		UserID:               vault.UserID,
		Status:               vault.Status,
		Version:              vault.Version,
		UsdhDebt:             debt,
		TotalCollateralValue: collateral.Deposited,
		CollateralRatio:      ratio,
		LoanToValue:          ltv,
		Collateral:           collateral.Tokens,
	}, nil
}

// Loans evaluates every vault with outstanding debt
func Loans(vaults []entities.UserVault, prices entities.PriceBook) ([]entities.Loan, error) {
	loans := make([]entities.Loan, 0, len(vaults))
	for _, vault := range vaults {
		if !vault.BorrowedStablecoin.IsPositive() {
			continue
		}
		loan, err := EvaluateVault(vault, prices)
		if err != nil {
			return nil, err
		}
		loans = append(loans, loan)
	}
	return loans, nil
}
