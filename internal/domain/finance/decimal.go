// Package finance turns raw on-chain balances and oracle prices into the protocol's
// reported numbers. Every function is pure and uses exact decimal arithmetic.
package finance

import (
	"github.com/shopspring/decimal"
)

// Precision is the number of fractional digits kept by every division
const Precision int32 = 28

// intermediatePrecision bounds digit growth inside repeated multiplication
const intermediatePrecision int32 = 40

var (
	hundred = decimal.NewFromInt(100)
	two     = decimal.NewFromInt(2)
)

// div divides a by b at Precision, rejecting a zero denominator
func div(a, b decimal.Decimal) (decimal.Decimal, error) {
	if b.IsZero() {
		return decimal.Zero, ErrDivisionByZero
	}
	return a.DivRound(b, Precision), nil
}

// mustDiv divides by a denominator known to be non-zero (protocol constants)
func mustDiv(a, b decimal.Decimal) decimal.Decimal {
	return a.DivRound(b, Precision)
}

// powInt raises base to a non-negative integer exponent by repeated squaring
func powInt(base decimal.Decimal, exp int) decimal.Decimal {
	result := decimal.NewFromInt(1)
	for exp > 0 {
		if exp&1 == 1 {
			result = result.Mul(base).Round(intermediatePrecision)
		}
		base = base.Mul(base).Round(intermediatePrecision)
		exp >>= 1
	}
	return result
}

// LamportsToAmount converts a raw integer amount to UI units given the mint decimals
func LamportsToAmount(raw decimal.Decimal, decimals int32) decimal.Decimal {
	if raw.IsZero() {
		return decimal.Zero
	}
	return raw.Shift(-decimals)
}
