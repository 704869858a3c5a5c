package entities

import (
	"fmt"
	"strings"
)

// Token is the symbol of an asset the protocol accounts for
type Token string

const (
	TokenSOL  Token = "SOL"
	TokenETH  Token = "ETH"
	TokenBTC  Token = "BTC"
	TokenSRM  Token = "SRM"
	TokenRAY  Token = "RAY"
	TokenFTT  Token = "FTT"
	TokenMSOL Token = "MSOL"

	TokenUSDH Token = "USDH"
	TokenHBB  Token = "HBB"
)

// Decimal places of the protocol's own mints
const (
	StablecoinDecimals = 6
	HbbDecimals        = 6
)

// CollateralToken describes a collateral kind as stored on chain
type CollateralToken struct {
	ID       int
	Name     Token
	Decimals int32
}

// collateralTokens keeps the on-chain ordering; totals iterate in this order.
var collateralTokens = []CollateralToken{
	{ID: 0, Name: TokenSOL, Decimals: 9},
	{ID: 1, Name: TokenETH, Decimals: 6},
	{ID: 2, Name: TokenBTC, Decimals: 6},
	{ID: 3, Name: TokenSRM, Decimals: 6},
	{ID: 4, Name: TokenRAY, Decimals: 6},
	{ID: 5, Name: TokenFTT, Decimals: 6},
	{ID: 6, Name: TokenMSOL, Decimals: 9},
}

// CollateralTokens returns a copy of the supported collateral registry
func CollateralTokens() []CollateralToken {
	out := make([]CollateralToken, len(collateralTokens))
	copy(out, collateralTokens)
	return out
}

// CollateralSymbols returns the symbols of every supported collateral token
func CollateralSymbols() []Token {
	out := make([]Token, len(collateralTokens))
	for i, t := range collateralTokens {
		out[i] = t.Name
	}
	return out
}

// LookupCollateralToken finds a collateral token by symbol, case-insensitive
func LookupCollateralToken(symbol string) (CollateralToken, error) {
	for _, t := range collateralTokens {
		if strings.EqualFold(string(t.Name), symbol) {
			return t, nil
		}
	}
	return CollateralToken{}, fmt.Errorf("unsupported collateral token: %s", symbol)
}
