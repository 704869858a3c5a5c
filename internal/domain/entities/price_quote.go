package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// PriceQuote is one oracle observation for a token, in USD
type PriceQuote struct {
	Token     Token           `json:"token"`
	Price     decimal.Decimal `json:"price"`
	Timestamp time.Time       `json:"timestamp"`
	Source    string          `json:"source"`
}

// PriceBook maps tokens to the quotes used by a single computation
type PriceBook map[Token]PriceQuote

// Price returns the quoted price for token
func (b PriceBook) Price(token Token) (decimal.Decimal, bool) {
	q, ok := b[token]
	if !ok {
		return decimal.Zero, false
	}
	return q.Price, true
}
