package oracle

import (
	"context"
	"fmt"

	"lending-metrics-api/internal/domain/entities"
	"lending-metrics-api/internal/infrastructure/config"

	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
)

const SourceStatic = "static"

// StaticProvider returns fixed prices, for development and tests
type StaticProvider struct {
	prices map[entities.Token]decimal.Decimal
	clock  clockwork.Clock
}

// NewStaticProvider parses the configured prices
func NewStaticProvider(cfg config.StaticConfig, clock clockwork.Clock) (*StaticProvider, error) {
	prices := make(map[entities.Token]decimal.Decimal, len(cfg.Prices))
	for token, raw := range tokenMap(cfg.Prices) {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid static price for %s: %w", token, err)
		}
		prices[token] = price
	}
	return NewStaticProviderFromPrices(prices, clock), nil
}

// NewStaticProviderFromPrices uses prices as given
func NewStaticProviderFromPrices(prices map[entities.Token]decimal.Decimal, clock clockwork.Clock) *StaticProvider {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &StaticProvider{prices: prices, clock: clock}
}

func (p *StaticProvider) Name() string {
	return SourceStatic
}

func (p *StaticProvider) GetPrices(_ context.Context, tokens []entities.Token) (entities.PriceBook, error) {
	now := p.clock.Now().UTC()
	book := make(entities.PriceBook, len(tokens))
	for _, token := range tokens {
		price, ok := p.prices[token]
		if !ok {
			continue
		}
		book[token] = entities.PriceQuote{Token: token, Price: price, Timestamp: now, Source: SourceStatic}
	}
	return complete(book, tokens)
}
