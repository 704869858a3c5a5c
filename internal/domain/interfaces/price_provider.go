package interfaces

import (
	"context"

	"lending-metrics-api/internal/domain/entities"
)

// PriceProvider quotes USD prices for protocol tokens.
// A provider either quotes every requested token or fails with ErrPriceUnavailable.
type PriceProvider interface {
	GetPrices(ctx context.Context, tokens []entities.Token) (entities.PriceBook, error)
	Name() string
}
