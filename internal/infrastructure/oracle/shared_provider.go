package oracle

import (
	"context"
	"sort"
	"strings"

	"lending-metrics-api/internal/domain/entities"
	"lending-metrics-api/internal/domain/interfaces"
	"lending-metrics-api/internal/infrastructure/logging"

	"golang.org/x/sync/singleflight"
)

// SharedPriceProvider collapses concurrent identical requests into one oracle call
type SharedPriceProvider struct {
	inner interfaces.PriceProvider
	group singleflight.Group
}

func NewSharedPriceProvider(inner interfaces.PriceProvider) *SharedPriceProvider {
	return &SharedPriceProvider{inner: inner}
}

func (p *SharedPriceProvider) Name() string {
	return p.inner.Name()
}

// GetPrices shares the in-flight call for the same token set. The call runs detached
// from the first caller's cancellation since other callers may be waiting on it.
func (p *SharedPriceProvider) GetPrices(ctx context.Context, tokens []entities.Token) (entities.PriceBook, error) {
	key := requestKey(tokens)

	ch := p.group.DoChan(key, func() (interface{}, error) {
		book, err := p.inner.GetPrices(context.WithoutCancel(ctx), tokens)
		if err != nil {
			return nil, err
		}
		for token, quote := range book {
			logging.Business().PriceQuoted(ctx, string(token), quote.Price.String(), quote.Source)
		}
		return book, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return copyBook(res.Val.(entities.PriceBook)), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Close closes the wrapped provider when it holds a connection
func (p *SharedPriceProvider) Close() error {
	if closer, ok := p.inner.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}

func requestKey(tokens []entities.Token) string {
	symbols := make([]string, len(tokens))
	for i, t := range tokens {
		symbols[i] = string(t)
	}
	sort.Strings(symbols)
	return strings.Join(symbols, ",")
}

// copyBook gives each caller its own map
func copyBook(book entities.PriceBook) entities.PriceBook {
	out := make(entities.PriceBook, len(book))
	for k, v := range book {
		out[k] = v
	}
	return out
}
