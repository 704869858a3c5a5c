package oracle

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"lending-metrics-api/internal/domain/entities"
	"lending-metrics-api/internal/domain/interfaces"

	"golang.org/x/sync/errgroup"
)

const SourceRouted = "routed"

// RoutingProvider quotes each token from its own source. Tokens without a route go
// to the default source.
type RoutingProvider struct {
	sources  map[string]interfaces.PriceProvider
	routes   map[entities.Token]string
	fallback string
}

// NewRoutingProvider checks that the default and every route name a known source
func NewRoutingProvider(sources map[string]interfaces.PriceProvider, fallback string, routes map[entities.Token]string) (*RoutingProvider, error) {
	if _, ok := sources[fallback]; !ok {
		return nil, fmt.Errorf("%w: default route %q", ErrUnknownProvider, fallback)
	}
	for token, source := range routes {
		if _, ok := sources[source]; !ok {
			return nil, fmt.Errorf("%w: route %s -> %q", ErrUnknownProvider, token, source)
		}
	}
	return &RoutingProvider{sources: sources, routes: routes, fallback: fallback}, nil
}

func (p *RoutingProvider) Name() string {
	return SourceRouted
}

// GetPrices asks every involved source in parallel for its share of tokens.
// Any source failing fails the whole book.
func (p *RoutingProvider) GetPrices(ctx context.Context, tokens []entities.Token) (entities.PriceBook, error) {
	groups := p.split(tokens)

	var (
		mu   sync.Mutex
		book = make(entities.PriceBook, len(tokens))
	)
	g, gctx := errgroup.WithContext(ctx)
	for source, share := range groups {
		source, share := source, share
		provider := p.sources[source]
		g.Go(func() error {
			quotes, err := provider.GetPrices(gctx, share)
			if err != nil {
				return fmt.Errorf("%s: %w", source, err)
			}
			mu.Lock()
			for token, quote := range quotes {
				book[token] = quote
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return complete(book, tokens)
}

// Sources lists the distinct source names in use, sorted
func (p *RoutingProvider) Sources() []string {
	names := make([]string, 0, len(p.sources))
	for name := range p.sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Close closes every source holding a connection
func (p *RoutingProvider) Close() error {
	var errs []error
	for _, source := range p.sources {
		if closer, ok := source.(interface{ Close() error }); ok {
			if err := closer.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

func (p *RoutingProvider) split(tokens []entities.Token) map[string][]entities.Token {
	groups := make(map[string][]entities.Token)
	for _, token := range tokens {
		source, ok := p.routes[token]
		if !ok {
			source = p.fallback
		}
		groups[source] = append(groups[source], token)
	}
	return groups
}
