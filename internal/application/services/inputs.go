package services

import (
	"context"
	"fmt"

	"lending-metrics-api/internal/domain/entities"
	"lending-metrics-api/internal/domain/interfaces"

	"golang.org/x/sync/errgroup"
)

// pricedTokens are quoted for every computation: all collateral plus HBB
func pricedTokens() []entities.Token {
	return append(entities.CollateralSymbols(), entities.TokenHBB)
}

// protocolInputs reads chain state and oracle prices concurrently
type protocolInputs struct {
	chain  interfaces.ChainClient
	prices interfaces.PriceProvider
}

func (in protocolInputs) load(ctx context.Context, cluster entities.Cluster, tokens []entities.Token) (*entities.RawAccountState, entities.PriceBook, error) {
	var (
		state *entities.RawAccountState
		book  entities.PriceBook
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		state, err = in.chain.FetchAccountState(gctx, cluster)
		return err
	})
	g.Go(func() error {
		var err error
		book, err = in.prices.GetPrices(gctx, tokens)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	if state == nil {
		return nil, nil, fmt.Errorf("%w: empty account state for %s", interfaces.ErrUpstreamUnavailable, cluster)
	}
	return state, book, nil
}

func (in protocolInputs) state(ctx context.Context, cluster entities.Cluster) (*entities.RawAccountState, error) {
	state, err := in.chain.FetchAccountState(ctx, cluster)
	if err != nil {
		return nil, err
	}
	if state == nil {
		return nil, fmt.Errorf("%w: empty account state for %s", interfaces.ErrUpstreamUnavailable, cluster)
	}
	return state, nil
}
