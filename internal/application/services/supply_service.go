package services

import (
	"context"

	"lending-metrics-api/internal/application/readthrough"
	"lending-metrics-api/internal/domain/entities"
	"lending-metrics-api/internal/domain/finance"
	"lending-metrics-api/internal/domain/interfaces"

	"github.com/shopspring/decimal"
)

var supplyExpiry = readthrough.MustExpireInSeconds(60)

// SupplyService reports the HBB circulating supply for market data aggregators
type SupplyService struct {
	engine *readthrough.Engine
	inputs protocolInputs
}

func NewSupplyService(engine *readthrough.Engine, chain interfaces.ChainClient, prices interfaces.PriceProvider) *SupplyService {
	return &SupplyService{engine: engine, inputs: protocolInputs{chain: chain, prices: prices}}
}

// GetCirculatingSupply returns the circulating HBB in token units
func (s *SupplyService) GetCirculatingSupply(ctx context.Context, cluster entities.Cluster) (decimal.Decimal, error) {
	return readthrough.FetchOrCompute(ctx, s.engine, readthrough.CirculatingSupplyKey(cluster), supplyExpiry,
		func(ctx context.Context) (decimal.Decimal, error) {
			state, err := s.inputs.state(ctx, cluster)
			if err != nil {
				return decimal.Zero, err
			}
			return finance.LamportsToAmount(state.HbbCirculating, entities.HbbDecimals), nil
		})
}

// GetCirculatingSupplyValue returns the circulating supply valued at the HBB price
func (s *SupplyService) GetCirculatingSupplyValue(ctx context.Context, cluster entities.Cluster) (decimal.Decimal, error) {
	return readthrough.FetchOrCompute(ctx, s.engine, readthrough.CirculatingSupplyValueKey(cluster), supplyExpiry,
		func(ctx context.Context) (decimal.Decimal, error) {
			supply, err := s.GetCirculatingSupply(ctx, cluster)
			if err != nil {
				return decimal.Zero, err
			}
			book, err := s.inputs.prices.GetPrices(ctx, []entities.Token{entities.TokenHBB})
			if err != nil {
				return decimal.Zero, err
			}
			price, ok := book.Price(entities.TokenHBB)
			if !ok {
				return decimal.Zero, finance.ErrMissingPrice
			}
			return supply.Mul(price), nil
		})
}
