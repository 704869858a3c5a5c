package oracle

import (
	"fmt"
	"strings"
	"time"

	"lending-metrics-api/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// HermesPrice is a fixed-point price as published by Pyth: price × 10^expo
type HermesPrice struct {
	Price       string `json:"price"`
	Conf        string `json:"conf"`
	Expo        int32  `json:"expo"`
	PublishTime int64  `json:"publish_time"`
}

// HermesPriceFeed is one parsed feed of a Hermes update
type HermesPriceFeed struct {
	ID       string      `json:"id"`
	Price    HermesPrice `json:"price"`
	EMAPrice HermesPrice `json:"ema_price"`
}

// HermesLatestResponse is the body of GET /v2/updates/price/latest?parsed=true
type HermesLatestResponse struct {
	Parsed []HermesPriceFeed `json:"parsed"`
}

// HermesStreamMessage is any message received on the Hermes websocket
type HermesStreamMessage struct {
	Type      string           `json:"type"`
	Status    string           `json:"status,omitempty"`
	Error     string           `json:"error,omitempty"`
	PriceFeed *HermesPriceFeed `json:"price_feed,omitempty"`
}

// HermesSubscribeRequest subscribes to price updates for feed ids
type HermesSubscribeRequest struct {
	Type string   `json:"type"`
	IDs  []string `json:"ids"`
}

// Value converts the fixed-point price into a decimal
func (p HermesPrice) Value() (decimal.Decimal, error) {
	raw, err := decimal.NewFromString(p.Price)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid price %q: %w", p.Price, err)
	}
	return raw.Shift(p.Expo), nil
}

// PublishedAt is the on-chain publish time of the price
func (p HermesPrice) PublishedAt() time.Time {
	return time.Unix(p.PublishTime, 0).UTC()
}

// Quote converts a feed into a PriceQuote. Non-positive prices are rejected.
func (f HermesPriceFeed) Quote(token entities.Token, source string) (entities.PriceQuote, error) {
	price, err := f.Price.Value()
	if err != nil {
		return entities.PriceQuote{}, err
	}
	if !price.IsPositive() {
		return entities.PriceQuote{}, fmt.Errorf("non-positive price %s for %s", price, token)
	}
	return entities.PriceQuote{
		Token:     token,
		Price:     price,
		Timestamp: f.Price.PublishedAt(),
		Source:    source,
	}, nil
}

// JupiterPrice is one entry of the Jupiter price API
type JupiterPrice struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Price string `json:"price"`
}

// JupiterPriceResponse is the body of GET /price/v2?ids=...; unknown mints map to null
type JupiterPriceResponse struct {
	Data      map[string]*JupiterPrice `json:"data"`
	TimeTaken float64                  `json:"timeTaken"`
}

// normalizeFeedID lowercases and strips the 0x prefix Hermes accepts but never returns
func normalizeFeedID(id string) string {
	return strings.TrimPrefix(strings.ToLower(strings.TrimSpace(id)), "0x")
}

// tokenMap converts config keys (lowercased by viper) into tokens
func tokenMap(raw map[string]string) map[entities.Token]string {
	out := make(map[entities.Token]string, len(raw))
	for k, v := range raw {
		out[entities.Token(strings.ToUpper(strings.TrimSpace(k)))] = strings.TrimSpace(v)
	}
	return out
}
