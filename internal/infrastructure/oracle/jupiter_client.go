package oracle

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"lending-metrics-api/internal/domain/entities"
	"lending-metrics-api/internal/domain/interfaces"
	"lending-metrics-api/internal/infrastructure/config"
	"lending-metrics-api/internal/infrastructure/httpclient"
	"lending-metrics-api/internal/infrastructure/logging"
	"lending-metrics-api/internal/infrastructure/metrics"

	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
)

const SourceJupiter = "jupiter"

// JupiterClient quotes prices by mint address from the Jupiter price API
type JupiterClient struct {
	baseURL string
	mints   map[entities.Token]string
	caller  httpclient.Client
	clock   clockwork.Clock
}

// NewJupiterClient creates a client for the configured mints
func NewJupiterClient(cfg config.OracleConfig, clock clockwork.Clock) *JupiterClient {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &JupiterClient{
		baseURL: strings.TrimRight(cfg.Jupiter.URL, "/"),
		mints:   tokenMap(cfg.Jupiter.Mints),
		caller:  httpclient.New(SourceJupiter, cfg.Timeout, cfg.RequestTimeout, cfg.MaxRetries),
		clock:   clock,
	}
}

func (c *JupiterClient) Name() string {
	return SourceJupiter
}

// GetPrices queries every mint in one request. Jupiter has no publish time, so the
// quote is stamped with the receive time.
func (c *JupiterClient) GetPrices(ctx context.Context, tokens []entities.Token) (entities.PriceBook, error) {
	if len(tokens) == 0 {
		return entities.PriceBook{}, nil
	}

	byMint := make(map[string]entities.Token, len(tokens))
	ids := make([]string, 0, len(tokens))
	for _, token := range tokens {
		mint, ok := c.mints[token]
		if !ok {
			return nil, fmt.Errorf("%w: %s: %w", interfaces.ErrPriceUnavailable, token, ErrUnknownToken)
		}
		byMint[mint] = token
		ids = append(ids, mint)
	}

	query := url.Values{}
	query.Set("ids", strings.Join(ids, ","))

	var resp JupiterPriceResponse
	if err := c.caller.GetJSON(ctx, "/price", c.baseURL+"?"+query.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("%w: jupiter: %w", interfaces.ErrUpstreamUnavailable, err)
	}

	now := c.clock.Now().UTC().Truncate(time.Second)
	book := make(entities.PriceBook, len(tokens))
	for mint, entry := range resp.Data {
		token, ok := byMint[mint]
		if !ok || entry == nil {
			continue
		}
		price, err := decimal.NewFromString(entry.Price)
		if err != nil || !price.IsPositive() {
			logging.Warn(ctx, "Discarding invalid Jupiter price", logging.Fields{
				logging.FieldToken: string(token),
				logging.FieldPrice: entry.Price,
			})
			continue
		}
		book[token] = entities.PriceQuote{Token: token, Price: price, Timestamp: now, Source: SourceJupiter}
		metrics.UpdateOraclePrice(string(token), SourceJupiter, price.InexactFloat64())
	}

	return complete(book, tokens)
}
