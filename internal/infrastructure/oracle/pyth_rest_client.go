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
)

const (
	SourcePyth       = "pyth"
	latestPricesPath = "/v2/updates/price/latest"
)

// PythRestClient quotes prices from the Pyth Hermes REST API
type PythRestClient struct {
	baseURL string
	feeds   map[entities.Token]string
	caller  httpclient.Client
}

// NewPythRestClient creates a Hermes client for the configured feeds
func NewPythRestClient(cfg config.OracleConfig) *PythRestClient {
	return &PythRestClient{
		baseURL: strings.TrimRight(cfg.Pyth.RestURL, "/"),
		feeds:   tokenMap(cfg.Pyth.Feeds),
		caller:  httpclient.New(SourcePyth, cfg.Timeout, cfg.RequestTimeout, cfg.MaxRetries),
	}
}

func (c *PythRestClient) Name() string {
	return SourcePyth
}

// GetPrices fetches the latest parsed update of every requested token in one call
func (c *PythRestClient) GetPrices(ctx context.Context, tokens []entities.Token) (entities.PriceBook, error) {
	if len(tokens) == 0 {
		return entities.PriceBook{}, nil
	}

	byFeed := make(map[string]entities.Token, len(tokens))
	query := url.Values{}
	for _, token := range tokens {
		id, ok := c.feeds[token]
		if !ok {
			return nil, fmt.Errorf("%w: %s: %w", interfaces.ErrPriceUnavailable, token, ErrUnknownToken)
		}
		byFeed[normalizeFeedID(id)] = token
		query.Add("ids[]", id)
	}
	query.Set("parsed", "true")

	var resp HermesLatestResponse
	if err := c.caller.GetJSON(ctx, latestPricesPath, c.baseURL+latestPricesPath+"?"+query.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("%w: pyth: %w", interfaces.ErrUpstreamUnavailable, err)
	}

	book := make(entities.PriceBook, len(tokens))
	for _, feed := range resp.Parsed {
		token, ok := byFeed[normalizeFeedID(feed.ID)]
		if !ok {
			continue
		}
		quote, err := feed.Quote(token, SourcePyth)
		if err != nil {
			logging.Warn(ctx, "Discarding invalid Pyth price", logging.Fields{
				logging.FieldToken: string(token),
				"error":            err.Error(),
			})
			continue
		}
		book[token] = quote
		metrics.UpdateOraclePrice(string(token), SourcePyth, quote.Price.InexactFloat64())
	}

	return complete(book, tokens)
}

// complete fails when book misses any requested token
func complete(book entities.PriceBook, tokens []entities.Token) (entities.PriceBook, error) {
	var missing []string
	for _, token := range tokens {
		if _, ok := book[token]; !ok {
			missing = append(missing, string(token))
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: no quote for %s", interfaces.ErrPriceUnavailable, strings.Join(missing, ", "))
	}
	return book, nil
}

// isStale reports whether quote is older than maxAge at now
func isStale(quote entities.PriceQuote, maxAge time.Duration, now time.Time) bool {
	return maxAge > 0 && now.Sub(quote.Timestamp) > maxAge
}
