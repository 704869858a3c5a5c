package chain

import (
	"context"
	"fmt"
	"net/url"

	"lending-metrics-api/internal/domain/entities"
	"lending-metrics-api/internal/domain/interfaces"
	"lending-metrics-api/internal/infrastructure/config"
	"lending-metrics-api/internal/infrastructure/httpclient"
	"lending-metrics-api/internal/infrastructure/logging"

	"github.com/jonboulle/clockwork"
)

const serviceName = "chain"

// HTTPClient reads decoded program accounts from a state indexer, one endpoint per cluster
type HTTPClient struct {
	endpoints map[entities.Cluster]string
	caller    httpclient.Client
	clock     clockwork.Clock
}

// NewHTTPClient validates the configured endpoints
func NewHTTPClient(cfg config.ChainConfig, clock clockwork.Clock) (*HTTPClient, error) {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	endpoints := make(map[entities.Cluster]string, len(cfg.Endpoints))
	for name, raw := range cfg.Endpoints {
		cluster, err := entities.ParseCluster(name)
		if err != nil {
			return nil, err
		}
		if _, err := url.ParseRequestURI(raw); err != nil {
			return nil, fmt.Errorf("invalid endpoint for %s: %w", cluster, err)
		}
		endpoints[cluster] = raw
	}

	return &HTTPClient{
		endpoints: endpoints,
		caller:    httpclient.New(serviceName, cfg.Timeout, cfg.RequestTimeout, cfg.MaxRetries),
		clock:     clock,
	}, nil
}

// FetchAccountState reads the full decoded state of cluster in one request
func (c *HTTPClient) FetchAccountState(ctx context.Context, cluster entities.Cluster) (*entities.RawAccountState, error) {
	endpoint, ok := c.endpoints[cluster]
	if !ok {
		return nil, fmt.Errorf("%w: %w: %s", interfaces.ErrUpstreamUnavailable, ErrUnknownCluster, cluster)
	}

	var state entities.RawAccountState
	if err := c.caller.GetJSON(ctx, "/state", endpoint, &state); err != nil {
		return nil, fmt.Errorf("%w: chain state for %s: %w", interfaces.ErrUpstreamUnavailable, cluster, err)
	}

	if state.Cluster == "" {
		state.Cluster = cluster
	} else if state.Cluster != cluster {
		return nil, fmt.Errorf("%w: indexer returned %s state for %s", interfaces.ErrUpstreamUnavailable, state.Cluster, cluster)
	}
	if state.ReadAt.IsZero() {
		state.ReadAt = c.clock.Now().UTC()
	}

	logging.Debug(ctx, "Account state fetched", logging.Fields{
		logging.FieldCluster: cluster.String(),
		"slot":               state.Slot,
		"vaults":             len(state.UserVaults),
	})
	return &state, nil
}
