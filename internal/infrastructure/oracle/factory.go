package oracle

import (
	"context"
	"fmt"
	"strings"

	"lending-metrics-api/internal/domain/entities"
	"lending-metrics-api/internal/domain/interfaces"
	"lending-metrics-api/internal/infrastructure/config"

	"github.com/jonboulle/clockwork"
)

const (
	ProviderPyth       = "pyth"
	ProviderPythStream = "pyth-stream"
	ProviderJupiter    = "jupiter"
	ProviderStatic     = "static"
	ProviderRouted     = "routed"
)

// Factory creates price providers from configuration
type Factory struct {
	clock clockwork.Clock
}

func NewFactory(clock clockwork.Clock) *Factory {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Factory{clock: clock}
}

// CreateProvider returns the configured provider wrapped for call sharing.
// Close the result on shutdown; it owns the stream connection when there is one.
func (f *Factory) CreateProvider(ctx context.Context, cfg config.OracleConfig) (*SharedPriceProvider, error) {
	if strings.EqualFold(cfg.Provider, ProviderRouted) {
		routed, err := f.createRouted(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return NewSharedPriceProvider(routed), nil
	}

	source, err := f.createSource(ctx, cfg.Provider, cfg)
	if err != nil {
		return nil, err
	}
	return NewSharedPriceProvider(source), nil
}

func (f *Factory) createSource(ctx context.Context, name string, cfg config.OracleConfig) (interfaces.PriceProvider, error) {
	switch strings.ToLower(name) {
	case ProviderPyth:
		return NewPythRestClient(cfg), nil
	case ProviderPythStream:
		stream := NewPythStreamClient(cfg, f.clock)
		return NewFallbackProvider(ctx, stream, NewPythRestClient(cfg)), nil
	case ProviderJupiter:
		return NewJupiterClient(cfg, f.clock), nil
	case ProviderStatic:
		return NewStaticProvider(cfg.Static, f.clock)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, name)
	}
}

// createRouted builds each distinct source named by the routing table once
func (f *Factory) createRouted(ctx context.Context, cfg config.OracleConfig) (*RoutingProvider, error) {
	fallback := strings.ToLower(strings.TrimSpace(cfg.Routing.Default))
	routes := make(map[entities.Token]string, len(cfg.Routing.Tokens))
	names := []string{fallback}
	for token, source := range tokenMap(cfg.Routing.Tokens) {
		routes[token] = strings.ToLower(source)
		names = append(names, routes[token])
	}

	sources := make(map[string]interfaces.PriceProvider, len(names))
	for _, name := range names {
		if _, built := sources[name]; built {
			continue
		}
		source, err := f.createSource(ctx, name, cfg)
		if err != nil {
			_ = (&RoutingProvider{sources: sources}).Close()
			return nil, fmt.Errorf("oracle route: %w", err)
		}
		sources[name] = source
	}

	return NewRoutingProvider(sources, fallback, routes)
}
