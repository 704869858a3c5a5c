package chain

import (
	"fmt"
	"strings"

	"lending-metrics-api/internal/domain/interfaces"
	"lending-metrics-api/internal/infrastructure/config"

	"github.com/jonboulle/clockwork"
)

const (
	ProviderHTTP   = "http"
	ProviderStatic = "static"
)

// NewClient builds the configured chain client. The static provider serves the
// fixture when one is configured and the sample state otherwise.
func NewClient(cfg config.ChainConfig, clock clockwork.Clock) (interfaces.ChainClient, error) {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	switch strings.ToLower(cfg.Provider) {
	case ProviderHTTP:
		return NewHTTPClient(cfg, clock)
	case ProviderStatic:
		if cfg.FixturePath != "" {
			return LoadFixture(cfg.FixturePath)
		}
		return NewStaticClient(SampleStates(clock.Now())), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, cfg.Provider)
	}
}
