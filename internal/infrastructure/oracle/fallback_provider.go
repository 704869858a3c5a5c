package oracle

import (
	"context"
	"fmt"
	"time"

	"lending-metrics-api/internal/domain/entities"
	"lending-metrics-api/internal/domain/interfaces"
	"lending-metrics-api/internal/infrastructure/logging"
	"lending-metrics-api/internal/infrastructure/metrics"
)

// StreamProvider is a price provider fed by a push connection
type StreamProvider interface {
	interfaces.PriceProvider
	Connect() error
	Close() error
	IsConnected() bool
}

// FallbackProvider sirve precios del stream y completa con REST los tokens que
// falten o estén vencidos
type FallbackProvider struct {
	primary   StreamProvider
	secondary interfaces.PriceProvider
}

// NewFallbackProvider connects the stream in the background; until it delivers,
// every call is served by secondary.
func NewFallbackProvider(ctx context.Context, primary StreamProvider, secondary interfaces.PriceProvider) *FallbackProvider {
	f := &FallbackProvider{primary: primary, secondary: secondary}

	go func() {
		if err := primary.Connect(); err != nil {
			metrics.RecordWebSocketReconnectionAttempt(primary.Name())
			logging.Warn(ctx, "Failed to initialize price stream at startup", logging.Fields{
				logging.FieldSource: primary.Name(),
				"error":             err.Error(),
			})
			return
		}
		logging.Info(ctx, "Price stream connection established", logging.Fields{
			logging.FieldSource: primary.Name(),
		})
	}()

	return f
}

func (f *FallbackProvider) Name() string {
	return f.primary.Name()
}

// GetPrices asks the stream first and REST only for what the stream could not quote
func (f *FallbackProvider) GetPrices(ctx context.Context, tokens []entities.Token) (entities.PriceBook, error) {
	if len(tokens) == 0 {
		return entities.PriceBook{}, nil
	}

	book := make(entities.PriceBook, len(tokens))
	var missing []entities.Token
	for _, token := range tokens {
		quotes, err := f.primary.GetPrices(ctx, []entities.Token{token})
		if err != nil {
			missing = append(missing, token)
			continue
		}
		book[token] = quotes[token]
	}
	if len(missing) == 0 {
		return book, nil
	}

	reason := f.determineFallbackReason()
	for _, token := range missing {
		metrics.RecordFallbackActivation(reason, string(token))
	}
	logging.Info(ctx, "Stream quotes unavailable, falling back to REST", logging.Fields{
		"missing":         missing,
		"fallback_reason": reason,
	})

	start := time.Now()
	restBook, err := f.secondary.GetPrices(ctx, missing)
	if err != nil {
		logging.Error(ctx, "Both price stream and REST failed", logging.Fields{
			"missing":          missing,
			"rest_error":       err.Error(),
			"rest_duration_ms": time.Since(start).Milliseconds(),
		})
		return nil, fmt.Errorf("stream and REST fallback failed: %w", err)
	}

	for token, quote := range restBook {
		book[token] = quote
	}
	return complete(book, tokens)
}

// Close stops the stream
func (f *FallbackProvider) Close() error {
	return f.primary.Close()
}

func (f *FallbackProvider) determineFallbackReason() string {
	if !f.primary.IsConnected() {
		return "stream_disconnected"
	}
	return "stale_or_missing"
}
