// Package httpclient performs JSON GET requests against upstream APIs with bounded,
// backed-off retries.
package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"lending-metrics-api/internal/infrastructure/logging"
	"lending-metrics-api/internal/infrastructure/metrics"

	"github.com/avast/retry-go/v4"
)

var (
	ErrRetryableRequest = errors.New("retryable upstream request failed")
	ErrNonRetryable     = errors.New("non-retryable upstream error")
)

const (
	DefaultTimeout = 10 * time.Second
	RequestTimeout = 3 * time.Second // Context timeout per request
	MaxRetries     = 3               // Maximum retry attempts
	BaseBackoff    = 100 * time.Millisecond
	MaxBackoff     = 2 * time.Second
)

// Client performs GET requests against one upstream service
type Client struct {
	service        string
	httpClient     *http.Client
	requestTimeout time.Duration
	maxRetries     uint
}

// New creates a client; non-positive values fall back to the package defaults
func New(service string, timeout, requestTimeout time.Duration, maxRetries int) Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if requestTimeout <= 0 {
		requestTimeout = RequestTimeout
	}
	if maxRetries <= 0 {
		maxRetries = MaxRetries
	}
	return Client{
		service:        service,
		httpClient:     &http.Client{Timeout: timeout},
		requestTimeout: requestTimeout,
		maxRetries:     uint(maxRetries),
	}
}

// GetJSON decodes the body of url into out, retrying transport errors, 429 and 5xx
func (c Client) GetJSON(ctx context.Context, endpoint, url string, out interface{}) error {
	return retry.Do(
		func() error {
			reqCtx, cancel := context.WithTimeout(ctx, c.requestTimeout)
			defer cancel()
			return c.doRequest(reqCtx, endpoint, url, out)
		},
		retry.Attempts(c.maxRetries),
		retry.Delay(BaseBackoff),
		retry.MaxDelay(MaxBackoff),
		retry.DelayType(retry.BackOffDelay),
		retry.RetryIf(isRetryableError),
		retry.LastErrorOnly(true),
		retry.Context(ctx),
		retry.OnRetry(func(n uint, err error) {
			metrics.RecordExternalAPIRetry(c.service, endpoint, int(n+1))
			logging.WarnWithError(ctx, "Upstream API retry attempt", err, logging.Fields{
				logging.FieldUpstream:         c.service,
				logging.FieldUpstreamEndpoint: endpoint,
				"attempt":                     n + 1,
				"max_attempts":                c.maxRetries,
			})
		}),
	)
}

func (c Client) doRequest(ctx context.Context, endpoint, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrNonRetryable, err)
	}
	req.Header.Set("Accept", "application/json")

	logging.Upstream().CallStarted(ctx, c.service, endpoint)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)
	durationMs := float64(duration.Nanoseconds()) / 1e6

	if err != nil {
		metrics.RecordExternalAPICall(c.service, endpoint, 0, duration.Seconds())
		logging.Upstream().CallFailed(ctx, c.service, endpoint, err, durationMs)
		return fmt.Errorf("%w: %v", ErrRetryableRequest, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	metrics.RecordExternalAPICall(c.service, endpoint, resp.StatusCode, duration.Seconds())
	logging.Upstream().CallCompleted(ctx, c.service, endpoint, resp.StatusCode, durationMs)

	switch {
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: HTTP %d (server error)", ErrRetryableRequest, resp.StatusCode)
	case resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%w: HTTP %d (rate limited by %s)", ErrRetryableRequest, resp.StatusCode, c.service)
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("%w: HTTP %d (client error)", ErrNonRetryable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrRetryableRequest, err)
	}
	return nil
}

// isRetryableError determines if an error should trigger a retry
func isRetryableError(err error) bool {
	return errors.Is(err, ErrRetryableRequest) || errors.Is(err, context.DeadlineExceeded)
}
