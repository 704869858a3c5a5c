package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"lending-metrics-api/internal/infrastructure/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferedLogger(t *testing.T, level LogLevel) (*StructuredLogger, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	logger, err := NewStructuredLogger(ForService("lending-metrics-api", "test", "testing", config.LoggingConfig{}).
		WithLevel(level).
		WithOutput(buf))
	require.NoError(t, err)
	return logger, buf
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var entries []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		entry := map[string]interface{}{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry), line)
		entries = append(entries, entry)
	}
	return entries
}

func TestStructuredLogger_JSONEntry(t *testing.T) {
	logger, buf := newBufferedLogger(t, LevelInfo)
	ctx := WithRequest(context.Background(), RequestInfo{ID: "req-123", ClientIP: "203.0.113.7"})

	logger.Info(ctx, "metrics served", Fields{FieldCluster: "mainnet-beta"})

	entries := decodeLines(t, buf)
	require.Len(t, entries, 1)
	entry := entries[0]
	assert.Equal(t, "metrics served", entry[FieldMessage])
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "req-123", entry[FieldRequestID])
	assert.Equal(t, "203.0.113.7", entry[FieldClientIP])
	assert.Equal(t, "lending-metrics-api", entry[FieldService])
	assert.Equal(t, "test", entry[FieldVersion])
	assert.Equal(t, "mainnet-beta", entry[FieldCluster])
	assert.Contains(t, entry, FieldTimestamp)
}

func TestStructuredLogger_LevelFiltering(t *testing.T) {
	logger, buf := newBufferedLogger(t, LevelWarn)
	ctx := context.Background()

	logger.Debug(ctx, "debug", nil)
	logger.Info(ctx, "info", nil)
	logger.Warn(ctx, "warn", nil)
	logger.Error(ctx, "error", nil)

	entries := decodeLines(t, buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "warn", entries[0][FieldMessage])
	assert.Equal(t, "error", entries[1][FieldMessage])

	buf.Reset()
	logger.SetLevel(LevelDebug)
	assert.Equal(t, LevelDebug, logger.GetLevel())
	logger.Debug(ctx, "debug", nil)
	assert.Len(t, decodeLines(t, buf), 1)
}

type stubError struct{}

func (stubError) Error() string { return "boom" }

func TestStructuredLogger_WithError(t *testing.T) {
	logger, buf := newBufferedLogger(t, LevelInfo)
	fields := Fields{"key": "value"}

	logger.ErrorWithError(context.Background(), "failed", fmt.Errorf("wrapped: %w", stubError{}), fields)

	entries := decodeLines(t, buf)
	require.Len(t, entries, 1)
	assert.Equal(t, "wrapped: boom", entries[0][FieldError])
	assert.Equal(t, "logging.stubError", entries[0][FieldErrorType])
	assert.Equal(t, "value", entries[0]["key"])
	assert.NotContains(t, fields, FieldError, "caller fields must not be mutated")
}

func TestStructuredLogger_TextFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	logger, err := NewStructuredLogger(DefaultConfig().WithFormat(FormatText).WithOutput(buf))
	require.NoError(t, err)

	logger.Info(context.Background(), "plain text", Fields{"cluster": "devnet"})

	out := buf.String()
	assert.Contains(t, out, `msg="plain text"`)
	assert.Contains(t, out, "cluster=devnet")
}

func TestNewStructuredLogger_InvalidConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *LoggerConfig)
		field  string
	}{
		{"level", func(c *LoggerConfig) { c.Level = "TRACE" }, "level"},
		{"format", func(c *LoggerConfig) { c.Format = "xml" }, "format"},
		{"output", func(c *LoggerConfig) { c.Output = nil }, "output"},
		{"service", func(c *LoggerConfig) { c.Service = "" }, "service"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			tt.mutate(config)

			_, err := NewStructuredLogger(config)
			require.Error(t, err)
			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestForService(t *testing.T) {
	tests := []struct {
		settings config.LoggingConfig
		level    LogLevel
		format   LogFormat
	}{
		{config.LoggingConfig{Level: "debug", Format: "TEXT"}, LevelDebug, FormatText},
		{config.LoggingConfig{Level: " Warning ", Format: "json"}, LevelWarn, FormatJSON},
		{config.LoggingConfig{Level: "ERROR"}, LevelError, FormatJSON},
		{config.LoggingConfig{Level: "verbose", Format: "yaml"}, LevelInfo, FormatJSON},
	}

	for _, tt := range tests {
		t.Run(tt.settings.Level, func(t *testing.T) {
			c := ForService("lending-metrics-snapshot", "1.0.0", "production", tt.settings)
			assert.Equal(t, tt.level, c.Level)
			assert.Equal(t, tt.format, c.Format)
			assert.Equal(t, "lending-metrics-snapshot", c.Service)
			assert.NoError(t, c.Validate())
		})
	}
}

func TestCacheLogger_Events(t *testing.T) {
	base, buf := newBufferedLogger(t, LevelDebug)
	cache := NewCacheLogger(base)
	ctx := context.Background()

	cache.Hit(ctx, "metrics:mainnet-beta", "get")
	cache.LockTimeout(ctx, "metrics:mainnet-beta", "distributed", 10000)
	cache.Recomputed(ctx, "metrics:mainnet-beta", 42)

	entries := decodeLines(t, buf)
	require.Len(t, entries, 3)

	assert.Equal(t, "cache", entries[0][FieldDomain])
	assert.Equal(t, true, entries[0][FieldCacheHit])

	assert.Equal(t, "warning", entries[1]["level"])
	assert.Equal(t, "distributed", entries[1][FieldLockTier])
	assert.Equal(t, float64(10000), entries[1][FieldDuration])

	assert.Equal(t, "Value recomputed", entries[2][FieldMessage])
	assert.Equal(t, float64(42), entries[2][FieldDuration])
}

func TestHTTPLogger_LevelByStatus(t *testing.T) {
	base, buf := newBufferedLogger(t, LevelDebug)
	httpLogger := NewHTTPLogger(base)
	ctx := context.Background()

	httpLogger.RequestCompleted(ctx, "GET", "/api/v1/metrics", 200, 1)
	httpLogger.RequestCompleted(ctx, "GET", "/api/v1/loans/x", 400, 1)
	httpLogger.RequestCompleted(ctx, "GET", "/api/v1/metrics", 503, 1)

	entries := decodeLines(t, buf)
	require.Len(t, entries, 3)
	assert.Equal(t, "info", entries[0]["level"])
	assert.Equal(t, "warning", entries[1]["level"])
	assert.Equal(t, "error", entries[2]["level"])
}

func TestHTTPLogger_RequestReceivedUsesContext(t *testing.T) {
	base, buf := newBufferedLogger(t, LevelInfo)
	ctx := WithRequest(context.Background(), RequestInfo{ID: "req-9", ClientIP: "198.51.100.4", UserAgent: "curl/8.4.0"})

	NewHTTPLogger(base).RequestReceived(ctx, "GET", "/api/v1/staking")
	NewSecurityLogger(base).RateLimitExceeded(ctx, "/api/v1/staking")

	entries := decodeLines(t, buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "curl/8.4.0", entries[0][FieldUserAgent])
	assert.Equal(t, "/api/v1/staking", entries[0][FieldPath])
	assert.NotContains(t, entries[0], FieldStatusCode)

	assert.Equal(t, "security", entries[1][FieldDomain])
	assert.Equal(t, "198.51.100.4", entries[1][FieldClientIP])
	assert.Equal(t, "exceeded", entries[1][FieldRateLimit])
}

func TestUpstreamLogger_Calls(t *testing.T) {
	base, buf := newBufferedLogger(t, LevelDebug)
	upstream := NewUpstreamLogger(base)
	ctx := context.Background()

	upstream.CallStarted(ctx, "jupiter", "price")
	upstream.CallCompleted(ctx, "jupiter", "price", 429, 12)
	upstream.CallFailed(ctx, "pyth", "latest_price_feeds", fmt.Errorf("dial: %w", stubError{}), 30)

	entries := decodeLines(t, buf)
	require.Len(t, entries, 3)
	assert.Equal(t, "debug", entries[0]["level"])
	assert.NotContains(t, entries[0], FieldUpstreamStatus)

	assert.Equal(t, "warning", entries[1]["level"])
	assert.Equal(t, float64(429), entries[1][FieldUpstreamStatus])

	assert.Equal(t, "error", entries[2]["level"])
	assert.Equal(t, "pyth", entries[2][FieldUpstream])
	assert.Equal(t, "upstream", entries[2][FieldDomain])
	assert.Equal(t, "logging.stubError", entries[2][FieldErrorType])
}

func TestResolveRequestID(t *testing.T) {
	assert.Equal(t, "abc-123", ResolveRequestID("abc-123"))
	assert.Len(t, ResolveRequestID(""), 36)
	assert.Len(t, ResolveRequestID("bad id"), 36)
	assert.Len(t, ResolveRequestID(strings.Repeat("a", 200)), 36)
	assert.NotEqual(t, GenerateRequestID(), GenerateRequestID())
}
