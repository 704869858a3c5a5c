package logging

import (
	"context"
)

// Logger es el logger estructurado base. Los campos del request se toman del contexto.
type Logger interface {
	Debug(ctx context.Context, message string, fields Fields)
	Info(ctx context.Context, message string, fields Fields)
	Warn(ctx context.Context, message string, fields Fields)
	Error(ctx context.Context, message string, fields Fields)

	WarnWithError(ctx context.Context, message string, err error, fields Fields)
	ErrorWithError(ctx context.Context, message string, err error, fields Fields)

	SetLevel(level LogLevel)
	GetLevel() LogLevel
}

// HTTPLogger registra el ciclo de vida de los requests entrantes
type HTTPLogger interface {
	Logger

	RequestReceived(ctx context.Context, method, path string)
	RequestCompleted(ctx context.Context, method, path string, statusCode int, duration float64)
	RequestFailed(ctx context.Context, method, path string, statusCode int, err error, duration float64)
}

// UpstreamLogger registra llamadas a oráculos de precios y nodos RPC
type UpstreamLogger interface {
	Logger

	CallStarted(ctx context.Context, service, endpoint string)
	CallCompleted(ctx context.Context, service, endpoint string, statusCode int, duration float64)
	CallFailed(ctx context.Context, service, endpoint string, err error, duration float64)
}

// CacheLogger registra el read-through cache y sus locks
type CacheLogger interface {
	Logger

	Hit(ctx context.Context, key string, operation string)
	Miss(ctx context.Context, key string, operation string)
	Stored(ctx context.Context, key string, ttl float64)
	CacheError(ctx context.Context, operation, key string, err error)
	LockTimeout(ctx context.Context, key, tier string, waited float64)
	Recomputed(ctx context.Context, key string, duration float64)
}

// BusinessLogger registra métricas, precios y snapshots del protocolo
type BusinessLogger interface {
	Logger

	MetricsComputed(ctx context.Context, cluster string, tvl string, loans int)
	PriceQuoted(ctx context.Context, token, price, source string)
	SnapshotCaptured(ctx context.Context, cluster string, duration float64)
	SnapshotFailed(ctx context.Context, cluster string, err error)
	ValidationFailed(ctx context.Context, code string, reason string)
}

// SecurityLogger registra requests rechazados. La IP del cliente viene del contexto.
type SecurityLogger interface {
	Logger

	RateLimitExceeded(ctx context.Context, path string)
	InvalidRequest(ctx context.Context, reason string)
}
