package logging

import (
	"context"
)

// domainLogger etiqueta cada entrada con su dominio
type domainLogger struct {
	Logger
	domain string
}

func (dl domainLogger) emit(ctx context.Context, level LogLevel, message string, f fieldSet) {
	fields := f.set(FieldDomain, dl.domain).fields()
	switch level {
	case LevelDebug:
		dl.Logger.Debug(ctx, message, fields)
	case LevelInfo:
		dl.Logger.Info(ctx, message, fields)
	case LevelWarn:
		dl.Logger.Warn(ctx, message, fields)
	default:
		dl.Logger.Error(ctx, message, fields)
	}
}

func (dl domainLogger) emitError(ctx context.Context, level LogLevel, message string, err error, f fieldSet) {
	fields := f.set(FieldDomain, dl.domain).fields()
	if level == LevelWarn {
		dl.Logger.WarnWithError(ctx, message, err, fields)
		return
	}
	dl.Logger.ErrorWithError(ctx, message, err, fields)
}

func (dl domainLogger) Debug(ctx context.Context, message string, fields Fields) {
	dl.emit(ctx, LevelDebug, message, copyFields(fields))
}

func (dl domainLogger) Info(ctx context.Context, message string, fields Fields) {
	dl.emit(ctx, LevelInfo, message, copyFields(fields))
}

func (dl domainLogger) Warn(ctx context.Context, message string, fields Fields) {
	dl.emit(ctx, LevelWarn, message, copyFields(fields))
}

func (dl domainLogger) Error(ctx context.Context, message string, fields Fields) {
	dl.emit(ctx, LevelError, message, copyFields(fields))
}

func copyFields(fields Fields) fieldSet {
	f := newFieldSet()
	for k, v := range fields {
		f[k] = v
	}
	return f
}

// levelForStatus: 4xx es warning, 5xx es error
func levelForStatus(statusCode int) LogLevel {
	switch {
	case statusCode >= 500:
		return LevelError
	case statusCode >= 400:
		return LevelWarn
	default:
		return LevelInfo
	}
}

type httpLogger struct{ domainLogger }

// NewHTTPLogger crea el logger de requests entrantes
func NewHTTPLogger(base Logger) HTTPLogger {
	return httpLogger{domainLogger{Logger: base, domain: "http"}}
}

func (hl httpLogger) RequestReceived(ctx context.Context, method, path string) {
	f := newFieldSet().http(method, path, 0).set(FieldUserAgent, RequestFrom(ctx).UserAgent)
	hl.emit(ctx, LevelInfo, "HTTP request received", f)
}

func (hl httpLogger) RequestCompleted(ctx context.Context, method, path string, statusCode int, duration float64) {
	f := newFieldSet().http(method, path, statusCode).set(FieldDuration, duration)
	hl.emit(ctx, levelForStatus(statusCode), "HTTP request completed", f)
}

func (hl httpLogger) RequestFailed(ctx context.Context, method, path string, statusCode int, err error, duration float64) {
	f := newFieldSet().http(method, path, statusCode).set(FieldDuration, duration)
	if err == nil {
		hl.emit(ctx, LevelError, "HTTP request failed", f)
		return
	}
	hl.emitError(ctx, LevelError, "HTTP request failed", err, f)
}

type upstreamLogger struct{ domainLogger }

// NewUpstreamLogger crea el logger de oráculos y RPC
func NewUpstreamLogger(base Logger) UpstreamLogger {
	return upstreamLogger{domainLogger{Logger: base, domain: "upstream"}}
}

func (ul upstreamLogger) CallStarted(ctx context.Context, service, endpoint string) {
	ul.emit(ctx, LevelDebug, "Upstream call started", newFieldSet().upstream(service, endpoint, 0))
}

func (ul upstreamLogger) CallCompleted(ctx context.Context, service, endpoint string, statusCode int, duration float64) {
	f := newFieldSet().upstream(service, endpoint, statusCode).set(FieldDuration, duration)
	ul.emit(ctx, levelForStatus(statusCode), "Upstream call completed", f)
}

// CallFailed es un error de transporte, sin respuesta del upstream
func (ul upstreamLogger) CallFailed(ctx context.Context, service, endpoint string, err error, duration float64) {
	f := newFieldSet().upstream(service, endpoint, 0).set(FieldDuration, duration)
	ul.emitError(ctx, LevelError, "Upstream call failed", err, f)
}

type cacheLogger struct{ domainLogger }

// NewCacheLogger crea el logger del read-through cache
func NewCacheLogger(base Logger) CacheLogger {
	return cacheLogger{domainLogger{Logger: base, domain: "cache"}}
}

func (cl cacheLogger) Hit(ctx context.Context, key string, operation string) {
	f := newFieldSet().set(FieldCacheKey, key).set(FieldCacheOp, operation).set(FieldCacheHit, true)
	cl.emit(ctx, LevelDebug, "Cache hit", f)
}

func (cl cacheLogger) Miss(ctx context.Context, key string, operation string) {
	f := newFieldSet().set(FieldCacheKey, key).set(FieldCacheOp, operation).set(FieldCacheHit, false)
	cl.emit(ctx, LevelDebug, "Cache miss", f)
}

func (cl cacheLogger) Stored(ctx context.Context, key string, ttl float64) {
	f := newFieldSet().set(FieldCacheKey, key).set(FieldCacheOp, "set").set(FieldCacheTTL, ttl)
	cl.emit(ctx, LevelDebug, "Cache set", f)
}

func (cl cacheLogger) CacheError(ctx context.Context, operation, key string, err error) {
	f := newFieldSet().set(FieldCacheKey, key).set(FieldCacheOp, operation)
	cl.emitError(ctx, LevelError, "Cache operation failed", err, f)
}

func (cl cacheLogger) LockTimeout(ctx context.Context, key, tier string, waited float64) {
	f := newFieldSet().set(FieldCacheKey, key).set(FieldLockTier, tier).set(FieldDuration, waited)
	cl.emit(ctx, LevelWarn, "Timed out waiting for recompute lock", f)
}

// Recomputed se emite una vez por recomputación exitosa
func (cl cacheLogger) Recomputed(ctx context.Context, key string, duration float64) {
	f := newFieldSet().set(FieldCacheKey, key).set(FieldDuration, duration)
	cl.emit(ctx, LevelInfo, "Value recomputed", f)
}

type businessLogger struct{ domainLogger }

// NewBusinessLogger crea el logger de métricas y snapshots
func NewBusinessLogger(base Logger) BusinessLogger {
	return businessLogger{domainLogger{Logger: base, domain: "business"}}
}

func (bl businessLogger) MetricsComputed(ctx context.Context, cluster string, tvl string, loans int) {
	f := newFieldSet().set(FieldCluster, cluster).set(FieldTVL, tvl).set(FieldLoans, loans)
	bl.emit(ctx, LevelInfo, "Protocol metrics computed", f)
}

func (bl businessLogger) PriceQuoted(ctx context.Context, token, price, source string) {
	f := newFieldSet().set(FieldToken, token).set(FieldPrice, price).set(FieldSource, source)
	bl.emit(ctx, LevelDebug, "Oracle price quoted", f)
}

func (bl businessLogger) SnapshotCaptured(ctx context.Context, cluster string, duration float64) {
	f := newFieldSet().set(FieldCluster, cluster).set(FieldDuration, duration)
	bl.emit(ctx, LevelInfo, "Metrics snapshot captured", f)
}

func (bl businessLogger) SnapshotFailed(ctx context.Context, cluster string, err error) {
	bl.emitError(ctx, LevelError, "Metrics snapshot failed", err, newFieldSet().set(FieldCluster, cluster))
}

func (bl businessLogger) ValidationFailed(ctx context.Context, code string, reason string) {
	f := newFieldSet().set("code", code).set(FieldReason, reason)
	bl.emit(ctx, LevelWarn, "Input validation failed", f)
}

type securityLogger struct{ domainLogger }

// NewSecurityLogger crea el logger de requests rechazados
func NewSecurityLogger(base Logger) SecurityLogger {
	return securityLogger{domainLogger{Logger: base, domain: "security"}}
}

func (sl securityLogger) RateLimitExceeded(ctx context.Context, path string) {
	f := newFieldSet().set(FieldPath, path).set(FieldRateLimit, "exceeded")
	sl.emit(ctx, LevelWarn, "Rate limit exceeded", f)
}

func (sl securityLogger) InvalidRequest(ctx context.Context, reason string) {
	sl.emit(ctx, LevelWarn, "Invalid request received", newFieldSet().set(FieldReason, reason))
}
