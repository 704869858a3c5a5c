package logging

import (
	"errors"
	"fmt"
)

// Fields son los campos estructurados de una entrada
type Fields map[string]interface{}

// LogLevel es el nivel mínimo que se escribe
type LogLevel string

const (
	LevelDebug LogLevel = "DEBUG"
	LevelInfo  LogLevel = "INFO"
	LevelWarn  LogLevel = "WARN"
	LevelError LogLevel = "ERROR"
)

// Claves comunes a todas las entradas
const (
	FieldTimestamp = "timestamp"
	FieldMessage   = "message"
	FieldService   = "service"
	FieldVersion   = "version"
	FieldDomain    = "domain"
	FieldError     = "error"
	FieldErrorType = "error_type"
	FieldDuration  = "duration_ms"
)

// Request HTTP entrante, ver RequestInfo
const (
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldUserAgent  = "user_agent"
	FieldMethod     = "http_method"
	FieldPath       = "http_path"
	FieldStatusCode = "http_status_code"
)

// Llamadas salientes a oráculos y RPC
const (
	FieldUpstream         = "upstream"
	FieldUpstreamEndpoint = "upstream_endpoint"
	FieldUpstreamStatus   = "upstream_status_code"
)

// Read-through cache y locks de recomputación
const (
	FieldCacheKey  = "cache_key"
	FieldCacheHit  = "cache_hit"
	FieldCacheOp   = "cache_operation"
	FieldCacheTTL  = "cache_ttl_seconds"
	FieldLockTier  = "lock_tier"
	FieldRateLimit = "rate_limit"
)

// Protocolo de préstamos
const (
	FieldCluster = "cluster"
	FieldToken   = "token"
	FieldPrice   = "price"
	FieldSource  = "source"
	FieldTVL     = "tvl"
	FieldLoans   = "loans"
	FieldReason  = "reason"
)

// fieldSet arma los campos de los loggers de dominio sin mutar los del llamador
type fieldSet Fields

func newFieldSet() fieldSet {
	return make(fieldSet, 6)
}

func (f fieldSet) set(key string, value interface{}) fieldSet {
	if s, ok := value.(string); ok && s == "" {
		return f
	}
	f[key] = value
	return f
}

func (f fieldSet) http(method, path string, statusCode int) fieldSet {
	f[FieldMethod] = method
	f[FieldPath] = path
	if statusCode != 0 {
		f[FieldStatusCode] = statusCode
	}
	return f
}

func (f fieldSet) upstream(service, endpoint string, statusCode int) fieldSet {
	f[FieldUpstream] = service
	f[FieldUpstreamEndpoint] = endpoint
	if statusCode != 0 {
		f[FieldUpstreamStatus] = statusCode
	}
	return f
}

func (f fieldSet) fields() Fields {
	return Fields(f)
}

// getErrorType extrae el tipo concreto del error más interno
func getErrorType(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return fmt.Sprintf("%T", err)
		}
		err = next
	}
}
