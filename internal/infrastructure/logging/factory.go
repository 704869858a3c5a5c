package logging

import (
	"fmt"
)

// LoggerSet agrupa el logger base y los loggers de dominio que comparten su salida
type LoggerSet struct {
	Base     Logger
	HTTP     HTTPLogger
	Upstream UpstreamLogger
	Cache    CacheLogger
	Business BusinessLogger
	Security SecurityLogger
}

// NewLoggerSet crea el logger base y los loggers de dominio sobre él
func NewLoggerSet(config *LoggerConfig) (*LoggerSet, error) {
	base, err := NewStructuredLogger(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create base logger: %w", err)
	}
	return newLoggerSet(base), nil
}

func newLoggerSet(base Logger) *LoggerSet {
	return &LoggerSet{
		Base:     base,
		HTTP:     NewHTTPLogger(base),
		Upstream: NewUpstreamLogger(base),
		Cache:    NewCacheLogger(base),
		Business: NewBusinessLogger(base),
		Security: NewSecurityLogger(base),
	}
}
