package logging

import (
	"context"
	"fmt"
	"sync"
)

var (
	globalMu      sync.RWMutex
	globalLoggers *LoggerSet
)

// InitializeGlobalLoggers reemplaza los loggers del proceso. Se llama una vez desde main.
func InitializeGlobalLoggers(config *LoggerConfig) error {
	set, err := NewLoggerSet(config)
	if err != nil {
		return fmt.Errorf("failed to initialize global loggers: %w", err)
	}

	globalMu.Lock()
	globalLoggers = set
	globalMu.Unlock()
	return nil
}

// loggers retorna el set global, con la configuración por defecto si main no
// lo inicializó (tests)
func loggers() *LoggerSet {
	globalMu.RLock()
	set := globalLoggers
	globalMu.RUnlock()
	if set != nil {
		return set
	}

	globalMu.Lock()
	defer globalMu.Unlock()
	if globalLoggers == nil {
		set, err := NewLoggerSet(DefaultConfig())
		if err != nil {
			panic(err)
		}
		globalLoggers = set
	}
	return globalLoggers
}

func Debug(ctx context.Context, message string, fields Fields) {
	loggers().Base.Debug(ctx, message, fields)
}

func Info(ctx context.Context, message string, fields Fields) {
	loggers().Base.Info(ctx, message, fields)
}

func Warn(ctx context.Context, message string, fields Fields) {
	loggers().Base.Warn(ctx, message, fields)
}

func Error(ctx context.Context, message string, fields Fields) {
	loggers().Base.Error(ctx, message, fields)
}

func WarnWithError(ctx context.Context, message string, err error, fields Fields) {
	loggers().Base.WarnWithError(ctx, message, err, fields)
}

func ErrorWithError(ctx context.Context, message string, err error, fields Fields) {
	loggers().Base.ErrorWithError(ctx, message, err, fields)
}

// HTTP registra requests entrantes
func HTTP() HTTPLogger { return loggers().HTTP }

// Upstream registra llamadas a oráculos y RPC
func Upstream() UpstreamLogger { return loggers().Upstream }

// Cache registra el read-through cache
func Cache() CacheLogger { return loggers().Cache }

// Business registra métricas y snapshots
func Business() BusinessLogger { return loggers().Business }

// Security registra requests rechazados
func Security() SecurityLogger { return loggers().Security }
