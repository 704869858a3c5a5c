package logging

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// StructuredLogger implementa la interfaz Logger sobre logrus
type StructuredLogger struct {
	mu     sync.RWMutex
	config *LoggerConfig
	logger *logrus.Logger
}

// NewStructuredLogger crea un nuevo logger estructurado
func NewStructuredLogger(config *LoggerConfig) (*StructuredLogger, error) {
	if config == nil {
		config = DefaultConfig()
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid logger config: %w", err)
	}

	return &StructuredLogger{
		config: config,
		logger: newLogrus(config),
	}, nil
}

func newLogrus(config *LoggerConfig) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(config.Output)
	l.SetLevel(config.Level.logrusLevel())

	switch config.Format {
	case FormatText:
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.RFC3339,
			DisableColors:   true,
		})
	default:
		l.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339,
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyTime: FieldTimestamp,
				logrus.FieldKeyMsg:  FieldMessage,
			},
		})
	}
	return l
}

func (level LogLevel) logrusLevel() logrus.Level {
	switch level {
	case LevelDebug:
		return logrus.DebugLevel
	case LevelWarn:
		return logrus.WarnLevel
	case LevelError:
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

// log escribe una entrada con los campos del servicio y del contexto
func (sl *StructuredLogger) log(ctx context.Context, level LogLevel, message string, fields Fields) {
	lvl := level.logrusLevel()
	if !sl.logger.IsLevelEnabled(lvl) {
		return
	}

	sl.logger.WithFields(sl.entryFields(ctx, fields)).Log(lvl, message)
}

func (sl *StructuredLogger) entryFields(ctx context.Context, fields Fields) logrus.Fields {
	sl.mu.RLock()
	config := sl.config
	sl.mu.RUnlock()

	entry := make(logrus.Fields, len(fields)+5)
	for k, v := range fields {
		entry[k] = v
	}

	entry[FieldService] = config.Service
	if config.Version != "" {
		entry[FieldVersion] = config.Version
	}
	if config.Environment != "" {
		entry["environment"] = config.Environment
	}
	request := RequestFrom(ctx)
	if request.ID != "" {
		entry[FieldRequestID] = request.ID
	}
	if request.ClientIP != "" {
		entry[FieldClientIP] = request.ClientIP
	}

	// duración del request si el contexto trae tiempo de inicio
	if _, ok := entry[FieldDuration]; !ok && !request.Start.IsZero() {
		entry[FieldDuration] = float64(time.Since(request.Start).Nanoseconds()) / 1e6
	}

	if config.AddSource {
		if source := getSource(); source != "" {
			entry["source"] = source
		}
	}

	return entry
}

// getSource obtiene la función que llamó al logger, saltando los frames propios del paquete
func getSource() string {
	pcs := make([]uintptr, 16)
	n := runtime.Callers(3, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	for {
		frame, more := frames.Next()
		if !strings.Contains(frame.Function, "/infrastructure/logging.") {
			name := frame.Function
			if idx := strings.LastIndex(name, "/"); idx != -1 {
				name = name[idx+1:]
			}
			return name
		}
		if !more {
			return ""
		}
	}
}

// Debug logs a debug message
func (sl *StructuredLogger) Debug(ctx context.Context, message string, fields Fields) {
	sl.log(ctx, LevelDebug, message, fields)
}

// Info logs an info message
func (sl *StructuredLogger) Info(ctx context.Context, message string, fields Fields) {
	sl.log(ctx, LevelInfo, message, fields)
}

// Warn logs a warning message
func (sl *StructuredLogger) Warn(ctx context.Context, message string, fields Fields) {
	sl.log(ctx, LevelWarn, message, fields)
}

// Error logs an error message
func (sl *StructuredLogger) Error(ctx context.Context, message string, fields Fields) {
	sl.log(ctx, LevelError, message, fields)
}

// WarnWithError logs a warning message with error details
func (sl *StructuredLogger) WarnWithError(ctx context.Context, message string, err error, fields Fields) {
	sl.log(ctx, LevelWarn, message, withError(fields, err))
}

// ErrorWithError logs an error message with error details
func (sl *StructuredLogger) ErrorWithError(ctx context.Context, message string, err error, fields Fields) {
	sl.log(ctx, LevelError, message, withError(fields, err))
}

// withError copia los campos agregando la información del error
func withError(fields Fields, err error) Fields {
	if err == nil {
		return fields
	}

	enriched := make(Fields, len(fields)+2)
	for k, v := range fields {
		enriched[k] = v
	}
	enriched[FieldError] = err.Error()
	enriched[FieldErrorType] = getErrorType(err)
	return enriched
}

// SetLevel establece el nivel de logging
func (sl *StructuredLogger) SetLevel(level LogLevel) {
	sl.mu.Lock()
	defer sl.mu.Unlock()
	sl.config.Level = level
	sl.logger.SetLevel(level.logrusLevel())
}

// GetLevel retorna el nivel actual de logging
func (sl *StructuredLogger) GetLevel() LogLevel {
	sl.mu.RLock()
	defer sl.mu.RUnlock()
	return sl.config.Level
}
