package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"lending-metrics-api/internal/infrastructure/config"
)

// LogFormat es el formato de salida: json en despliegues, text en local
type LogFormat string

const (
	FormatJSON LogFormat = "json"
	FormatText LogFormat = "text"
)

// LoggerConfig configura el logger base de un binario
type LoggerConfig struct {
	Level       LogLevel
	Format      LogFormat
	Output      io.Writer
	Service     string
	Version     string
	Environment string
	AddSource   bool
}

// DefaultConfig escribe JSON a stdout en nivel INFO
func DefaultConfig() *LoggerConfig {
	return &LoggerConfig{
		Level:       LevelInfo,
		Format:      FormatJSON,
		Output:      os.Stdout,
		Service:     "lending-metrics-api",
		Environment: "development",
	}
}

// ForService arma la configuración de un binario a partir de la sección logging
func ForService(service, version, environment string, settings config.LoggingConfig) *LoggerConfig {
	c := DefaultConfig()
	c.Service = service
	c.Version = version
	c.Environment = environment
	c.Level = parseLevel(settings.Level)
	c.Format = parseFormat(settings.Format)
	c.AddSource = settings.AddSource
	return c
}

func (c *LoggerConfig) WithLevel(level LogLevel) *LoggerConfig {
	c.Level = level
	return c
}

func (c *LoggerConfig) WithFormat(format LogFormat) *LoggerConfig {
	c.Format = format
	return c
}

func (c *LoggerConfig) WithOutput(output io.Writer) *LoggerConfig {
	c.Output = output
	return c
}

// Validate reporta el primer campo inválido como *ConfigError
func (c *LoggerConfig) Validate() error {
	switch {
	case !c.Level.valid():
		return &ConfigError{Field: "level", Value: string(c.Level), Message: "invalid log level"}
	case c.Format != FormatJSON && c.Format != FormatText:
		return &ConfigError{Field: "format", Value: string(c.Format), Message: "invalid log format"}
	case c.Output == nil:
		return &ConfigError{Field: "output", Value: "nil", Message: "output writer cannot be nil"}
	case c.Service == "":
		return &ConfigError{Field: "service", Message: "service name cannot be empty"}
	}
	return nil
}

// ConfigError identifica el campo rechazado por Validate
type ConfigError struct {
	Field   string
	Value   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("logging config %s=%q: %s", e.Field, e.Value, e.Message)
}

func (level LogLevel) valid() bool {
	switch level {
	case LevelDebug, LevelInfo, LevelWarn, LevelError:
		return true
	}
	return false
}

// parseLevel cae en INFO si el nivel no se reconoce
func parseLevel(level string) LogLevel {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return LevelDebug
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	default:
		return LevelInfo
	}
}

// parseFormat cae en JSON si el formato no se reconoce
func parseFormat(format string) LogFormat {
	if strings.EqualFold(strings.TrimSpace(format), string(FormatText)) {
		return FormatText
	}
	return FormatJSON
}
