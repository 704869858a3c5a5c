package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Loader handles configuration loading using Viper
type Loader struct {
	v     *viper.Viper
	paths []string
}

// NewLoader creates a new configuration loader instance
func NewLoader() *Loader {
	return NewLoaderWithPaths(
		"./configs",                // Configs directory in root
		"../configs",               // For when running from cmd/
		".",                        // Current directory
		"/etc/lending-metrics-api", // System (production)
	)
}

// NewLoaderWithPaths creates a loader searching config.yaml only in paths
func NewLoaderWithPaths(paths ...string) *Loader {
	return &Loader{
		v:     viper.New(),
		paths: paths,
	}
}

// Load loads configuration from files and environment variables
func (l *Loader) Load() (*Config, error) {
	// 1. Configure Viper
	if err := l.setupViper(); err != nil {
		return nil, fmt.Errorf("failed to setup viper: %w", err)
	}

	// 2. Read configuration
	if err := l.v.ReadInConfig(); err != nil {
		// If config.yaml doesn't exist, use only env vars and defaults
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// 3. Unmarshall a struct
	config := GetDefaultConfig()
	if err := l.v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 4. Override with list-valued env vars
	l.overrideWithEnvVars(config)

	return config, nil
}

// setupViper configures Viper to read files and env vars
func (l *Loader) setupViper() error {
	// Configure to read YAML files
	l.v.SetConfigName("config")
	l.v.SetConfigType("yaml")

	for _, path := range l.paths {
		l.v.AddConfigPath(path)
	}

	// Automatic environment variables
	l.v.AutomaticEnv()
	l.v.SetEnvPrefix("LENDING") // Prefix for env vars: LENDING_SERVER_PORT
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Explicit env vars mapping
	l.bindEnvVars()

	return nil
}

// bindEnvVars maps specific environment variables to configuration keys
func (l *Loader) bindEnvVars() {
	// Variables de entorno de despliegue sin prefijo
	envMappings := map[string]string{
		"server.port":            "PORT",
		"cache.backend":          "CACHE_BACKEND",
		"cache.redis.addr":       "REDIS_ADDR",
		"cache.redis.password":   "REDIS_PASSWORD",
		"cache.redis.db":         "REDIS_DB",
		"oracle.provider":        "ORACLE_PROVIDER",
		"chain.provider":         "CHAIN_PROVIDER",
		"chain.fixture_path":     "CHAIN_FIXTURE_PATH",
		"database.driver":        "DATABASE_DRIVER",
		"database.dsn":           "DATABASE_URL",
		"logging.level":          "LOG_LEVEL",
		"logging.format":         "LOG_FORMAT",
		"rate_limit.capacity":    "RATE_LIMIT_CAPACITY",
		"rate_limit.refill_rate": "RATE_LIMIT_REFILL_RATE",
		"rate_limit.enabled":     "RATE_LIMIT_ENABLED",
	}

	for configKey, envVar := range envMappings {
		_ = l.v.BindEnv(configKey, envVar)
	}
}

// overrideWithEnvVars maneja casos especiales de env vars
func (l *Loader) overrideWithEnvVars(config *Config) {
	// SNAPSHOT_CLUSTERS como string separado por comas
	if clustersEnv := os.Getenv("SNAPSHOT_CLUSTERS"); clustersEnv != "" {
		var clusters []string
		for _, cluster := range strings.Split(clustersEnv, ",") {
			cluster = strings.TrimSpace(strings.ToLower(cluster))
			if cluster != "" {
				clusters = append(clusters, cluster)
			}
		}

		if len(clusters) > 0 {
			config.Snapshot.Clusters = clusters
		}
	}

	if addSource := os.Getenv("LOG_ADD_SOURCE"); addSource == "true" || addSource == "1" {
		config.Logging.AddSource = true
	}
}

// LoadForEnvironment loads specific configuration for an environment
func (l *Loader) LoadForEnvironment(environment string) (*Config, error) {
	// Load base config first
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	// Try to load environment-specific override
	if environment != "" {
		envConfigFile := fmt.Sprintf("config.%s", environment)
		l.v.SetConfigName(envConfigFile)

		if err := l.v.MergeInConfig(); err != nil {
			// Not a critical error if environment file doesn't exist
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("failed to merge environment config: %w", err)
			}
		}

		// Re-unmarshal with merged configuration
		if err := l.v.Unmarshal(config); err != nil {
			return nil, fmt.Errorf("failed to unmarshal merged config: %w", err)
		}

		// Re-apply env var overrides
		l.overrideWithEnvVars(config)
	}

	return config, nil
}

// GetEnvironment determina el entorno actual desde ENV vars
func GetEnvironment() string {
	env := strings.ToLower(os.Getenv("ENV"))
	if env == "" {
		env = strings.ToLower(os.Getenv("ENVIRONMENT"))
	}
	if env == "" {
		env = "development" // Default
	}
	return env
}
