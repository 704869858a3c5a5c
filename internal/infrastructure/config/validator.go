package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"lending-metrics-api/internal/domain/entities"

	"github.com/shopspring/decimal"
)

// Validator valida la configuración cargada
type Validator struct{}

// NewValidator crea una nueva instancia del validador
func NewValidator() *Validator {
	return &Validator{}
}

// Validate valida toda la configuración
func (v *Validator) Validate(config *Config) error {
	if err := v.validateServer(config.Server); err != nil {
		return fmt.Errorf("server config validation failed: %w", err)
	}

	if err := v.validateHTTP(config.HTTP); err != nil {
		return fmt.Errorf("http config validation failed: %w", err)
	}

	if err := v.validateCache(config.Cache); err != nil {
		return fmt.Errorf("cache config validation failed: %w", err)
	}

	if err := v.validateLock(config.Lock); err != nil {
		return fmt.Errorf("lock config validation failed: %w", err)
	}

	if err := v.validateOracle(config.Oracle); err != nil {
		return fmt.Errorf("oracle config validation failed: %w", err)
	}

	if err := v.validateChain(config.Chain); err != nil {
		return fmt.Errorf("chain config validation failed: %w", err)
	}

	if err := v.validateDatabase(config.Database); err != nil {
		return fmt.Errorf("database config validation failed: %w", err)
	}

	if err := v.validateSnapshot(config.Snapshot); err != nil {
		return fmt.Errorf("snapshot config validation failed: %w", err)
	}

	if err := v.validateProtocol(config.Protocol); err != nil {
		return fmt.Errorf("protocol config validation failed: %w", err)
	}

	if err := v.validateRateLimit(config.RateLimit); err != nil {
		return fmt.Errorf("rate limit config validation failed: %w", err)
	}

	if err := v.validateLogging(config.Logging); err != nil {
		return fmt.Errorf("logging config validation failed: %w", err)
	}

	return nil
}

// validateServer valida la configuración del servidor
func (v *Validator) validateServer(config ServerConfig) error {
	if config.Port <= 0 || config.Port > 65535 {
		return fmt.Errorf("invalid port: %d, must be between 1-65535", config.Port)
	}

	if config.ReadTimeout <= 0 || config.WriteTimeout <= 0 {
		return fmt.Errorf("read_timeout and write_timeout must be positive, got: %v/%v", config.ReadTimeout, config.WriteTimeout)
	}

	if config.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown_timeout must be positive, got: %v", config.ShutdownTimeout)
	}

	if config.ShutdownTimeout > 5*time.Minute {
		return fmt.Errorf("shutdown_timeout too long: %v, max 5 minutes", config.ShutdownTimeout)
	}

	return nil
}

// validateHTTP valida los headers de frescura
func (v *Validator) validateHTTP(config HTTPConfig) error {
	if config.StaleIfError < 0 {
		return fmt.Errorf("stale_if_error cannot be negative, got: %v", config.StaleIfError)
	}

	if config.FallbackMaxAge < 0 {
		return fmt.Errorf("fallback_max_age cannot be negative, got: %v", config.FallbackMaxAge)
	}

	return nil
}

// validateCache valida la configuración del cache
func (v *Validator) validateCache(config CacheConfig) error {
	validBackends := []string{"memory", "redis"}
	if !contains(validBackends, config.Backend) {
		return fmt.Errorf("invalid cache backend: %s, must be one of: %v", config.Backend, validBackends)
	}

	// Validar Redis config si se usa Redis
	if strings.EqualFold(config.Backend, "redis") {
		if err := v.validateRedis(config.Redis); err != nil {
			return err
		}
	}

	return nil
}

// validateRedis valida la configuración de Redis
func (v *Validator) validateRedis(config RedisConfig) error {
	if config.Addr == "" {
		return fmt.Errorf("redis addr cannot be empty")
	}

	// Validar formato de dirección
	if !strings.Contains(config.Addr, ":") {
		return fmt.Errorf("invalid redis addr format: %s, expected host:port", config.Addr)
	}

	if config.DB < 0 || config.DB > 15 {
		return fmt.Errorf("invalid redis DB: %d, must be between 0-15", config.DB)
	}

	if config.DialTimeout <= 0 {
		return fmt.Errorf("redis dial_timeout must be positive, got: %v", config.DialTimeout)
	}

	return nil
}

// validateLock valida los límites de espera de ambos niveles de lock
func (v *Validator) validateLock(config LockConfig) error {
	if config.OuterTimeout <= 0 {
		return fmt.Errorf("outer_timeout must be positive, got: %v", config.OuterTimeout)
	}

	// el waiter local hace cola detrás de la adquisición distribuida del holder
	if config.InnerTimeout <= config.OuterTimeout {
		return fmt.Errorf("inner_timeout (%v) must exceed outer_timeout (%v)", config.InnerTimeout, config.OuterTimeout)
	}

	if config.Lease <= 0 {
		return fmt.Errorf("lease must be positive, got: %v", config.Lease)
	}

	if config.RetryDelay <= 0 || config.RetryDelay >= config.OuterTimeout {
		return fmt.Errorf("retry_delay must be positive and below outer_timeout, got: %v", config.RetryDelay)
	}

	return nil
}

// validateOracle valida la configuración del proveedor de precios
func (v *Validator) validateOracle(config OracleConfig) error {
	priceSources := []string{"pyth", "pyth-stream", "jupiter", "static"}
	validProviders := append(priceSources, "routed")
	if !contains(validProviders, config.Provider) {
		return fmt.Errorf("invalid oracle provider: %s, must be one of: %v", config.Provider, validProviders)
	}

	if err := v.validateClientTimeouts("oracle", config.Timeout, config.RequestTimeout, config.MaxRetries); err != nil {
		return err
	}

	if !strings.EqualFold(config.Provider, "routed") {
		return v.validatePriceSource(config.Provider, config)
	}

	// cada fuente referenciada por el ruteo se valida una sola vez
	sources := []string{config.Routing.Default}
	for token, source := range config.Routing.Tokens {
		if source == "" {
			return fmt.Errorf("empty oracle route for token %s", token)
		}
		sources = append(sources, source)
	}
	validated := make(map[string]bool, len(sources))
	for _, source := range sources {
		source = strings.ToLower(source)
		if validated[source] {
			continue
		}
		if !contains(priceSources, source) {
			return fmt.Errorf("invalid oracle route source: %q, must be one of: %v", source, priceSources)
		}
		if err := v.validatePriceSource(source, config); err != nil {
			return err
		}
		validated[source] = true
	}

	return nil
}

// validatePriceSource checks the settings one concrete source needs
func (v *Validator) validatePriceSource(source string, config OracleConfig) error {
	switch strings.ToLower(source) {
	case "pyth", "pyth-stream":
		if err := v.validateURL(config.Pyth.RestURL, "pyth rest_url"); err != nil {
			return err
		}
		if len(config.Pyth.Feeds) == 0 {
			return fmt.Errorf("pyth feeds cannot be empty")
		}
		if strings.EqualFold(source, "pyth-stream") {
			if err := v.validateWebSocketURL(config.Pyth.WebSocketURL, "pyth websocket_url"); err != nil {
				return err
			}
			if config.MaxPriceAge <= 0 {
				return fmt.Errorf("max_price_age must be positive, got: %v", config.MaxPriceAge)
			}
		}
	case "jupiter":
		if err := v.validateURL(config.Jupiter.URL, "jupiter url"); err != nil {
			return err
		}
		if len(config.Jupiter.Mints) == 0 {
			return fmt.Errorf("jupiter mints cannot be empty")
		}
	case "static":
		for token, raw := range config.Static.Prices {
			price, err := decimal.NewFromString(raw)
			if err != nil || !price.IsPositive() {
				return fmt.Errorf("invalid static price for %s: %q", token, raw)
			}
		}
	}
	return nil
}

// validateChain valida la fuente del estado on-chain
func (v *Validator) validateChain(config ChainConfig) error {
	validProviders := []string{"http", "static"}
	if !contains(validProviders, config.Provider) {
		return fmt.Errorf("invalid chain provider: %s, must be one of: %v", config.Provider, validProviders)
	}

	if !strings.EqualFold(config.Provider, "http") {
		return nil
	}

	if err := v.validateClientTimeouts("chain", config.Timeout, config.RequestTimeout, config.MaxRetries); err != nil {
		return err
	}

	if len(config.Endpoints) == 0 {
		return fmt.Errorf("chain endpoints cannot be empty")
	}

	for cluster, endpoint := range config.Endpoints {
		if _, err := entities.ParseCluster(cluster); err != nil {
			return fmt.Errorf("chain endpoint: %w", err)
		}
		if err := v.validateURL(endpoint, "chain endpoint for "+cluster); err != nil {
			return err
		}
	}

	return nil
}

// validateClientTimeouts valida timeouts y reintentos de un cliente HTTP saliente
func (v *Validator) validateClientTimeouts(name string, timeout, requestTimeout time.Duration, maxRetries int) error {
	if timeout <= 0 {
		return fmt.Errorf("%s timeout must be positive, got: %v", name, timeout)
	}

	if requestTimeout <= 0 {
		return fmt.Errorf("%s request_timeout must be positive, got: %v", name, requestTimeout)
	}

	if requestTimeout >= timeout {
		return fmt.Errorf("%s request_timeout (%v) should be less than timeout (%v)", name, requestTimeout, timeout)
	}

	if maxRetries < 1 || maxRetries > 10 {
		return fmt.Errorf("%s max_retries must be between 1-10, got: %d", name, maxRetries)
	}

	return nil
}

// validateDatabase valida la base de datos de snapshots
func (v *Validator) validateDatabase(config DatabaseConfig) error {
	validDrivers := []string{"postgres", "sqlite"}
	if !contains(validDrivers, config.Driver) {
		return fmt.Errorf("invalid database driver: %s, must be one of: %v", config.Driver, validDrivers)
	}

	if config.DSN == "" {
		return fmt.Errorf("database dsn cannot be empty")
	}

	if config.MaxOpenConns < 1 {
		return fmt.Errorf("max_open_conns must be at least 1, got: %d", config.MaxOpenConns)
	}

	return nil
}

// validateProtocol valida los ajustes publicados por cluster
func (v *Validator) validateProtocol(config ProtocolConfig) error {
	for name, cluster := range config.Clusters {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("protocol cluster name cannot be empty")
		}
		if _, err := entities.ParseCluster(name); err != nil {
			return fmt.Errorf("protocol clusters: %w", err)
		}
		if cluster.BorrowingVersion < 1 {
			return fmt.Errorf("%s borrowing_version must be at least 1, got: %d", name, cluster.BorrowingVersion)
		}

		keys := map[string]string{
			"program_id":             cluster.ProgramID,
			"borrowing_market_state": cluster.Accounts.BorrowingMarketState,
			"staking_pool_state":     cluster.Accounts.StakingPoolState,
			"stability_pool_state":   cluster.Accounts.StabilityPoolState,
			"treasury_vault":         cluster.Accounts.TreasuryVault,
		}
		for token, mint := range cluster.Mints {
			keys["mint "+token] = mint
		}
		for field, key := range keys {
			// vacío significa no publicado
			if key != "" && !entities.IsPublicKey(key) {
				return fmt.Errorf("%s %s is not a public key: %q", name, field, key)
			}
		}
	}
	return nil
}

// validateSnapshot valida el job de snapshots
func (v *Validator) validateSnapshot(config SnapshotConfig) error {
	if len(config.Clusters) == 0 {
		return fmt.Errorf("snapshot clusters cannot be empty")
	}

	for _, cluster := range config.Clusters {
		if _, err := entities.ParseCluster(cluster); err != nil {
			return fmt.Errorf("snapshot cluster: %w", err)
		}
	}

	if config.Interval < time.Minute {
		return fmt.Errorf("snapshot interval too short: %v, min 1 minute", config.Interval)
	}

	if config.Timeout <= 0 || config.Timeout >= config.Interval {
		return fmt.Errorf("snapshot timeout must be positive and below interval, got: %v", config.Timeout)
	}

	return nil
}

// validateRateLimit valida la configuración de rate limiting
func (v *Validator) validateRateLimit(config RateLimitConfig) error {
	if config.Enabled {
		if config.Capacity <= 0 {
			return fmt.Errorf("rate_limit capacity must be positive when enabled, got: %d", config.Capacity)
		}

		if config.RefillRate <= 0 {
			return fmt.Errorf("rate_limit refill_rate must be positive when enabled, got: %d", config.RefillRate)
		}

		if config.Capacity > 10000 {
			return fmt.Errorf("rate_limit capacity too high: %d, max 10000", config.Capacity)
		}

		if config.RefillRate > 1000 {
			return fmt.Errorf("rate_limit refill_rate too high: %d, max 1000", config.RefillRate)
		}
	}

	return nil
}

// validateLogging valida la configuración de logging
func (v *Validator) validateLogging(config LoggingConfig) error {
	validLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLevels, config.Level) {
		return fmt.Errorf("invalid log level: %s, must be one of: %v", config.Level, validLevels)
	}

	validFormats := []string{"json", "text"}
	if !contains(validFormats, config.Format) {
		return fmt.Errorf("invalid log format: %s, must be one of: %v", config.Format, validFormats)
	}

	return nil
}

// validateURL valida que una URL sea válida para HTTP/HTTPS
func (v *Validator) validateURL(rawURL, fieldName string) error {
	if rawURL == "" {
		return fmt.Errorf("%s cannot be empty", fieldName)
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid %s: %s, error: %v", fieldName, rawURL, err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("invalid %s scheme: %s, must be http or https", fieldName, parsedURL.Scheme)
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("%s must have a host", fieldName)
	}

	return nil
}

// validateWebSocketURL valida que una URL sea válida para WebSocket
func (v *Validator) validateWebSocketURL(rawURL, fieldName string) error {
	if rawURL == "" {
		return fmt.Errorf("%s cannot be empty", fieldName)
	}

	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid %s: %s, error: %v", fieldName, rawURL, err)
	}

	if parsedURL.Scheme != "ws" && parsedURL.Scheme != "wss" {
		return fmt.Errorf("invalid %s scheme: %s, must be ws or wss", fieldName, parsedURL.Scheme)
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("%s must have a host", fieldName)
	}

	return nil
}

// contains verifica si un slice contiene un elemento
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if strings.EqualFold(s, item) {
			return true
		}
	}
	return false
}
