package config

import (
	"time"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	HTTP      HTTPConfig      `yaml:"http" mapstructure:"http"`
	Cache     CacheConfig     `yaml:"cache" mapstructure:"cache"`
	Lock      LockConfig      `yaml:"lock" mapstructure:"lock"`
	Oracle    OracleConfig    `yaml:"oracle" mapstructure:"oracle"`
	Chain     ChainConfig     `yaml:"chain" mapstructure:"chain"`
	Database  DatabaseConfig  `yaml:"database" mapstructure:"database"`
	Snapshot  SnapshotConfig  `yaml:"snapshot" mapstructure:"snapshot"`
	Protocol  ProtocolConfig  `yaml:"protocol" mapstructure:"protocol"`
	RateLimit RateLimitConfig `yaml:"rate_limit" mapstructure:"rate_limit"`
	Logging   LoggingConfig   `yaml:"logging" mapstructure:"logging"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" mapstructure:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

// HTTPConfig controls response freshness headers
type HTTPConfig struct {
	// StaleIfError is the grace window advertised to shared caches
	StaleIfError time.Duration `yaml:"stale_if_error" mapstructure:"stale_if_error"`

	// FallbackMaxAge is used for keys stored without expiry
	FallbackMaxAge time.Duration `yaml:"fallback_max_age" mapstructure:"fallback_max_age"`
}

// CacheConfig contains cache store configuration
type CacheConfig struct {
	Backend       string      `yaml:"backend" mapstructure:"backend"`
	AtomicPersist bool        `yaml:"atomic_persist" mapstructure:"atomic_persist"`
	Redis         RedisConfig `yaml:"redis" mapstructure:"redis"`
}

// RedisConfig contains Redis-specific configuration
type RedisConfig struct {
	Addr        string        `yaml:"addr" mapstructure:"addr"`
	Password    string        `yaml:"password" mapstructure:"password"`
	DB          int           `yaml:"db" mapstructure:"db"`
	DialTimeout time.Duration `yaml:"dial_timeout" mapstructure:"dial_timeout"`
}

// LockConfig bounds both lock tiers of the read-through cache
type LockConfig struct {
	InnerTimeout time.Duration `yaml:"inner_timeout" mapstructure:"inner_timeout"`
	OuterTimeout time.Duration `yaml:"outer_timeout" mapstructure:"outer_timeout"`
	Lease        time.Duration `yaml:"lease" mapstructure:"lease"`
	RetryDelay   time.Duration `yaml:"retry_delay" mapstructure:"retry_delay"`
}

// OracleConfig selects and configures the price provider
type OracleConfig struct {
	Provider       string        `yaml:"provider" mapstructure:"provider"`
	Timeout        time.Duration `yaml:"timeout" mapstructure:"timeout"`
	RequestTimeout time.Duration `yaml:"request_timeout" mapstructure:"request_timeout"`
	MaxRetries     int           `yaml:"max_retries" mapstructure:"max_retries"`

	// MaxPriceAge rejects streamed quotes older than this
	MaxPriceAge time.Duration `yaml:"max_price_age" mapstructure:"max_price_age"`

	Pyth    PythConfig    `yaml:"pyth" mapstructure:"pyth"`
	Jupiter JupiterConfig `yaml:"jupiter" mapstructure:"jupiter"`
	Static  StaticConfig  `yaml:"static" mapstructure:"static"`
	Routing RoutingConfig `yaml:"routing" mapstructure:"routing"`
}

// RoutingConfig picks a source per token when the provider is "routed".
// Tokens without an entry use Default.
type RoutingConfig struct {
	Default string            `yaml:"default" mapstructure:"default"`
	Tokens  map[string]string `yaml:"tokens" mapstructure:"tokens"`
}

// PythConfig contains Pyth Hermes endpoints and feed ids per token. Token keys are
// case-insensitive since viper lowercases map keys.
type PythConfig struct {
	RestURL      string            `yaml:"rest_url" mapstructure:"rest_url"`
	WebSocketURL string            `yaml:"websocket_url" mapstructure:"websocket_url"`
	Feeds        map[string]string `yaml:"feeds" mapstructure:"feeds"`
}

// JupiterConfig contains the Jupiter price API endpoint and token mints
type JupiterConfig struct {
	URL   string            `yaml:"url" mapstructure:"url"`
	Mints map[string]string `yaml:"mints" mapstructure:"mints"`
}

// StaticConfig holds fixed USD prices for development
type StaticConfig struct {
	Prices map[string]string `yaml:"prices" mapstructure:"prices"`
}

// ChainConfig selects where decoded protocol accounts are read from
type ChainConfig struct {
	Provider       string            `yaml:"provider" mapstructure:"provider"`
	Endpoints      map[string]string `yaml:"endpoints" mapstructure:"endpoints"`
	FixturePath    string            `yaml:"fixture_path" mapstructure:"fixture_path"`
	Timeout        time.Duration     `yaml:"timeout" mapstructure:"timeout"`
	RequestTimeout time.Duration     `yaml:"request_timeout" mapstructure:"request_timeout"`
	MaxRetries     int               `yaml:"max_retries" mapstructure:"max_retries"`
}

// DatabaseConfig contains the snapshot database connection
type DatabaseConfig struct {
	Driver          string        `yaml:"driver" mapstructure:"driver"`
	DSN             string        `yaml:"dsn" mapstructure:"dsn"`
	MaxOpenConns    int           `yaml:"max_open_conns" mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" mapstructure:"conn_max_lifetime"`
}

// SnapshotConfig drives the hourly metrics snapshot job
type SnapshotConfig struct {
	Clusters []string      `yaml:"clusters" mapstructure:"clusters"`
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`
	Timeout  time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// ProtocolConfig holds the settings published by /config, /maintenance-mode and
// /borrowing-version, keyed by cluster
type ProtocolConfig struct {
	Clusters map[string]ClusterProtocolConfig `yaml:"clusters" mapstructure:"clusters"`
}

// ClusterProtocolConfig describes the lending program on one cluster
type ClusterProtocolConfig struct {
	ProgramID        string                 `yaml:"program_id" mapstructure:"program_id"`
	Accounts         ProtocolAccountsConfig `yaml:"accounts" mapstructure:"accounts"`
	Mints            map[string]string      `yaml:"mints" mapstructure:"mints"`
	MaintenanceMode  bool                   `yaml:"maintenance_mode" mapstructure:"maintenance_mode"`
	BorrowingVersion int                    `yaml:"borrowing_version" mapstructure:"borrowing_version"`
}

// ProtocolAccountsConfig lists the program state accounts
type ProtocolAccountsConfig struct {
	BorrowingMarketState string `yaml:"borrowing_market_state" mapstructure:"borrowing_market_state"`
	StakingPoolState     string `yaml:"staking_pool_state" mapstructure:"staking_pool_state"`
	StabilityPoolState   string `yaml:"stability_pool_state" mapstructure:"stability_pool_state"`
	TreasuryVault        string `yaml:"treasury_vault" mapstructure:"treasury_vault"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled    bool `yaml:"enabled" mapstructure:"enabled"`
	Capacity   int  `yaml:"capacity" mapstructure:"capacity"`
	RefillRate int  `yaml:"refill_rate" mapstructure:"refill_rate"`
}

// LoggingConfig contains logging system configuration
type LoggingConfig struct {
	Level     string `yaml:"level" mapstructure:"level"`
	Format    string `yaml:"format" mapstructure:"format"`
	AddSource bool   `yaml:"add_source" mapstructure:"add_source"`
}

// GetDefaultConfig returns the default configuration
func GetDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8888,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		HTTP: HTTPConfig{
			StaleIfError:   300 * time.Second,
			FallbackMaxAge: 60 * time.Second,
		},
		Cache: CacheConfig{
			Backend:       "memory",
			AtomicPersist: false,
			Redis: RedisConfig{
				Addr:        "localhost:6379",
				Password:    "",
				DB:          0,
				DialTimeout: 5 * time.Second,
			},
		},
		Lock: LockConfig{
			InnerTimeout: 15 * time.Second,
			OuterTimeout: 10 * time.Second,
			Lease:        30 * time.Second,
			RetryDelay:   50 * time.Millisecond,
		},
		Oracle: OracleConfig{
			Provider:       "static",
			Timeout:        10 * time.Second,
			RequestTimeout: 3 * time.Second,
			MaxRetries:     3,
			MaxPriceAge:    60 * time.Second,
			Pyth: PythConfig{
				RestURL:      "https://hermes.pyth.network",
				WebSocketURL: "wss://hermes.pyth.network/ws",
				Feeds: map[string]string{
					"sol":  "ef0d8b6fda2ceba41da15d4095d1da392a0d2f8ed0c6c7bc0f4cfac8c280b56d",
					"btc":  "e62df6c8b4a85fe1a67db44dc12de5db330f7ac66b72dc658afedf0f4a415b43",
					"eth":  "ff61491a931112ddf1bd8147cd1b641375f79f5825126d665480874634fd0ace",
					"ray":  "91568baa8beb53db23eb3fb7f22c6e8bd303d103919e19733f2bb642d3e7987a",
					"msol": "c2289a6a43d2ce91c6f55caec370f4acc38a2ed477f58813334c6d03749ff2a4",
				},
			},
			Jupiter: JupiterConfig{
				URL: "https://api.jup.ag/price/v2",
				Mints: map[string]string{
					"sol":  "So11111111111111111111111111111111111111112",
					"msol": "mSoLzYCxHdYgdzU16g5QSh3i5K3z3KZK7ytfqcJm7So",
					"ray":  "4k3Dyjzvzp8eMZWUXbBCjEvwSkkk59S5iCNLY3QrkX6R",
					"srm":  "SRMuApVNdxXokk5GT7XD5cUUgXMBCoAz2LHeuAoKWRt",
					"usdh": "USDH1SM1ojwWUga67PGrgFWUHibbjqMvuMaDkRJTgkX",
					"hbb":  "HBB111SCo9jkCejsZfz8Ec8nH7T6THF8KEKSnvwT6XK",
				},
			},
			Static: StaticConfig{
				Prices: map[string]string{
					"sol":  "40",
					"eth":  "1800",
					"btc":  "30000",
					"srm":  "1",
					"ray":  "1",
					"ftt":  "25",
					"msol": "42",
					"usdh": "1",
					"hbb":  "0.5",
				},
			},
			Routing: RoutingConfig{
				Default: "pyth",
				Tokens: map[string]string{
					"hbb":  "jupiter",
					"usdh": "jupiter",
					"srm":  "jupiter",
					// no live FTT market left
					"ftt": "static",
				},
			},
		},
		Chain: ChainConfig{
			Provider: "static",
			Endpoints: map[string]string{
				"mainnet-beta": "http://localhost:8899/state/mainnet-beta",
				"devnet":       "http://localhost:8899/state/devnet",
			},
			FixturePath:    "",
			Timeout:        20 * time.Second,
			RequestTimeout: 10 * time.Second,
			MaxRetries:     3,
		},
		Database: DatabaseConfig{
			Driver:          "sqlite",
			DSN:             "file:lending-metrics.db",
			MaxOpenConns:    10,
			ConnMaxLifetime: 30 * time.Minute,
		},
		Snapshot: SnapshotConfig{
			Clusters: []string{"mainnet-beta", "devnet"},
			Interval: time.Hour,
			Timeout:  2 * time.Minute,
		},
		Protocol: ProtocolConfig{
			Clusters: map[string]ClusterProtocolConfig{
				"mainnet-beta": {
					Mints: map[string]string{
						"hbb":  "HBB111SCo9jkCejsZfz8Ec8nH7T6THF8KEKSnvwT6XK",
						"usdh": "USDH1SM1ojwWUga67PGrgFWUHibbjqMvuMaDkRJTgkX",
					},
					BorrowingVersion: 1,
				},
				"devnet": {
					BorrowingVersion: 1,
				},
			},
		},
		RateLimit: RateLimitConfig{
			Enabled:    true,
			Capacity:   100,
			RefillRate: 10,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}
