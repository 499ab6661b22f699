package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	Store        StoreConfig
	DB           DBConfig
	Availability AvailabilityConfig
	Redis        RedisConfig
	Pricing      PricingConfig
}

// Load reads the configuration from PRICING_* environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env             string        `envconfig:"PRICING_APP_ENV" default:"dev"`
	HTTPPort        string        `envconfig:"PRICING_HTTP_PORT" default:"8080"`
	GRPCPort        string        `envconfig:"PRICING_GRPC_PORT" default:"9090"`
	LogLevel        string        `envconfig:"PRICING_LOG_LEVEL" default:"info"`
	LogFormat       string        `envconfig:"PRICING_LOG_FORMAT" default:"json"`
	ShutdownTimeout time.Duration `envconfig:"PRICING_SHUTDOWN_TIMEOUT" default:"15s"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type StoreConfig struct {
	Driver          string `envconfig:"PRICING_STORE_DRIVER" default:"memory"`
	SpannerDatabase string `envconfig:"PRICING_SPANNER_DATABASE"`
}

type DBConfig struct {
	DSN             string        `envconfig:"PRICING_DB_DSN"`
	MaxOpenConns    int           `envconfig:"PRICING_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PRICING_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PRICING_DB_CONN_MAX_LIFETIME" default:"1h"`
}

type AvailabilityConfig struct {
	Driver string `envconfig:"PRICING_AVAILABILITY_DRIVER" default:"memory"`
}

type RedisConfig struct {
	Addr      string        `envconfig:"PRICING_REDIS_ADDR" default:"localhost:6379"`
	Password  string        `envconfig:"PRICING_REDIS_PASSWORD"`
	DB        int           `envconfig:"PRICING_REDIS_DB" default:"0"`
	KeyPrefix string        `envconfig:"PRICING_REDIS_KEY_PREFIX" default:"pricing"`
	TTL       time.Duration `envconfig:"PRICING_REDIS_TTL" default:"0s"`
}

type PricingConfig struct {
	DefaultCurrency string `envconfig:"PRICING_DEFAULT_CURRENCY" default:"USD"`
}

// Validate checks cross-field requirements envconfig cannot express.
func (c *Config) Validate() error {
	c.Store.Driver = strings.ToLower(strings.TrimSpace(c.Store.Driver))
	c.Availability.Driver = strings.ToLower(strings.TrimSpace(c.Availability.Driver))
	c.Pricing.DefaultCurrency = strings.ToUpper(strings.TrimSpace(c.Pricing.DefaultCurrency))

	switch c.Store.Driver {
	case StoreMemory:
	case StoreSpanner:
		if c.Store.SpannerDatabase == "" {
			return fmt.Errorf("%s is required when %s=%s", EnvSpannerDB, EnvStore, StoreSpanner)
		}
	case StorePostgres:
		if c.DB.DSN == "" {
			return fmt.Errorf("%s is required when %s=%s", EnvDBDSN, EnvStore, StorePostgres)
		}
	default:
		return fmt.Errorf("unsupported %s %q", EnvStore, c.Store.Driver)
	}

	switch c.Availability.Driver {
	case AvailabilityMemory:
	case AvailabilityRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("%s is required when %s=%s", EnvRedisAddr, EnvAvailDrv, AvailabilityRedis)
		}
	default:
		return fmt.Errorf("unsupported %s %q", EnvAvailDrv, c.Availability.Driver)
	}

	if len(c.Pricing.DefaultCurrency) != 3 {
		return fmt.Errorf("%s must be a three-letter code, got %q", EnvCurrency, c.Pricing.DefaultCurrency)
	}
	return nil
}
