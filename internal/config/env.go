package config

const EnvPrefix = "PRICING"

const (
	EnvAppEnv     = "PRICING_APP_ENV"
	EnvHTTPPort   = "PRICING_HTTP_PORT"
	EnvGRPCPort   = "PRICING_GRPC_PORT"
	EnvLogLevel   = "PRICING_LOG_LEVEL"
	EnvLogFormat  = "PRICING_LOG_FORMAT"
	EnvShutdown   = "PRICING_SHUTDOWN_TIMEOUT"
	EnvStore      = "PRICING_STORE_DRIVER"
	EnvSpannerDB  = "PRICING_SPANNER_DATABASE"
	EnvDBDSN      = "PRICING_DB_DSN"
	EnvDBMaxOpen  = "PRICING_DB_MAX_OPEN_CONNS"
	EnvDBMaxIdle  = "PRICING_DB_MAX_IDLE_CONNS"
	EnvDBLifetime = "PRICING_DB_CONN_MAX_LIFETIME"
	EnvAvailDrv   = "PRICING_AVAILABILITY_DRIVER"
	EnvRedisAddr  = "PRICING_REDIS_ADDR"
	EnvRedisPass  = "PRICING_REDIS_PASSWORD"
	EnvRedisDB    = "PRICING_REDIS_DB"
	EnvRedisKey   = "PRICING_REDIS_KEY_PREFIX"
	EnvRedisTTL   = "PRICING_REDIS_TTL"
	EnvCurrency   = "PRICING_DEFAULT_CURRENCY"
)

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

// Store drivers.
const (
	StoreMemory   = "memory"
	StoreSpanner  = "spanner"
	StorePostgres = "postgres"
)

// Availability drivers.
const (
	AvailabilityMemory = "memory"
	AvailabilityRedis  = "redis"
)
