package config

const EnvPrefix = "ORDERVIEW"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv       = "ORDERVIEW_APP_ENV"
	EnvPort         = "ORDERVIEW_APP_PORT"
	EnvDBDSN        = "ORDERVIEW_DB_DSN"
	EnvDBHost       = "ORDERVIEW_DB_HOST"
	EnvDBUser       = "ORDERVIEW_DB_USER"
	EnvDBName       = "ORDERVIEW_DB_NAME"
	EnvDBPassword   = "ORDERVIEW_DB_PASSWORD"
	EnvRedisURL     = "ORDERVIEW_REDIS_URL"
	EnvJWTSecret    = "ORDERVIEW_JWT_SECRET"
	EnvJWTIssuer    = "ORDERVIEW_JWT_ISSUER"
	EnvJWTExpMins   = "ORDERVIEW_JWT_EXPIRATION_MINUTES"
	EnvPriceDisplay = "ORDERVIEW_PRICE_DISPLAY"
	EnvRoundingMode = "ORDERVIEW_ROUNDING_MODE"
	EnvImageBaseURL = "ORDERVIEW_IMAGE_BASE_URL"
	EnvCacheTTL     = "ORDERVIEW_CACHE_ORDER_LINES_TTL"
	EnvCronInterval = "ORDERVIEW_CRON_INTERVAL"
	EnvCORSOrigins  = "ORDERVIEW_CORS_ALLOWED_ORIGINS"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
