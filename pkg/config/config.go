package config

import (
	"fmt"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/angelmondragon/orderview-backend/pkg/enums"
)

type Config struct {
	App          AppConfig
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Pricing      PricingConfig
	Cache        CacheConfig
	Cron         CronConfig
	CORS         CORSConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.Pricing.validate(); err != nil {
		return nil, err
	}
	if cfg.App.IsProd() && slices.Contains(cfg.CORS.AllowedOrigins, "*") {
		return nil, fmt.Errorf("%s must list explicit origins in %s", EnvCORSOrigins, AppEnvProd)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"ORDERVIEW_APP_ENV" required:"true"`
	Port         string `envconfig:"ORDERVIEW_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"ORDERVIEW_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"ORDERVIEW_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"ORDERVIEW_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"ORDERVIEW_DB_DSN"`
	Driver string `envconfig:"ORDERVIEW_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"ORDERVIEW_DB_HOST"`
	LegacyPort     int    `envconfig:"ORDERVIEW_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"ORDERVIEW_DB_USER"`
	LegacyPassword string `envconfig:"ORDERVIEW_DB_PASSWORD"`
	LegacyName     string `envconfig:"ORDERVIEW_DB_NAME"`
	LegacySSLMode  string `envconfig:"ORDERVIEW_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"ORDERVIEW_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"ORDERVIEW_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"ORDERVIEW_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"ORDERVIEW_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"ORDERVIEW_REDIS_URL" required:"true"`
	Address      string        `envconfig:"ORDERVIEW_REDIS_ADDR"`
	Password     string        `envconfig:"ORDERVIEW_REDIS_PASSWORD"`
	DB           int           `envconfig:"ORDERVIEW_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"ORDERVIEW_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"ORDERVIEW_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"ORDERVIEW_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"ORDERVIEW_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"ORDERVIEW_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"ORDERVIEW_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"ORDERVIEW_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"ORDERVIEW_JWT_EXPIRATION_MINUTES" required:"true"`
}

// TokenTTL returns the access token lifetime configured in minutes.
func (j JWTConfig) TokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

// PricingConfig holds the shop-level display settings used when order lines
// are built.
type PricingConfig struct {
	PriceDisplay     string `envconfig:"ORDERVIEW_PRICE_DISPLAY" default:"tax_incl"`
	RoundingMode     string `envconfig:"ORDERVIEW_ROUNDING_MODE" default:"half_up"`
	DecimalSeparator string `envconfig:"ORDERVIEW_DECIMAL_SEPARATOR" default:"."`
	GroupSeparator   string `envconfig:"ORDERVIEW_GROUP_SEPARATOR" default:","`
	ImageBaseURL     string `envconfig:"ORDERVIEW_IMAGE_BASE_URL" default:""`
	InvoicePrefix    string `envconfig:"ORDERVIEW_INVOICE_PREFIX" default:"#IN"`
	AllowBackorders  bool   `envconfig:"ORDERVIEW_ALLOW_BACKORDERS" default:"false"`
}

func (p PricingConfig) Display() enums.PriceDisplay {
	return enums.PriceDisplay(strings.ToLower(strings.TrimSpace(p.PriceDisplay)))
}

func (p PricingConfig) Rounding() enums.RoundingMode {
	return enums.RoundingMode(strings.ToLower(strings.TrimSpace(p.RoundingMode)))
}

func (p PricingConfig) validate() error {
	if !p.Display().IsValid() {
		return fmt.Errorf("%s must be one of tax_incl, tax_excl, got %q", EnvPriceDisplay, p.PriceDisplay)
	}
	if !p.Rounding().IsValid() {
		return fmt.Errorf("invalid %s %q", EnvRoundingMode, p.RoundingMode)
	}
	return nil
}

type CacheConfig struct {
	OrderLinesTTL time.Duration `envconfig:"ORDERVIEW_CACHE_ORDER_LINES_TTL" default:"10m"`
	Disabled      bool          `envconfig:"ORDERVIEW_CACHE_DISABLED" default:"false"`
}

type CronConfig struct {
	Interval       time.Duration `envconfig:"ORDERVIEW_CRON_INTERVAL" default:"5m"`
	WarmupLookback time.Duration `envconfig:"ORDERVIEW_CRON_WARMUP_LOOKBACK" default:"1h"`
	WarmupLimit    int           `envconfig:"ORDERVIEW_CRON_WARMUP_LIMIT" default:"200"`
	LockTTL        time.Duration `envconfig:"ORDERVIEW_CRON_LOCK_TTL" default:"4m"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"ORDERVIEW_CORS_ALLOWED_ORIGINS" default:"*"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"ORDERVIEW_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
