package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "ferre"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Bootstrap     BootstrapConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string   `envconfig:"FERRE_APP_ENV" default:"dev"`
	Port         string   `envconfig:"FERRE_APP_PORT" default:"8080"`
	LogLevel     string   `envconfig:"FERRE_LOG_LEVEL" default:"info"`
	LogWarnStack bool     `envconfig:"FERRE_LOG_WARN_STACK" default:"false"`
	CORSOrigins  []string `envconfig:"FERRE_CORS_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"FERRE_DB_DSN"`
	Driver string `envconfig:"FERRE_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"FERRE_DB_HOST"`
	Port     int    `envconfig:"FERRE_DB_PORT" default:"5432"`
	User     string `envconfig:"FERRE_DB_USER"`
	Password string `envconfig:"FERRE_DB_PASSWORD"`
	Name     string `envconfig:"FERRE_DB_NAME"`
	SSLMode  string `envconfig:"FERRE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"FERRE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"FERRE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"FERRE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FERRE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// ensureDSN assembles a DSN from discrete host settings when one isn't supplied.
func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if d.Host == "" || d.User == "" || d.Name == "" {
		return fmt.Errorf("database config requires FERRE_DB_DSN or host/user/name settings")
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.Name,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	d.DSN = u.String()
	return nil
}

// RedisConfig is optional: an empty URL and address disables redis-backed
// login rate limiting.
type RedisConfig struct {
	URL          string        `envconfig:"FERRE_REDIS_URL"`
	Address      string        `envconfig:"FERRE_REDIS_ADDR"`
	Password     string        `envconfig:"FERRE_REDIS_PASSWORD"`
	DB           int           `envconfig:"FERRE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FERRE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FERRE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FERRE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FERRE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FERRE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type JWTConfig struct {
	Secret            string `envconfig:"FERRE_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"FERRE_JWT_ISSUER" default:"inventory-api"`
	ExpirationMinutes int    `envconfig:"FERRE_JWT_EXPIRATION_MINUTES" default:"60"`
}

// TokenTTL returns the access token validity window.
func (j JWTConfig) TokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"FERRE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"FERRE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"FERRE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"FERRE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"FERRE_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"FERRE_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginUsernameLimit int           `envconfig:"FERRE_AUTH_RATE_LIMIT_LOGIN_USERNAME_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"FERRE_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

// BootstrapConfig holds the default admin account created by the
// bootstrap endpoint.
type BootstrapConfig struct {
	AdminUsername string `envconfig:"FERRE_BOOTSTRAP_ADMIN_USERNAME" default:"admin"`
	AdminPassword string `envconfig:"FERRE_BOOTSTRAP_ADMIN_PASSWORD" default:"changeme"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"FERRE_AUTO_MIGRATE" default:"false"`
}
