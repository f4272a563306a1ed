package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"golang.org/x/crypto/bcrypt"
)

// Token transports. A deployment uses exactly one.
const (
	TransportCookie = "cookie"
	TransportHeader = "header"
)

// Revocation list backends.
const (
	RevocationNone     = "none"
	RevocationDatabase = "database"
	RevocationRedis    = "redis"
)

// Database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

const devSecret = "dev_only_jwt_secret"

// Config holds all configuration for the application.
type Config struct {
	AppMode  string
	Port     string
	Database DatabaseConfig
	Auth     AuthConfig
	Redis    RedisConfig
	RabbitMQ RabbitMQConfig
	HTTP     HTTPConfig
	Log      LogConfig
}

type DatabaseConfig struct {
	Driver string
	DSN    string
}

type AuthConfig struct {
	Secret            string
	Issuer            string
	TokenTTL          time.Duration
	Transport         string
	CookieName        string
	CookieSecure      bool
	BcryptCost        int
	RevocationBackend string

	// BootstrapAdminUsername seeds an ADMIN account at startup when set.
	BootstrapAdminUsername string
	BootstrapAdminPassword string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RabbitMQConfig is optional; an empty URL disables account events.
type RabbitMQConfig struct {
	URL   string
	Queue string
}

type HTTPConfig struct {
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	AllowedOrigins string
	RateLimitMax   int
}

type LogConfig struct {
	Level  string
	Format string
}

// Load reads configuration from an optional .env file and the environment.
func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		AppMode: strings.TrimSpace(v.GetString("APP_MODE")),
		Port:    v.GetString("APP_PORT"),
		Database: DatabaseConfig{
			Driver: strings.ToLower(v.GetString("DB_DRIVER")),
			DSN:    v.GetString("DATABASE_DSN"),
		},
		Auth: AuthConfig{
			Secret:            v.GetString("JWT_SECRET"),
			Issuer:            v.GetString("JWT_ISSUER"),
			TokenTTL:          v.GetDuration("TOKEN_TTL"),
			Transport:         strings.ToLower(v.GetString("AUTH_TRANSPORT")),
			CookieName:        v.GetString("AUTH_COOKIE_NAME"),
			CookieSecure:      v.GetBool("COOKIE_SECURE"),
			BcryptCost:        v.GetInt("BCRYPT_COST"),
			RevocationBackend: strings.ToLower(v.GetString("REVOCATION_BACKEND")),

			BootstrapAdminUsername: strings.TrimSpace(v.GetString("ADMIN_USERNAME")),
			BootstrapAdminPassword: v.GetString("ADMIN_PASSWORD"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		RabbitMQ: RabbitMQConfig{
			URL:   v.GetString("RABBITMQ_URL"),
			Queue: v.GetString("ACCOUNT_EVENTS_QUEUE"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:    v.GetDuration("READ_TIMEOUT"),
			WriteTimeout:   v.GetDuration("WRITE_TIMEOUT"),
			AllowedOrigins: v.GetString("CORS_ALLOWED_ORIGINS"),
			RateLimitMax:   v.GetInt("RATE_LIMIT_MAX"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
	}

	if cfg.Auth.Secret == "" && cfg.IsDev() {
		cfg.Auth.Secret = devSecret
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_MODE", "dev")
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DB_DRIVER", DriverSQLite)
	v.SetDefault("DATABASE_DSN", "storefront.db")
	v.SetDefault("JWT_ISSUER", "storefront")
	v.SetDefault("TOKEN_TTL", 7*24*time.Hour)
	v.SetDefault("AUTH_TRANSPORT", TransportCookie)
	v.SetDefault("AUTH_COOKIE_NAME", "auth-token")
	v.SetDefault("COOKIE_SECURE", true)
	v.SetDefault("BCRYPT_COST", bcrypt.DefaultCost)
	v.SetDefault("REVOCATION_BACKEND", RevocationDatabase)
	v.SetDefault("ADMIN_USERNAME", "")
	v.SetDefault("ADMIN_PASSWORD", "")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("ACCOUNT_EVENTS_QUEUE", "account_events")
	v.SetDefault("READ_TIMEOUT", 10*time.Second)
	v.SetDefault("WRITE_TIMEOUT", 10*time.Second)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("RATE_LIMIT_MAX", 100)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
}

// Validate checks that every enumerated setting has a known value.
func (c *Config) Validate() error {
	var errs []error

	if c.AppMode != "dev" && c.AppMode != "prod" {
		errs = append(errs, fmt.Errorf("invalid APP_MODE %q (must be dev or prod)", c.AppMode))
	}
	switch c.Database.Driver {
	case DriverSQLite, DriverPostgres, DriverMySQL:
	default:
		errs = append(errs, fmt.Errorf("invalid DB_DRIVER %q", c.Database.Driver))
	}
	if c.Database.DSN == "" {
		errs = append(errs, errors.New("DATABASE_DSN is required"))
	}
	if c.Auth.Secret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, fmt.Errorf("TOKEN_TTL must be positive, got %s", c.Auth.TokenTTL))
	}
	switch c.Auth.Transport {
	case TransportCookie, TransportHeader:
	default:
		errs = append(errs, fmt.Errorf("invalid AUTH_TRANSPORT %q (must be cookie or header)", c.Auth.Transport))
	}
	if c.Auth.Transport == TransportCookie && c.Auth.CookieName == "" {
		errs = append(errs, errors.New("AUTH_COOKIE_NAME is required for cookie transport"))
	}
	if c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost {
		errs = append(errs, fmt.Errorf("BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost))
	}
	switch c.Auth.RevocationBackend {
	case RevocationNone, RevocationDatabase:
	case RevocationRedis:
		if c.Redis.Addr == "" {
			errs = append(errs, errors.New("REDIS_ADDR is required for the redis revocation backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("invalid REVOCATION_BACKEND %q", c.Auth.RevocationBackend))
	}
	if c.Auth.BootstrapAdminUsername != "" && c.Auth.BootstrapAdminPassword == "" {
		errs = append(errs, errors.New("ADMIN_PASSWORD is required when ADMIN_USERNAME is set"))
	}
	if c.RabbitMQ.URL != "" && c.RabbitMQ.Queue == "" {
		errs = append(errs, errors.New("ACCOUNT_EVENTS_QUEUE is required when RABBITMQ_URL is set"))
	}

	return errors.Join(errs...)
}

// IsDev returns true if running in development mode.
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}
