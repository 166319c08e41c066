package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration for the application.
type Config struct {
	Server   ServerConfig
	DB       DBConfig
	Log      LogConfig
	Auth     AuthConfig
	Checkout CheckoutConfig
	Cache    CacheConfig
	Events   EventsConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port            string `envconfig:"SERVER_PORT" default:"3000"`
	ShutdownTimeout int    `envconfig:"SHUTDOWN_TIMEOUT" default:"30"` // seconds
}

// DBConfig holds database-related configuration.
// In production, always set DB_PASSWORD via environment variable and use
// DB_SSLMODE "require" or "verify-full".
type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD" default:"postgres"` // CHANGE IN PRODUCTION
	Name     string `envconfig:"DB_NAME" default:"storefront_db"`
	SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns int    `envconfig:"DB_MAX_CONNS" default:"25"`
	MinConns int    `envconfig:"DB_MIN_CONNS" default:"5"`
}

// DSN returns the PostgreSQL connection string.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s&pool_max_conns=%d&pool_min_conns=%d",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode, c.MaxConns, c.MinConns)
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Pretty bool   `envconfig:"LOG_PRETTY" default:"false"`
}

// AuthConfig holds session token and admin bootstrap configuration.
type AuthConfig struct {
	JWTSecret      string `envconfig:"JWT_SECRET" default:"dev-secret-change-me"` // CHANGE IN PRODUCTION
	TokenTTLHours  int    `envconfig:"TOKEN_TTL_HOURS" default:"72"`
	RootAdminEmail string `envconfig:"ROOT_ADMIN_EMAIL" default:""`
}

// CheckoutConfig holds pricing rules applied at checkout.
type CheckoutConfig struct {
	ShippingFee           float64 `envconfig:"SHIPPING_FEE" default:"50"`
	FreeShippingThreshold float64 `envconfig:"FREE_SHIPPING_THRESHOLD" default:"500"`
}

// CacheConfig holds Redis cache configuration. An empty address disables
// caching entirely.
type CacheConfig struct {
	RedisAddr  string `envconfig:"REDIS_ADDR" default:""`
	TTLSeconds int    `envconfig:"CACHE_TTL_SECONDS" default:"300"`
}

// EventsConfig holds the order-event broker configuration. An empty URL
// disables publishing.
type EventsConfig struct {
	AMQPURL  string `envconfig:"AMQP_URL" default:""`
	Exchange string `envconfig:"AMQP_EXCHANGE" default:"storefront.orders"`
}

// Load parses environment variables into the Config struct.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
