// Package config holds the dashboard service configuration, loaded from the
// environment.
package config

import (
	"fmt"
	"time"

	"github.com/storefrontgo/dashboard/internal/domain"
	"github.com/storefrontgo/dashboard/pkg/config"
)

// Config is the full dashboard configuration.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	HTTPPort    int    `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`

	// Cart
	CartSnapshotTTL       time.Duration `env:"CART_SNAPSHOT_TTL" envDefault:"720h"`
	ShippingFreeThreshold int64         `env:"SHIPPING_FREE_THRESHOLD" envDefault:"50000"`
	ShippingFlatFee       int64         `env:"SHIPPING_FLAT_FEE" envDefault:"5000"`

	// Checkout
	CheckoutPolicy string `env:"CHECKOUT_POLICY" envDefault:"permissive"`

	// Redis
	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// Postgres (checkout activity log)
	PostgresHost     string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort     int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser     string `env:"POSTGRES_USER" envDefault:"dashboard"`
	PostgresPassword string `env:"POSTGRES_PASSWORD" envDefault:"dashboard_secret"`
	PostgresDB       string `env:"POSTGRES_DB" envDefault:"dashboard"`

	// Kafka
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// Downstream services
	OrderServiceURL        string `env:"ORDER_SERVICE_URL" envDefault:"http://localhost:8081"`
	PaymentServiceURL      string `env:"PAYMENT_SERVICE_URL" envDefault:"http://localhost:8082"`
	ProductServiceURL      string `env:"PRODUCT_SERVICE_URL" envDefault:"http://localhost:8083"`
	NotificationServiceURL string `env:"NOTIFICATION_SERVICE_URL" envDefault:"http://localhost:8084"`
	ClientServiceURL       string `env:"CLIENT_SERVICE_URL" envDefault:"http://localhost:8085"`

	// Tracing
	TracingEnabled    bool    `env:"TRACING_ENABLED" envDefault:"false"`
	TracingEndpoint   string  `env:"TRACING_ENDPOINT" envDefault:"localhost:4318"`
	TracingSampleRate float64 `env:"TRACING_SAMPLE_RATE" envDefault:"0.1"`

	// CORS
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`
}

// Load reads configuration from the environment and validates it.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := config.Load(cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("HTTP_PORT out of range: %d", c.HTTPPort)
	}
	if !domain.ValidCheckoutPolicy(c.CheckoutPolicy) {
		return fmt.Errorf("CHECKOUT_POLICY must be %q or %q, got %q",
			domain.PolicyStrict, domain.PolicyPermissive, c.CheckoutPolicy)
	}
	if c.ShippingFreeThreshold < 0 || c.ShippingFlatFee < 0 {
		return fmt.Errorf("shipping threshold and fee must be non-negative")
	}
	if len(c.KafkaBrokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS must not be empty")
	}
	if c.OrderServiceURL == "" || c.PaymentServiceURL == "" {
		return fmt.Errorf("order and payment service URLs are required")
	}
	return nil
}

// ShippingPolicy returns the configured shipping policy.
func (c *Config) ShippingPolicy() domain.ShippingPolicy {
	return domain.ShippingPolicy{
		FreeThreshold: c.ShippingFreeThreshold,
		FlatFee:       c.ShippingFlatFee,
	}
}
