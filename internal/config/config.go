package config

import (
	"fmt"
	"time"

	pkgconfig "github.com/Maverick-Meerkats/greenfieldAPI-Reviews/pkg/config"
	"github.com/Maverick-Meerkats/greenfieldAPI-Reviews/pkg/database"
	"github.com/Maverick-Meerkats/greenfieldAPI-Reviews/pkg/tracing"
)

// ServiceName identifies this service in logs, traces and metrics.
const ServiceName = "reviews-service"

// Config holds all configuration for the reviews service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`

	// Ops HTTP server (health, metrics, pprof)
	OpsPort           int      `env:"REVIEWS_OPS_PORT" envDefault:"8081" validate:"gte=1,lte=65535"`
	PprofAllowedCIDRs []string `env:"PPROF_ALLOWED_CIDRS" envDefault:"127.0.0.1/32,::1/128" envSeparator:","`

	// PostgreSQL
	PostgresHost     string        `env:"POSTGRES_HOST" envDefault:"localhost" validate:"required"`
	PostgresPort     int           `env:"POSTGRES_PORT" envDefault:"5432" validate:"gte=1,lte=65535"`
	PostgresUser     string        `env:"POSTGRES_USER" envDefault:"reviews" validate:"required"`
	PostgresPass     string        `env:"POSTGRES_PASSWORD" envDefault:"reviews_secret"`
	PostgresDB       string        `env:"REVIEWS_DB_NAME" envDefault:"reviews_db" validate:"required"`
	PostgresSSL      string        `env:"POSTGRES_SSL_MODE" envDefault:"disable" validate:"oneof=disable allow prefer require verify-ca verify-full"`
	PostgresMaxConns int32         `env:"POSTGRES_MAX_CONNS" envDefault:"25" validate:"gte=1"`
	PostgresMinConns int32         `env:"POSTGRES_MIN_CONNS" envDefault:"5" validate:"gte=0"`
	SlowQuery        time.Duration `env:"DB_SLOW_QUERY_THRESHOLD" envDefault:"200ms"`
	RunMigrations    bool          `env:"RUN_MIGRATIONS" envDefault:"true"`

	// Kafka
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:"," validate:"required,dive,hostname_port"`

	// Review identifiers
	IDWorker uint8 `env:"REVIEWS_ID_WORKER" envDefault:"0" validate:"lte=31"`

	// Tracing
	TracingEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTLPEndpoint      string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	TracingSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0" validate:"gte=0,lte=1"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load reviews config: %w", err)
	}
	if cfg.PostgresMinConns > cfg.PostgresMaxConns {
		return nil, fmt.Errorf("POSTGRES_MIN_CONNS (%d) exceeds POSTGRES_MAX_CONNS (%d)",
			cfg.PostgresMinConns, cfg.PostgresMaxConns)
	}
	return cfg, nil
}

// Postgres returns the connection pool settings.
func (c *Config) Postgres() database.PostgresConfig {
	return database.PostgresConfig{
		Host:            c.PostgresHost,
		Port:            c.PostgresPort,
		User:            c.PostgresUser,
		Password:        c.PostgresPass,
		DBName:          c.PostgresDB,
		SSLMode:         c.PostgresSSL,
		MaxConns:        c.PostgresMaxConns,
		MinConns:        c.PostgresMinConns,
		MaxConnLifetime: time.Hour,
		MaxConnIdleTime: 30 * time.Minute,
	}
}

// Tracing returns the OpenTelemetry settings.
func (c *Config) Tracing() tracing.Config {
	tc := tracing.DefaultConfig(ServiceName)
	tc.Environment = c.Environment
	tc.OTLPEndpoint = c.OTLPEndpoint
	tc.SampleRate = c.TracingSampleRate
	tc.Enabled = c.TracingEnabled
	return tc
}
