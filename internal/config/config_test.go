package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 8081, cfg.OpsPort)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 200*time.Millisecond, cfg.SlowQuery)
	assert.True(t, cfg.RunMigrations)
	assert.False(t, cfg.TracingEnabled)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")
	t.Setenv("POSTGRES_MAX_CONNS", "10")
	t.Setenv("REVIEWS_ID_WORKER", "3")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, int32(10), cfg.Postgres().MaxConns)
	assert.Equal(t, uint8(3), cfg.IDWorker)
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"bad log level", "LOG_LEVEL", "verbose"},
		{"port out of range", "REVIEWS_OPS_PORT", "70000"},
		{"broker without port", "KAFKA_BROKERS", "kafka-1"},
		{"worker out of range", "REVIEWS_ID_WORKER", "40"},
		{"sample rate above one", "OTEL_SAMPLE_RATE", "1.5"},
		{"min above max", "POSTGRES_MIN_CONNS", "50"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestConfig_Tracing(t *testing.T) {
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("ENVIRONMENT", "staging")

	cfg, err := Load()
	require.NoError(t, err)

	tc := cfg.Tracing()
	assert.True(t, tc.Enabled)
	assert.Equal(t, ServiceName, tc.ServiceName)
	assert.Equal(t, "staging", tc.Environment)
}
