package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, ":8080", cfg.GetServerAddress())
	assert.Equal(t, "/api/v1", cfg.GetAPIBasePath())
	assert.Equal(t, "America/Mexico_City", cfg.Analytics.Timezone)
	assert.Equal(t, "order-events", cfg.Kafka.OrderTopic)
	assert.NotEmpty(t, cfg.Database.DSN)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ANALYTICS_TIMEZONE", "Europe/Madrid")
	t.Setenv("ANALYTICS_CACHE_TTL", "30s")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092")
	t.Setenv("RATE_LIMIT_ENABLED", "false")

	cfg := Load()

	assert.Equal(t, ":9090", cfg.GetServerAddress())
	assert.Equal(t, "Europe/Madrid", cfg.Analytics.Timezone)
	assert.Equal(t, 30*time.Second, cfg.Analytics.CacheTTL)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
	assert.False(t, cfg.RateLimit.Enabled)
}

func TestLoad_ReferenceZoneIsLoadable(t *testing.T) {
	cfg := Load()

	_, err := time.LoadLocation(cfg.Analytics.Timezone)
	assert.NoError(t, err)
}
