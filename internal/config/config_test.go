package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8090", cfg.Server.Port)
	assert.Equal(t, "http://localhost:8080", cfg.Bank.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Bank.Timeout)
	assert.Equal(t, StoreMemory, cfg.Store.Backend)
	assert.Empty(t, cfg.Messaging.RabbitMQURL)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("ACQUIRING_BANK_BASE_URL", "http://bank.test/")
	t.Setenv("BANK_TIMEOUT", "3s")
	t.Setenv("STORE_BACKEND", "Redis")
	t.Setenv("REDIS_ADDR", "cache:6379")
	t.Setenv("RABBITMQ_URL", "amqp://guest:guest@mq:5672/")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Server.Port)
	assert.Equal(t, "http://bank.test", cfg.Bank.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Bank.Timeout)
	assert.Equal(t, StoreRedis, cfg.Store.Backend)
	assert.Equal(t, "cache:6379", cfg.Store.RedisAddr)
	assert.Equal(t, "amqp://guest:guest@mq:5672/", cfg.Messaging.RabbitMQURL)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gateway.yaml")
	require.NoError(t, os.WriteFile(path, []byte("acquiring_bank_base_url: http://simulator:8080\nlog_level: debug\n"), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://simulator:8080", cfg.Bank.BaseURL)
	assert.Equal(t, "warn", cfg.LogLevel, "environment wins over the file")
}

func TestLoad_RejectsUnknownBackend(t *testing.T) {
	t.Setenv("STORE_BACKEND", "cassandra")

	_, err := Load()
	assert.ErrorContains(t, err, "unsupported STORE_BACKEND")
}
