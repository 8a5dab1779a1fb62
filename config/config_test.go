package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "FRONTEND_URL", "MESSAGE_HISTORY_LIMIT", "DB_DRIVER", "REDIS_ADDR"} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.AllowedOrigins)
	assert.Equal(t, 100, cfg.HistoryLimit)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.False(t, cfg.Cache.Enabled())
	require.NoError(t, cfg.Validate())
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("FRONTEND_URL", "http://a.example, http://b.example")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", "/tmp/chat-test.db")
	t.Setenv("RATE_LIMIT_BURST", "10")
	t.Setenv("RATE_LIMIT_INTERVAL", "2")
	t.Setenv("SHUTDOWN_TIMEOUT", "5s")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg := FromEnv()

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "/tmp/chat-test.db", cfg.Database.SQLitePath)
	assert.Equal(t, 10, cfg.RateLimit.Burst)
	assert.Equal(t, 2*time.Second, cfg.RateLimit.Interval)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.True(t, cfg.Cache.Enabled())
}

func TestFromEnvInvalidValuesKeepDefaults(t *testing.T) {
	t.Setenv("MAX_MESSAGE_SIZE", "-1")
	t.Setenv("MESSAGE_HISTORY_LIMIT", "lots")
	t.Setenv("RATE_LIMIT_INTERVAL", "soon")

	cfg := FromEnv()

	assert.Equal(t, int64(4096), cfg.MaxMessageSize)
	assert.Equal(t, 100, cfg.HistoryLimit)
	assert.Equal(t, time.Second, cfg.RateLimit.Interval)
}

func TestFromEnvZeroBurstDisablesRateLimit(t *testing.T) {
	t.Setenv("RATE_LIMIT_BURST", "0")

	cfg := FromEnv()

	assert.Equal(t, 0, cfg.RateLimit.Burst)
	assert.False(t, cfg.RateLimit.Enabled())
	assert.True(t, Default().RateLimit.Enabled())
}

func TestValidateRejectsUnknownDriver(t *testing.T) {
	cfg := Default()
	cfg.Database.Driver = "cassandra"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cassandra")
}

func TestPostgresDSN(t *testing.T) {
	dsn := Default().Database.DSN()
	assert.Equal(t, "host=localhost user=postgres password=postgres dbname=chatapp port=5432 sslmode=disable TimeZone=UTC", dsn)
}

func TestValidateRejectsUnknownGinMode(t *testing.T) {
	cfg := Default()
	cfg.GinMode = "verbose"
	assert.Error(t, cfg.Validate())

	cfg.GinMode = "release"
	assert.NoError(t, cfg.Validate())
}
