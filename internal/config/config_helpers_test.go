package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnvAsInt(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{"positive", "7", 7},
		{"zero is kept", "0", 0},
		{"negative", "-3", -3},
		{"float falls back", "2.5", DefaultEventMaxRetries},
		{"garbage falls back", "five", DefaultEventMaxRetries},
		{"empty falls back", "", DefaultEventMaxRetries},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("EVENT_MAX_RETRIES", tt.value)
			assert.Equal(t, tt.want, getEnvAsInt("EVENT_MAX_RETRIES", DefaultEventMaxRetries))
		})
	}
}

func TestGetEnvAsDuration(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{"minutes", "45m", 45 * time.Minute},
		{"compound", "1h30m", 90 * time.Minute},
		{"milliseconds", "250ms", 250 * time.Millisecond},
		{"bare number falls back", "30", DefaultEventRetryDelay},
		{"garbage falls back", "soon", DefaultEventRetryDelay},
		{"empty falls back", "", DefaultEventRetryDelay},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("EVENT_RETRY_DELAY", tt.value)
			assert.Equal(t, tt.want, getEnvAsDuration("EVENT_RETRY_DELAY", DefaultEventRetryDelay))
		})
	}
}

func TestLoad_DatabasePoolConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("API_KEY", "test-key")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, DefaultDBMaxConns, cfg.DBMaxConns)
		assert.Equal(t, DefaultDBMaxIdleTime, cfg.DBMaxConnIdleTime)
		assert.Equal(t, DefaultDBMaxLifetime, cfg.DBMaxConnLifetime)
	})

	t.Run("postgres backend with custom pool", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("API_KEY", "test-key")
		t.Setenv("STORE_BACKEND", "POSTGRES")
		t.Setenv("DB_MAX_CONNS", "50")
		t.Setenv("DB_MAX_CONN_IDLE_TIME", "10m")
		t.Setenv("DB_MAX_CONN_LIFETIME", "1h")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, StoreBackendPostgres, cfg.StoreBackend)
		assert.Equal(t, 50, cfg.DBMaxConns)
		assert.Equal(t, 10*time.Minute, cfg.DBMaxConnIdleTime)
		assert.Equal(t, time.Hour, cfg.DBMaxConnLifetime)
	})

	t.Run("invalid values fall back", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("API_KEY", "test-key")
		t.Setenv("DB_MAX_CONNS", "lots")
		t.Setenv("DB_MAX_CONN_IDLE_TIME", "a while")
		t.Setenv("DB_MAX_CONN_LIFETIME", "forever")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, DefaultDBMaxConns, cfg.DBMaxConns)
		assert.Equal(t, DefaultDBMaxIdleTime, cfg.DBMaxConnIdleTime)
		assert.Equal(t, DefaultDBMaxLifetime, cfg.DBMaxConnLifetime)
	})
}

func TestLoad_MongoDefaults(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("API_KEY", "test-key")
	t.Setenv("STORE_BACKEND", StoreBackendMongo)
	t.Setenv("MONGO_URI", "mongodb://localhost:27017/?replicaSet=rs0")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, StoreBackendMongo, cfg.StoreBackend)
	assert.Equal(t, DefaultMongoDB, cfg.MongoDB)
	assert.Equal(t, "mongodb://localhost:27017/?replicaSet=rs0", cfg.MongoURI)
}
