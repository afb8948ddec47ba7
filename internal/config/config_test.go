package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoad tests configuration loading from environment
func TestLoad(t *testing.T) {
	t.Run("loads config with defaults when no env vars set", func(t *testing.T) {
		clearEnvVars(t)
		// Must set API_KEY or it fails validation
		t.Setenv("API_KEY", "test-key")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, DefaultPort, cfg.Port, "Should use default port")
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "text", cfg.LogFormat)
		assert.Equal(t, "dev", cfg.Environment)
		assert.Equal(t, StoreBackendJSON, cfg.StoreBackend)
		assert.Equal(t, DefaultDataDir, cfg.DataDir)
		assert.Equal(t, ConfigPathCatalog, cfg.CatalogPath)
		assert.Equal(t, DefaultDailyJobSpec, cfg.DailyJobSpec)
		assert.Equal(t, DefaultDeadLetterPath, cfg.DeadLetterPath)
		assert.Zero(t, cfg.MarketOfferTTL, "Catalog TTL applies unless overridden")
		assert.Empty(t, cfg.AdminIDs)
		assert.False(t, cfg.DiscordEnabled())
		assert.Equal(t, "test-key", cfg.APIKey)
	})

	t.Run("loads config from environment variables", func(t *testing.T) {
		clearEnvVars(t)

		t.Setenv("PORT", "3000")
		t.Setenv("API_KEY", "custom-api-key")
		t.Setenv("LOG_LEVEL", "DEBUG")
		t.Setenv("LOG_FORMAT", "json")
		t.Setenv("ENVIRONMENT", "production")
		t.Setenv("STORE_BACKEND", "Postgres")
		t.Setenv("DB_HOST", "db.example.com")
		t.Setenv("ADMIN_IDS", " 1000, ,2000 ")
		t.Setenv("TRUSTED_PROXIES", "10.0.0.1")
		t.Setenv("MARKET_OFFER_TTL", "45m")
		t.Setenv("DAILY_JOB_SPEC", "30 1 * * *")
		t.Setenv("DISCORD_TOKEN", "token")
		t.Setenv("DISCORD_APP_ID", "app")
		t.Setenv("EVENT_MAX_RETRIES", "7")

		cfg, err := Load()

		require.NoError(t, err)
		assert.Equal(t, 3000, cfg.Port)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.Equal(t, "production", cfg.Environment)
		assert.Equal(t, StoreBackendPostgres, cfg.StoreBackend)
		assert.Equal(t, "db.example.com", cfg.DBHost)
		assert.Equal(t, []string{"1000", "2000"}, cfg.AdminIDs)
		assert.Equal(t, []string{"10.0.0.1"}, cfg.TrustedProxies)
		assert.Equal(t, 45*time.Minute, cfg.MarketOfferTTL)
		assert.Equal(t, "30 1 * * *", cfg.DailyJobSpec)
		assert.Equal(t, 7, cfg.EventMaxRetries)
		assert.True(t, cfg.DiscordEnabled())
	})

	t.Run("returns error when API_KEY is missing", func(t *testing.T) {
		clearEnvVars(t)

		cfg, err := Load()

		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "API_KEY")
		assert.Contains(t, err.Error(), "must be set")
	})

	t.Run("returns error for unknown store backend", func(t *testing.T) {
		clearEnvVars(t)
		t.Setenv("API_KEY", "test-key")
		t.Setenv("STORE_BACKEND", "redis")

		_, err := Load()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid STORE_BACKEND")
	})

	t.Run("handles PORT edge cases", func(t *testing.T) {
		testCases := []struct {
			name        string
			portValue   string
			shouldError bool
		}{
			{"zero port", "0", false},
			{"max valid port", "65535", false},
			{"negative port", "-1", false}, // Loads, the listener rejects it
			{"not a number", "not-a-number", true},
			{"float port", "8080.5", true},
			{"empty string", "", true},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				clearEnvVars(t)
				t.Setenv("API_KEY", "test-key")
				t.Setenv("PORT", tc.portValue)

				_, err := Load()

				if tc.shouldError {
					assert.Error(t, err)
				} else {
					assert.NoError(t, err)
				}
			})
		}
	})
}

// TestGetDBConnString verifies database connection string generation
func TestGetDBConnString(t *testing.T) {
	cfg := &Config{
		DBUser:     "user",
		DBPassword: "p@ss:word",
		DBHost:     "db.example.com",
		DBPort:     "5433",
		DBName:     "pigfarm",
	}

	assert.Equal(t, "postgres://user:p@ss:word@db.example.com:5433/pigfarm?sslmode=disable", cfg.GetDBConnString())
}

func TestGetEnvAsList(t *testing.T) {
	t.Setenv("TEST_LIST_VAR", "a, b,,c ")
	assert.Equal(t, []string{"a", "b", "c"}, getEnvAsList("TEST_LIST_VAR"))

	t.Setenv("TEST_LIST_VAR", "")
	assert.Nil(t, getEnvAsList("TEST_LIST_VAR"))
}

// Helper function to clear environment variables
func clearEnvVars(t *testing.T) {
	t.Helper()

	envVars := []string{
		"PORT", "API_KEY", "LOG_LEVEL", "LOG_FORMAT", "LOG_DIR", "VERSION", "ENVIRONMENT",
		"TRUSTED_PROXIES", "ADMIN_IDS", "STORE_BACKEND", "DATA_DIR",
		"DB_USER", "DB_PASSWORD", "DB_HOST", "DB_PORT", "DB_NAME",
		"DB_MAX_CONNS", "DB_MAX_CONN_IDLE_TIME", "DB_MAX_CONN_LIFETIME",
		"MONGO_URI", "MONGO_DB", "CATALOG_PATH", "MARKET_OFFER_TTL",
		"DISCORD_TOKEN", "DISCORD_APP_ID", "DISCORD_GUILD_ID", "REFERRAL_LINK",
		"NOTIFY_WEBHOOK_URL", "DAILY_JOB_SPEC", "DEAD_LETTER_PATH",
		"EVENT_MAX_RETRIES", "EVENT_RETRY_DELAY", "ENV_SCHEMA_VERSION",
	}

	for _, key := range envVars {
		// Setenv registers the restore, Unsetenv clears it for this test
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}
