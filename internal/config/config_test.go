package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Success loading from env", func(t *testing.T) {
		// t.Setenv sets the environment variable for the duration of the test
		// and automatically restores it afterwards.
		t.Setenv("STOREFRONT_API_URL", "http://store.local:9000/api/")
		t.Setenv("STOREFRONT_SESSION_FILE", "/tmp/storefront-test/session.json")
		t.Setenv("STOREFRONT_REFRESH_INTERVAL", "30s")
		t.Setenv("STOREFRONT_REQUEST_TIMEOUT", "2s")
		t.Setenv("STOREFRONT_RATE_LIMIT", "2.5")
		t.Setenv("STOREFRONT_RATE_BURST", "5")
		t.Setenv("APP_ENV", "test")

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "http://store.local:9000/api", cfg.APIBaseURL)
		assert.Equal(t, "/tmp/storefront-test/session.json", cfg.SessionFile)
		assert.Equal(t, 30*time.Second, cfg.RefreshInterval)
		assert.Equal(t, 2*time.Second, cfg.RequestTimeout)
		assert.Equal(t, 2.5, cfg.RateLimit)
		assert.Equal(t, 5, cfg.RateBurst)
		assert.Equal(t, "test", cfg.AppEnv)
	})

	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("STOREFRONT_API_URL", "")
		t.Setenv("STOREFRONT_SESSION_FILE", "")
		t.Setenv("STOREFRONT_REFRESH_INTERVAL", "")
		t.Setenv("STOREFRONT_REQUEST_TIMEOUT", "")
		t.Setenv("STOREFRONT_RATE_LIMIT", "")
		t.Setenv("STOREFRONT_RATE_BURST", "")

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "http://localhost:8080/api", cfg.APIBaseURL)
		assert.Contains(t, cfg.SessionFile, "session.json")
		assert.Equal(t, 10*time.Second, cfg.RefreshInterval)
		assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
		assert.Equal(t, float64(10), cfg.RateLimit)
		assert.Equal(t, 20, cfg.RateBurst)
	})

	t.Run("InvalidDuration", func(t *testing.T) {
		t.Setenv("STOREFRONT_REFRESH_INTERVAL", "soon")

		_, err := LoadConfig()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "STOREFRONT_REFRESH_INTERVAL")
	})

	t.Run("InvalidRateLimit", func(t *testing.T) {
		t.Setenv("STOREFRONT_RATE_LIMIT", "-1")

		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("InvalidBurst", func(t *testing.T) {
		t.Setenv("STOREFRONT_RATE_BURST", "many")

		_, err := LoadConfig()
		assert.Error(t, err)
	})
}
