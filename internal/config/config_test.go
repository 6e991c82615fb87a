package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Success loading from env", func(t *testing.T) {
		t.Setenv("STOREFRONT_APP_PORT", "8080")
		t.Setenv("STOREFRONT_JWT_SECRET", "backend-secret")
		t.Setenv("STOREFRONT_APP_ENV", "production")
		t.Setenv("STOREFRONT_BACKEND_URL", "http://localhost:8000/api/")
		t.Setenv("STOREFRONT_CHAT_RECONNECT_DELAY", "5s")

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.AppPort)
		assert.Equal(t, "http://localhost:8000/api/", cfg.BackendURL)
		assert.Equal(t, 5*time.Second, cfg.ChatReconnectDelay)
		assert.True(t, cfg.IsProduction())
	})

	t.Run("Defaults", func(t *testing.T) {
		t.Setenv("STOREFRONT_APP_PORT", "8080")
		t.Setenv("STOREFRONT_JWT_SECRET", "backend-secret")

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, 30*time.Second, cfg.BackendTimeout)
		assert.Equal(t, 3*time.Second, cfg.ChatReconnectDelay)
		assert.Equal(t, 20, cfg.ChatHistoryLimit)
		assert.Equal(t, 500*time.Millisecond, cfg.SearchDebounce)
		assert.Equal(t, 500, cfg.ShippingWeight)
		assert.Equal(t, "access_token", cfg.AccessTokenCookie)
		assert.False(t, cfg.IsProduction())
	})

	t.Run("Missing port", func(t *testing.T) {
		t.Setenv("STOREFRONT_APP_PORT", "")

		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("Missing JWT secret", func(t *testing.T) {
		t.Setenv("STOREFRONT_APP_PORT", "8080")
		t.Setenv("STOREFRONT_JWT_SECRET", "")

		_, err := LoadConfig()
		assert.Error(t, err)
	})

	t.Run("Invalid weight", func(t *testing.T) {
		t.Setenv("STOREFRONT_APP_PORT", "8080")
		t.Setenv("STOREFRONT_JWT_SECRET", "backend-secret")
		t.Setenv("STOREFRONT_SHIPPING_WEIGHT", "0")

		_, err := LoadConfig()
		assert.Error(t, err)
	})
}
