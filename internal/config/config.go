package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const envPrefix = "STOREFRONT"

type Config struct {
	AppEnv  string `envconfig:"APP_ENV" default:"development"`
	AppPort string `envconfig:"APP_PORT" required:"true"`

	BackendURL     string        `envconfig:"BACKEND_URL" default:"http://backend:8000/api/"`
	BackendTimeout time.Duration `envconfig:"BACKEND_TIMEOUT" default:"30s"`

	ChatURL            string        `envconfig:"CHAT_URL" default:"ws://127.0.0.1:8000/api/chat/ws"`
	ChatReconnectDelay time.Duration `envconfig:"CHAT_RECONNECT_DELAY" default:"3s"`
	ChatHistoryLimit   int           `envconfig:"CHAT_HISTORY_LIMIT" default:"20"`

	SearchDebounce time.Duration `envconfig:"SEARCH_DEBOUNCE" default:"500ms"`
	SearchLimit    int           `envconfig:"SEARCH_LIMIT" default:"20"`
	SearchCacheTTL time.Duration `envconfig:"SEARCH_CACHE_TTL" default:"30s"`

	ProductCacheTTL  time.Duration `envconfig:"PRODUCT_CACHE_TTL" default:"1h"`
	LocationCacheTTL time.Duration `envconfig:"LOCATION_CACHE_TTL" default:"1h"`

	ViewIdleTTL    time.Duration `envconfig:"VIEW_IDLE_TTL" default:"30m"`
	ShippingWeight int           `envconfig:"SHIPPING_WEIGHT" default:"500"`

	AllowedOrigin string `envconfig:"ALLOWED_ORIGIN" default:"http://localhost:3000"`

	// JWTSecret is the HS256 key the backend signs access tokens with.
	JWTSecret         string `envconfig:"JWT_SECRET" required:"true"`
	AccessTokenCookie string `envconfig:"ACCESS_TOKEN_COOKIE" default:"access_token"`
}

// LoadConfig reads an optional .env file and then the STOREFRONT_* environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.AppPort == "" {
		return nil, fmt.Errorf("STOREFRONT_APP_PORT is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("STOREFRONT_JWT_SECRET is required")
	}
	if cfg.ShippingWeight <= 0 {
		return nil, fmt.Errorf("STOREFRONT_SHIPPING_WEIGHT must be positive")
	}

	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
