package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=720h"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`

	Provider ProviderConfig
	Mongo    MongoConfig
	Redis    RedisConfig
}

type ProviderConfig struct {
	BaseURL  string        `env:"PROVIDER_BASE_URL"`
	APIToken string        `env:"PROVIDER_API_TOKEN"`
	Timeout  time.Duration `env:"PROVIDER_TIMEOUT, default=15s"`
	// Currency is the token name selected from the provider's balance
	// listing when rendering an account balance.
	Currency string `env:"PROVIDER_CURRENCY, default=ZAR"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=wallet_gateway"`
}

type RedisConfig struct {
	Addr       string        `env:"REDIS_ADDR, default=localhost:6379"`
	DB         int           `env:"REDIS_DB,   default=0"`
	BalanceTTL time.Duration `env:"BALANCE_CACHE_TTL, default=30s"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
