package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Backend BackendConfig
	Session SessionConfig
	Redis   RedisConfig
	Login   LoginConfig
}

// BackendConfig points at the user-management REST backend.
type BackendConfig struct {
	BaseURL     string        `env:"BACKEND_BASE_URL,     default=http://localhost:8081/api/"`
	Timeout     time.Duration `env:"BACKEND_TIMEOUT,      default=10s"`
	TokenSecret string        `env:"BACKEND_TOKEN_SECRET"`
	TokenTTL    time.Duration `env:"BACKEND_TOKEN_TTL,    default=5m"`
}

type SessionConfig struct {
	CookieName string        `env:"SESSION_COOKIE, default=LDS_SESSION"`
	TTL        time.Duration `env:"SESSION_TTL,    default=30m"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

// LoginConfig limits account form posts per client IP.
type LoginConfig struct {
	Rate  float64 `env:"LOGIN_RATE,  default=0.2"`
	Burst int     `env:"LOGIN_BURST, default=5"`
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if cfg.Backend.TokenSecret == "" {
		return nil, fmt.Errorf("config: BACKEND_TOKEN_SECRET is required")
	}
	return &cfg, nil
}
