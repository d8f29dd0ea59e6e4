package gateway

import (
	"context"

	"github.com/sethvargo/go-envconfig"
)

// Config is the gateway's environment-derived configuration. The
// backend origin is the single place the console resolves its API base
// URL; everything upstream of the gateway uses relative paths.
type Config struct {
	ListenAddr    string `env:"GATEWAY_ADDR,    default=:3000"`
	BackendOrigin string `env:"BACKEND_ORIGIN,  default=http://localhost:8081"`
	CookieDomain  string `env:"COOKIE_DOMAIN"`
	CookieSecure  bool   `env:"COOKIE_SECURE,   default=false"`
	Env           string `env:"ENV,             default=development"`
	LogLevel      string `env:"LOG_LEVEL,       default=info"`
}

// LoadConfig reads the gateway configuration from the environment.
func LoadConfig(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}
	if cfg.Env == "production" {
		cfg.CookieSecure = true
	}
	return &cfg, nil
}
