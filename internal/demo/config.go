package demo

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the demo backend's configuration, read from YAML with
// environment overrides under the PFDEMO prefix.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Auth   AuthConfig   `mapstructure:"auth"`
	Seed   SeedConfig   `mapstructure:"seed"`
}

type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

// SeedConfig sizes the generated fixture data.
type SeedConfig struct {
	Users    int   `mapstructure:"users"`
	Projects int   `mapstructure:"projects"`
	Groups   int   `mapstructure:"groups"`
	Scripts  int   `mapstructure:"scripts"`
	Running  int   `mapstructure:"running"`
	Random   int64 `mapstructure:"random_seed"`
}

func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", 8081)
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.idle_timeout", "60s")
	v.SetDefault("auth.jwt_secret", "change-this-in-production")
	v.SetDefault("auth.token_ttl", "24h")
	v.SetDefault("seed.users", 5)
	v.SetDefault("seed.projects", 4)
	v.SetDefault("seed.groups", 6)
	v.SetDefault("seed.scripts", 12)
	v.SetDefault("seed.running", 5)
	v.SetDefault("seed.random_seed", 0)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("demo")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("/etc/pipeforge")
	}

	v.SetEnvPrefix("PFDEMO")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
