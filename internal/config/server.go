package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// ServerConfig is the API process configuration, read from the environment
// and an optional .env file.
type ServerConfig struct {
	// Server
	Port string `mapstructure:"API_PORT"`
	Env  string `mapstructure:"API_ENV"`

	// Leagues
	LeagueDir string `mapstructure:"LEAGUE_DIR"`

	// CORS
	CorsOrigins []string `mapstructure:"CORS_ORIGINS"`

	// Result cache; an empty REDIS_URL keeps results in memory.
	RedisURL string        `mapstructure:"REDIS_URL"`
	CacheTTL time.Duration `mapstructure:"CACHE_TTL"`

	// Optimization
	SolveTimeout time.Duration `mapstructure:"SOLVE_TIMEOUT"`
	MaxPlayers   int           `mapstructure:"MAX_PLAYERS"`

	// Logging
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`
}

func LoadServerConfig() (*ServerConfig, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("..")

	v.SetDefault("API_PORT", "8080")
	v.SetDefault("API_ENV", "development")
	v.SetDefault("LEAGUE_DIR", "leagues")
	v.SetDefault("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000")
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("CACHE_TTL", "1h")
	v.SetDefault("SOLVE_TIMEOUT", "30s")
	v.SetDefault("MAX_PLAYERS", 5000)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "")

	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg ServerConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Parse CORS origins from comma-separated string
	cfg.CorsOrigins = nil
	for _, o := range strings.Split(v.GetString("CORS_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CorsOrigins = append(cfg.CorsOrigins, o)
		}
	}

	if cfg.CacheTTL <= 0 {
		return nil, fmt.Errorf("CACHE_TTL must be positive, got %s", cfg.CacheTTL)
	}
	if cfg.MaxPlayers <= 0 {
		return nil, fmt.Errorf("MAX_PLAYERS must be positive, got %d", cfg.MaxPlayers)
	}
	return &cfg, nil
}

func (c *ServerConfig) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *ServerConfig) IsProduction() bool {
	return c.Env == "production"
}
