package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds server configuration read from environment variables
type Config struct {
	// Host is the listen host
	Host string `env:"CHARKEEP_HOST" envDefault:""`
	// Port is the listen port
	Port int `env:"CHARKEEP_PORT" envDefault:"8080"`

	// StorageType selects the storage backend: memory, sqlite or redis
	StorageType string `env:"CHARKEEP_STORAGE" envDefault:"sqlite"`
	// SQLitePath is the database file path for the sqlite backend
	SQLitePath string `env:"CHARKEEP_SQLITE_PATH" envDefault:"charkeep.db"`
	// RedisURL is the connection URL for the redis backend
	RedisURL string `env:"CHARKEEP_REDIS_URL" envDefault:"redis://localhost:6379"`

	// JWTSecret signs issued tokens
	JWTSecret string `env:"CHARKEEP_JWT_SECRET"`
	// JWTIssuer is the iss claim on issued tokens
	JWTIssuer string `env:"CHARKEEP_JWT_ISSUER" envDefault:"charkeep"`
	// AccessTTL is the access token lifetime
	AccessTTL time.Duration `env:"CHARKEEP_ACCESS_TTL" envDefault:"15m"`
	// RefreshTTL is the refresh token lifetime
	RefreshTTL time.Duration `env:"CHARKEEP_REFRESH_TTL" envDefault:"168h"`
}

// Load parses configuration from the environment
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env config: %w", err)
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("CHARKEEP_JWT_SECRET is required")
	}
	return cfg, nil
}
