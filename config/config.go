package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration. Every field has a default, so
// an empty environment serves data/portfolio.json on port 3001.
type Config struct {
	Port     string
	DataFile string
	Backend  string
	Env      string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisKey      string

	StaticDir      string
	MaxBodyBytes   int64
	SeedIfMissing  bool
	MetricsEnabled bool
}

// Production reports whether the server runs with APP_ENV=prod.
func (c *Config) Production() bool {
	return c.Env == "prod" || c.Env == "production"
}

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{
		Port:          env("PORT", "3001"),
		DataFile:      env("DATA_FILE", "data/portfolio.json"),
		Backend:       env("STORE_BACKEND", "json"),
		Env:           env("APP_ENV", "dev"),
		RedisAddr:     env("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisKey:      env("REDIS_KEY", "portfolio:document"),
		StaticDir:     os.Getenv("STATIC_DIR"),
	}

	var err error
	if cfg.RedisDB, err = strconv.Atoi(env("REDIS_DB", "0")); err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}
	if cfg.MaxBodyBytes, err = strconv.ParseInt(env("MAX_BODY_BYTES", "102400"), 10, 64); err != nil {
		return nil, fmt.Errorf("invalid MAX_BODY_BYTES: %w", err)
	}
	if cfg.SeedIfMissing, err = strconv.ParseBool(env("SEED_IF_MISSING", "true")); err != nil {
		return nil, fmt.Errorf("invalid SEED_IF_MISSING: %w", err)
	}
	if cfg.MetricsEnabled, err = strconv.ParseBool(env("METRICS_ENABLED", "true")); err != nil {
		return nil, fmt.Errorf("invalid METRICS_ENABLED: %w", err)
	}
	return cfg, nil
}
