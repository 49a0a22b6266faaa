// Package config loads runtime configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port       string `env:"PORT" envDefault:"8080"`
	CORSOrigin string `env:"CORS_ORIGIN" envDefault:"http://localhost:5173"`

	DatabaseDSN string `env:"DATABASE_DSN" envDefault:"host=localhost user=postgres password=password dbname=jobdeck port=5432 sslmode=disable"`

	// RedisURL enables the listing cache when set (redis://host:port).
	RedisURL string        `env:"REDIS_URL"`
	CacheTTL time.Duration `env:"CACHE_TTL" envDefault:"30s"`

	GeminiAPIKey      string `env:"GEMINI_API_KEY"`
	AIModel           string `env:"AI_MODEL" envDefault:"gemini-2.5-flash"`
	AIMaxOutputTokens int    `env:"AI_MAX_OUTPUT_TOKENS" envDefault:"600"`
}

// Load reads .env when present (missing is fine in production) and parses the
// environment into a Config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
