// Package config loads the service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

type Config struct {
	AppEnv      string `env:"APP_ENV" default:"development"`
	Port        string `env:"PORT" default:"8080"`
	DatabaseURL string `env:"DATABASE_URL"`
	LogLevel    string `env:"LOG_LEVEL" default:"info"`
	LogFormat   string `env:"LOG_FORMAT" default:"text"`

	// Sentiment analysis pass-through; leaving the endpoint empty disables
	// the /sentiments route.
	SentimentEndpoint   string        `env:"SENTIMENT_ENDPOINT"`
	SentimentAPIKey     string        `env:"SENTIMENT_API_KEY"`
	SentimentTimeout    time.Duration `env:"SENTIMENT_TIMEOUT" default:"15s"`
	SentimentRateLimit  int           `env:"SENTIMENT_RATE_LIMIT" default:"5"`
	SentimentRateWindow time.Duration `env:"SENTIMENT_RATE_WINDOW" default:"60s"`
	SentimentCacheTTL   time.Duration `env:"SENTIMENT_CACHE_TTL" default:"15m"`
	SentimentCacheSize  int           `env:"SENTIMENT_CACHE_SIZE" default:"100"`

	// Coarse limiter applied to the whole API, separate from the
	// per-client sentiment limiter.
	APIRatePerSecond float64 `env:"API_RATE_PER_SECOND" default:"20"`
	APIRateBurst     int     `env:"API_RATE_BURST" default:"40"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SentimentEnabled reports whether the sentiment pass-through is configured.
func (c *Config) SentimentEnabled() bool {
	return c.SentimentEndpoint != ""
}

func validate(cfg *Config) error {
	if cfg.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required")
	}

	if cfg.SentimentEndpoint != "" && cfg.SentimentAPIKey == "" {
		return errors.New("SENTIMENT_API_KEY is required when SENTIMENT_ENDPOINT is set")
	}

	if cfg.SentimentRateLimit < 1 {
		return errors.New("SENTIMENT_RATE_LIMIT must be at least 1")
	}
	if cfg.SentimentCacheSize < 1 {
		return errors.New("SENTIMENT_CACHE_SIZE must be at least 1")
	}

	return nil
}
