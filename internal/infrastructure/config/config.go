package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration. Values are read once at startup
// and injected into components at construction; nothing reads the
// environment afterwards.
type Config struct {
	Port    string
	DataDir string

	// External rate provider
	ProviderBaseURL string
	ProviderAPIKey  string
	ProviderTimeout time.Duration

	// Backfill pacing: one request per interval keeps the job under the
	// provider's published ceiling (6s for a 10-requests-per-minute limit).
	BackfillPause time.Duration

	LogLevel string
}

// Load reads configuration from environment variables, consulting a .env
// file first when present.
func Load() (*Config, error) {
	// Ignore a missing .env file; in production values come from the
	// environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		DataDir:         getEnv("DATA_DIR", "./data"),
		ProviderBaseURL: getEnv("CURRENCY_API_BASE_URL", "https://api.currencyapi.com/v3/historical"),
		ProviderAPIKey:  os.Getenv("CURRENCY_API_KEY"),
		ProviderTimeout: getEnvDuration("CURRENCY_API_TIMEOUT", 10*time.Second),
		BackfillPause:   getEnvDuration("BACKFILL_PAUSE", 6*time.Second),
		LogLevel:        getEnv("LOG_LEVEL", "INFO"),
	}

	if cfg.ProviderAPIKey == "" {
		return nil, fmt.Errorf("CURRENCY_API_KEY environment variable is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
