package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Earth Engine credential sources, tried in order: a mounted secrets
	// file, then the GEE_JSON_KEY environment variable.
	CredentialsFile string

	// Earth Engine request settings.
	EEBaseURL   string
	EETimeout   time.Duration
	EERateLimit float64 // requests per second against the maps endpoint
}

// Load reads configuration from environment variables, applying defaults
// where unset. A .env file in the working directory is merged first without
// overriding real environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load() // optional, for local development

	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	eeTimeout, err := parseDuration("EE_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}

	eeRateLimit, err := parseRateLimit()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		CredentialsFile: envOrDefault("GEE_CREDENTIALS_FILE", "secrets/gcp_service_account.json"),

		EEBaseURL:   envOrDefault("EE_BASE_URL", "https://earthengine.googleapis.com"),
		EETimeout:   eeTimeout,
		EERateLimit: eeRateLimit,
	}

	if cfg.EEBaseURL == "" {
		return nil, errors.New("EE_BASE_URL is required")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseRateLimit() (float64, error) {
	s := envOrDefault("EE_RATE_LIMIT", "5")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, errors.New("invalid EE_RATE_LIMIT")
	}
	return v, nil
}
