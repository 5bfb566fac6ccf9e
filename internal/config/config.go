// Package config reads server settings from the environment. A .env file
// in the working directory, when present, is loaded first; variables that
// are already set win over the file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends.
const (
	StorageMemory = "memory"
	StorageSQLite = "sqlite"
)

type Config struct {
	Port      int
	LogLevel  slog.Level
	LogFormat string // "text" or "json"

	Storage string // StorageMemory or StorageSQLite
	DBPath  string

	CatalogCacheSize int
	CatalogCacheTTL  time.Duration

	RateLimitRequests int // 0 disables rate limiting
	RateLimitWindow   time.Duration

	ShutdownTimeout time.Duration
}

// Load primes the environment from .env and parses it.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return fromEnv()
}

func fromEnv() (*Config, error) {
	var errs []error

	cfg := &Config{
		Port:              intVar("PORT", 8080, &errs),
		LogFormat:         strings.ToLower(getEnv("LOG_FORMAT", "text")),
		Storage:           strings.ToLower(getEnv("STORAGE", StorageSQLite)),
		DBPath:            getEnv("DB_PATH", "data/filmorate.db"),
		CatalogCacheSize:  intVar("CATALOG_CACHE_SIZE", 128, &errs),
		CatalogCacheTTL:   durationVar("CATALOG_CACHE_TTL", 10*time.Minute, &errs),
		RateLimitRequests: intVar("RATE_LIMIT_REQUESTS", 100, &errs),
		RateLimitWindow:   durationVar("RATE_LIMIT_WINDOW", time.Minute, &errs),
		ShutdownTimeout:   durationVar("SHUTDOWN_TIMEOUT", 30*time.Second, &errs),
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		errs = append(errs, fmt.Errorf("LOG_LEVEL: %w", err))
	}

	errs = append(errs, cfg.validate()...)
	if len(errs) > 0 {
		return nil, fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return cfg, nil
}

func (c *Config) validate() []error {
	var errs []error
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT: %d out of range", c.Port))
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		errs = append(errs, fmt.Errorf("LOG_FORMAT: want text or json, got %q", c.LogFormat))
	}
	if c.Storage != StorageMemory && c.Storage != StorageSQLite {
		errs = append(errs, fmt.Errorf("STORAGE: want %s or %s, got %q", StorageMemory, StorageSQLite, c.Storage))
	}
	if c.Storage == StorageSQLite && c.DBPath == "" {
		errs = append(errs, errors.New("DB_PATH: required for sqlite storage"))
	}
	if c.CatalogCacheSize < 1 {
		errs = append(errs, fmt.Errorf("CATALOG_CACHE_SIZE: must be positive, got %d", c.CatalogCacheSize))
	}
	if c.CatalogCacheTTL <= 0 {
		errs = append(errs, fmt.Errorf("CATALOG_CACHE_TTL: must be positive, got %s", c.CatalogCacheTTL))
	}
	if c.RateLimitRequests < 0 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_REQUESTS: must not be negative, got %d", c.RateLimitRequests))
	}
	if c.RateLimitRequests > 0 && c.RateLimitWindow <= 0 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_WINDOW: must be positive, got %s", c.RateLimitWindow))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, fmt.Errorf("SHUTDOWN_TIMEOUT: must be positive, got %s", c.ShutdownTimeout))
	}
	return errs
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intVar(key string, fallback int, errs *[]error) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %q is not an integer", key, raw))
		return fallback
	}
	return n
}

func durationVar(key string, fallback time.Duration, errs *[]error) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %q is not a duration", key, raw))
		return fallback
	}
	return d
}
