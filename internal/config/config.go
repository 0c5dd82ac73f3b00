// Package config handles application configuration from environment variables.
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

// Config holds all application configuration.
type Config struct {
	Port                 string
	Env                  string
	LogLevel             slog.Level
	CitiesFile           string
	CacheTTL             time.Duration
	HTTPTimeout          time.Duration
	DefaultMaxDistanceKm float64
	DefaultTopK          int
	MaxTopK              int

	// Warnings collects non-fatal problems found while loading, for the
	// caller to log once its logger is configured.
	Warnings []error
}

// Load reads an optional .env file and then the environment, falling back to
// defaults for anything unset or unparsable. Variables already present in the
// environment take precedence over the .env file.
func Load(envFiles ...string) *Config {
	var warnings []error
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, os.ErrNotExist) {
		warnings = append(warnings, fmt.Errorf("reading .env file: %w", err))
	}

	return &Config{
		Warnings:             warnings,
		Port:                 getEnv("PORT", "3000"),
		Env:                  getEnv("ENV", "development"),
		LogLevel:             getLevelEnv("LOG_LEVEL", slog.LevelInfo),
		CitiesFile:           getEnv("CITIES_FILE", "data/cities.json"),
		CacheTTL:             getDurationEnv("CACHE_TTL_SECONDS", 120) * time.Second,
		HTTPTimeout:          getDurationEnv("HTTP_TIMEOUT_SECONDS", 15) * time.Second,
		DefaultMaxDistanceKm: getFloatEnv("DEFAULT_MAX_DISTANCE_KM", 300),
		DefaultTopK:          getIntEnv("DEFAULT_TOP_K", 5),
		MaxTopK:              getIntEnv("MAX_TOP_K", 50),
	}
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	var errs []error

	if c.CitiesFile == "" {
		errs = append(errs, errors.New("CITIES_FILE must be set"))
	}
	if c.CacheTTL <= 0 {
		errs = append(errs, fmt.Errorf("CACHE_TTL_SECONDS must be > 0, got %s", c.CacheTTL))
	}
	if c.HTTPTimeout <= 0 {
		errs = append(errs, fmt.Errorf("HTTP_TIMEOUT_SECONDS must be > 0, got %s", c.HTTPTimeout))
	}
	if !(c.DefaultMaxDistanceKm > 0) {
		errs = append(errs, fmt.Errorf("DEFAULT_MAX_DISTANCE_KM must be > 0, got %v", c.DefaultMaxDistanceKm))
	}
	if c.DefaultTopK <= 0 {
		errs = append(errs, fmt.Errorf("DEFAULT_TOP_K must be > 0, got %d", c.DefaultTopK))
	}
	if c.DefaultTopK > c.MaxTopK {
		errs = append(errs, fmt.Errorf("DEFAULT_TOP_K (%d) exceeds MAX_TOP_K (%d)", c.DefaultTopK, c.MaxTopK))
	}

	return errors.Join(errs...)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultSeconds int) time.Duration {
	if value := os.Getenv(key); value != "" {
		if seconds, err := strconv.Atoi(value); err == nil {
			return time.Duration(seconds)
		}
	}
	return time.Duration(defaultSeconds)
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getLevelEnv(key string, defaultValue slog.Level) slog.Level {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(value)); err != nil {
		return defaultValue
	}
	return level
}
