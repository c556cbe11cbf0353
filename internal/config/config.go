// Package config reads service configuration from the environment.
package config

import (
	"os"
	"strconv"
)

// Config holds everything main needs to wire the service.
type Config struct {
	HTTPAddr  string // listen address for the API
	TopUpHour int    // UTC hour for the nightly bundle top-up
	LogLevel  string // "debug", "info", "warn", "error"

	// BundleImportFile, when set, points at an xlsx/csv file of bundle
	// membership rows to import at startup.
	BundleImportFile string
}

// Load reads configuration from env vars, applying defaults. Database
// settings (DB_TYPE, DATABASE_URL, SQLITE_PATH) are read by the database
// package directly.
func Load() Config {
	return Config{
		HTTPAddr:         envOr("HTTP_ADDR", ":8080"),
		TopUpHour:        envIntOr("TOPUP_HOUR", 3),
		LogLevel:         envOr("LOG_LEVEL", "info"),
		BundleImportFile: os.Getenv("BUNDLE_IMPORT_FILE"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
