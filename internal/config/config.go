// Package config loads server settings from the environment.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the server settings. Every field has a default usable
// for local development.
type Config struct {
	Port            string
	UploadDir       string
	ExportDir       string
	CORSOrigin      string
	MaxUploadMB     int
	RateLimitMax    int
	RateLimitWindow time.Duration
	LogLevel        string
}

// Load reads settings from the environment, falling back to defaults
// for anything unset or unparsable.
func Load() Config {
	return Config{
		Port:            getEnv("PORT", "8080"),
		UploadDir:       getEnv("UPLOAD_DIR", "uploads"),
		ExportDir:       getEnv("EXPORT_DIR", "exports"),
		CORSOrigin:      getEnv("CORS_ORIGIN", "*"),
		MaxUploadMB:     getEnvInt("MAX_UPLOAD_MB", 32),
		RateLimitMax:    getEnvInt("RATE_LIMIT_MAX", 20),
		RateLimitWindow: time.Duration(getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60)) * time.Second,
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}
}

// Addr returns the listen address for the configured port.
func (c Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}
