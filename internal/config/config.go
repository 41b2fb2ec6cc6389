// Package config loads runtime configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config carries everything the server needs to start.
type Config struct {
	Port      string
	DBPath    string
	JWTSecret string
	TokenTTL  time.Duration

	// RedisAddr enables trip-change event publishing when non-empty.
	RedisAddr string

	// GeminiAPIKey / GeminiURL configure the optional expense-parsing
	// collaborator. Parsing endpoints return 503 when the key is unset.
	GeminiAPIKey string
	GeminiURL    string

	LogLevel string
}

// Load reads the .env file (if present) and returns a Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, relying on system env variables")
	}

	return &Config{
		Port:         getEnv("PORT", "8080"),
		DBPath:       getEnv("DB_PATH", "./data/splitter.db"),
		JWTSecret:    getEnv("JWT_SECRET", ""),
		TokenTTL:     getDuration("TOKEN_TTL", 24*time.Hour),
		RedisAddr:    getEnv("REDIS_ADDR", ""),
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiURL:    getEnv("GEMINI_URL", "https://generativelanguage.googleapis.com"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		slog.Warn("invalid duration in env, using fallback", "key", key, "value", value)
		return fallback
	}
	return d
}
