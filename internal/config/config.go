package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Platform API Configuration
	API APIConfig

	// Web Console Configuration
	Console ConsoleConfig

	// Logging Configuration
	Logging LoggingConfig
}

// APIConfig describes the platform backend
type APIConfig struct {
	URL     string        // base including the /api/v1 prefix
	Timeout time.Duration // per request
}

// ConsoleConfig holds web console configuration
type ConsoleConfig struct {
	Addr           string
	AllowedOrigins []string
	// JWTSecret, when set, makes the console verify token signatures instead of only decoding them
	JWTSecret    string
	SecureCookie bool
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string // empty means the binary's default
	Format string // json, console
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env files (fails silently if files don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	timeout := 30 * time.Second
	if raw := os.Getenv("LABSHARE_HTTP_TIMEOUT"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid LABSHARE_HTTP_TIMEOUT %q: %w", raw, err)
		}
		if parsed <= 0 {
			return nil, fmt.Errorf("LABSHARE_HTTP_TIMEOUT must be positive, got %s", parsed)
		}
		timeout = parsed
	}

	return &Config{
		API: APIConfig{
			URL:     envOr("LABSHARE_API_URL", "http://localhost:8000/api/v1"),
			Timeout: timeout,
		},
		Console: ConsoleConfig{
			Addr:           envOr("LABSHARE_CONSOLE_ADDR", ":8080"),
			AllowedOrigins: splitList(envOr("LABSHARE_ALLOWED_ORIGINS", "http://localhost:5173")),
			JWTSecret:      os.Getenv("LABSHARE_JWT_SECRET"),
			SecureCookie:   strings.EqualFold(os.Getenv("LABSHARE_SECURE_COOKIE"), "true"),
		},
		Logging: LoggingConfig{
			Level:  os.Getenv("LABSHARE_LOG_LEVEL"),
			Format: envOr("LABSHARE_LOG_FORMAT", "json"),
		},
	}, nil
}

// APIURLFromEnv reports the API base set explicitly in the environment, if any
func APIURLFromEnv() (string, bool) {
	url := os.Getenv("LABSHARE_API_URL")
	return url, url != ""
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
