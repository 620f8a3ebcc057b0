// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"fmt"
	"os"
	"strconv"

	"deckgen/internal/ai"
)

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// PostgreSQL connection
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Valkey (Redis-compatible cache)
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string

	// AI provider settings. AIProvider selects the active provider;
	// Providers holds the per-provider credentials, keyed by name.
	AIProvider string
	Providers  map[string]ai.ProviderConfig

	// Pexels image search
	PexelsAPIKey  string
	PexelsBaseURL string

	// Optional S3-compatible archive for rendered decks
	S3Endpoint  string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string

	// Background generation
	GenWorkers int
	GenBacklog int
}

// Load reads configuration from environment variables, applying defaults
// for development where appropriate. Returns an error if critical values
// are missing in production mode.
func Load() (*Config, error) {
	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		DBHost:     envOrDefault("POSTGRES_HOST", "localhost"),
		DBPort:     envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:     envOrDefault("POSTGRES_USER", "deckgen"),
		DBPassword: envOrDefault("POSTGRES_PASSWORD", "changeme"),
		DBName:     envOrDefault("POSTGRES_DB", "deckgen"),

		ValkeyHost:     envOrDefault("VALKEY_HOST", "localhost"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		AIProvider: envOrDefault("AI_PROVIDER", "openai"),
		Providers: map[string]ai.ProviderConfig{
			"openai": {
				APIKey:  os.Getenv("OPENAI_API_KEY"),
				Model:   envOrDefault("OPENAI_MODEL", "gpt-4o"),
				BaseURL: os.Getenv("OPENAI_BASE_URL"),
			},
			"gemini": {
				APIKey:  os.Getenv("GEMINI_API_KEY"),
				Model:   envOrDefault("GEMINI_MODEL", "gemini-2.0-flash"),
				BaseURL: os.Getenv("GEMINI_BASE_URL"),
			},
			"claude": {
				APIKey:  os.Getenv("CLAUDE_API_KEY"),
				Model:   envOrDefault("CLAUDE_MODEL", "claude-sonnet-4-20250514"),
				BaseURL: os.Getenv("CLAUDE_BASE_URL"),
			},
			"mistral": {
				APIKey:  os.Getenv("MISTRAL_API_KEY"),
				Model:   envOrDefault("MISTRAL_MODEL", "mistral-large-latest"),
				BaseURL: os.Getenv("MISTRAL_BASE_URL"),
			},
		},

		PexelsAPIKey:  os.Getenv("PEXELS_API_KEY"),
		PexelsBaseURL: os.Getenv("PEXELS_BASE_URL"),

		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		S3Region:    envOrDefault("S3_REGION", "us-east-1"),
		S3AccessKey: os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("S3_SECRET_KEY"),
		S3Bucket:    envOrDefault("S3_BUCKET", "deckgen-decks"),

		GenWorkers: envOrDefaultInt("GEN_WORKERS", 2),
		GenBacklog: envOrDefaultInt("GEN_BACKLOG", 64),
	}

	if cfg.Env == "production" {
		if cfg.DBPassword == "changeme" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
	}
	if cfg.GenWorkers < 1 || cfg.GenBacklog < 1 {
		return nil, fmt.Errorf("GEN_WORKERS and GEN_BACKLOG must be positive")
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// envOrDefaultInt reads an integer environment variable, returning a
// fallback if unset, empty, or unparseable.
func envOrDefaultInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
