package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds server configuration. Values are loaded from environment
// variables with sensible defaults.
type Config struct {
	// Server
	Port     int
	LogLevel string

	// CORS
	AllowedOrigins []string

	// Ledger export parsing
	BankDateFormat string
	BookDateFormat string

	// Narrative analysis agent. Empty URL disables narrative generation.
	AnalysisAgentURL string
	HTTPTimeout      time.Duration
	MaxRetries       int
	InitialBackoff   time.Duration
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		Port:     getEnvInt("PORT", 8080),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		AllowedOrigins: []string{getEnv("CORS_ALLOWED_ORIGIN", "http://localhost:5173")},

		BankDateFormat: getEnv("BANK_DATE_FORMAT", "2/1/2006"),
		BookDateFormat: getEnv("BOOK_DATE_FORMAT", "2/1/2006"),

		AnalysisAgentURL: getEnv("ANALYSIS_AGENT_URL", ""),
		HTTPTimeout:      getEnvDuration("HTTP_TIMEOUT", 10*time.Second),
		MaxRetries:       getEnvInt("MAX_RETRIES", 2),
		InitialBackoff:   getEnvDuration("INITIAL_BACKOFF", 100*time.Millisecond),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
