package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the client
type Config struct {
	// API configuration
	API APIConfig

	// Session configuration
	Session SessionConfig

	// Translation configuration
	Translation TranslationConfig

	// Logging configuration
	Log LogConfig

	// Stub server configuration (local development)
	Stub StubConfig
}

// APIConfig holds backend API connection configuration
type APIConfig struct {
	BaseURL   string
	Timeout   time.Duration
	AuthMode  string // "bearer" or "headers"
	UserAgent string
}

// SessionConfig holds local session storage configuration
type SessionConfig struct {
	FilePath string // JSON file holding the stored user object and token
}

// TranslationConfig holds translation service configuration
type TranslationConfig struct {
	BaseURL        string
	TargetLanguage string
	MaxConcurrency int     // bounded fan-out for per-item translation
	RatePerSecond  float64 // requests per second toward the translation API
	RateBurst      int
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json or text
}

// StubConfig holds configuration for the local stub server
type StubConfig struct {
	Port           string
	AllowedOrigins []string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (for local development)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		API: APIConfig{
			BaseURL:   getEnv("VOYARA_API_BASE_URL", "http://localhost:8080/api"),
			Timeout:   getEnvAsDuration("VOYARA_API_TIMEOUT_SECONDS", 30),
			AuthMode:  getEnv("VOYARA_AUTH_MODE", "bearer"),
			UserAgent: getEnv("VOYARA_USER_AGENT", "voyara-client/1.0"),
		},
		Session: SessionConfig{
			FilePath: getEnv("VOYARA_SESSION_FILE", defaultSessionPath()),
		},
		Translation: TranslationConfig{
			BaseURL:        getEnv("VOYARA_TRANSLATE_BASE_URL", ""),
			TargetLanguage: getEnv("VOYARA_TRANSLATE_TARGET_LANG", "en"),
			MaxConcurrency: getEnvAsInt("VOYARA_TRANSLATE_MAX_CONCURRENCY", 4),
			RatePerSecond:  getEnvAsFloat("VOYARA_TRANSLATE_RATE_PER_SECOND", 5),
			RateBurst:      getEnvAsInt("VOYARA_TRANSLATE_RATE_BURST", 2),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Stub: StubConfig{
			Port:           getEnv("STUB_PORT", "8080"),
			AllowedOrigins: getEnvAsSlice("STUB_ALLOWED_ORIGINS", []string{"*"}),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("VOYARA_API_BASE_URL is required")
	}

	if c.API.AuthMode != "bearer" && c.API.AuthMode != "headers" {
		return fmt.Errorf("invalid auth mode: %s (must be 'bearer' or 'headers')", c.API.AuthMode)
	}

	if c.Translation.MaxConcurrency < 1 {
		return fmt.Errorf("VOYARA_TRANSLATE_MAX_CONCURRENCY must be at least 1")
	}

	if c.Translation.RatePerSecond <= 0 {
		return fmt.Errorf("VOYARA_TRANSLATE_RATE_PER_SECOND must be positive")
	}

	return nil
}

func defaultSessionPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".voyara-session.json"
	}
	return home + "/.voyara/session.json"
}

// Helper functions to get environment variables

func getEnv(key string, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid integer value for %s, using default: %d", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Invalid float value for %s, using default: %f", key, defaultValue)
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultSeconds int) time.Duration {
	return time.Duration(getEnvAsInt(key, defaultSeconds)) * time.Second
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var result []string
	for _, v := range strings.Split(valueStr, ",") {
		trimmed := strings.TrimSpace(v)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return defaultValue
	}
	return result
}
