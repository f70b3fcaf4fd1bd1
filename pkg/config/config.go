// Package config provides SDK configuration management with environment
// variable loading, validation, and sensible defaults. It supports .env
// files for local development and validates all settings up front so a
// misconfigured consumer fails at startup rather than on the first request.
//
// Configuration is loaded from environment variables with the Load()
// function, which returns a validated Config struct or an error.
//
// Example usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal().Err(err).Msg("Failed to load configuration")
//	}
//	client, err := devigo.New(cfg)
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Session storage backend names accepted in SESSION_BACKEND.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

// Config holds all configuration for the SDK. It aggregates all
// configuration sections into a single struct for easy access.
type Config struct {
	API     APIConfig
	CDN     CDNConfig
	Session SessionConfig
	Redis   RedisConfig
}

// APIConfig holds the Devigo backend API settings.
//
// BaseURL is the root the endpoint paths are appended to; paths keep their
// trailing slashes because the backend treats them as significant.
type APIConfig struct {
	BaseURL   string
	Timeout   time.Duration // Transport-level request timeout
	UserAgent string
}

// CDNConfig holds the image CDN settings used when deriving absolute image
// URLs from bare storage identifiers.
type CDNConfig struct {
	BaseURL string
}

// SessionConfig selects where the persisted session (tokens and cached
// profile) lives.
type SessionConfig struct {
	Backend  string // "memory", "file", or "redis"
	FilePath string // Backing file for the file backend
}

// RedisConfig holds Redis connection parameters for the redis session
// backend. Ignored for the other backends.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Prefix   string // Key prefix namespacing SDK keys in a shared instance
}

// Load reads and validates configuration from environment variables.
// It attempts to load a .env file if present (for local development) but
// doesn't fail if the file is missing (for production deployments).
//
// Required environment variables:
//   - DEVIGO_API_BASE_URL: Root URL of the Devigo backend API
//
// Optional environment variables have sensible defaults. Returns an error
// if any required variable is missing or if validation fails.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	_ = godotenv.Load()

	baseURL, err := getEnvRequired("DEVIGO_API_BASE_URL")
	if err != nil {
		return nil, err
	}

	config := &Config{
		API: APIConfig{
			BaseURL:   baseURL,
			Timeout:   getEnvAsDuration("DEVIGO_HTTP_TIMEOUT", 30*time.Second),
			UserAgent: getEnv("DEVIGO_USER_AGENT", "devigo-go/1.0"),
		},
		CDN: CDNConfig{
			BaseURL: getEnv("DEVIGO_CDN_BASE_URL", "https://res.cloudinary.com/devigo/image/upload"),
		},
		Session: SessionConfig{
			Backend:  getEnv("DEVIGO_SESSION_BACKEND", BackendFile),
			FilePath: getEnv("DEVIGO_SESSION_FILE", defaultSessionFile()),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Prefix:   getEnv("REDIS_KEY_PREFIX", "devigo:"),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// Validate checks if all required configuration is present and valid.
// This method is called automatically by Load() but can also be called
// independently when a Config is built by hand.
//
// Returns an error describing the first validation failure encountered,
// or nil if all configuration is valid.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("API base URL is required")
	}
	parsed, err := url.ParseRequestURI(c.API.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid API base URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("API base URL must be http or https")
	}

	if c.API.Timeout <= 0 {
		return fmt.Errorf("HTTP timeout must be positive")
	}

	if c.CDN.BaseURL != "" {
		if _, err := url.ParseRequestURI(c.CDN.BaseURL); err != nil {
			return fmt.Errorf("invalid CDN base URL: %w", err)
		}
	}

	switch c.Session.Backend {
	case BackendMemory:
	case BackendFile:
		if c.Session.FilePath == "" {
			return fmt.Errorf("session file path is required for the file backend")
		}
	case BackendRedis:
		if _, err := strconv.Atoi(c.Redis.Port); err != nil {
			return fmt.Errorf("redis port must be a valid integer: %w", err)
		}
	default:
		return fmt.Errorf("unknown session backend %q", c.Session.Backend)
	}

	return nil
}

// Address returns the Redis server address in "host:port" format.
//
// Example:
//
//	client := redis.NewClient(&redis.Options{
//	    Addr: cfg.Redis.Address(),
//	})
func (c *RedisConfig) Address() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// defaultSessionFile places the session file under the user config
// directory, falling back to the working directory when it is unknown.
func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".devigo-session.json"
	}
	return dir + "/devigo/session.json"
}

// Helper functions for environment variable parsing

// getEnv retrieves an environment variable with a default fallback.
// Returns the environment variable value if set, otherwise returns defaultValue.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvRequired retrieves a required environment variable.
// Returns an error if the variable is not set or is empty.
func getEnvRequired(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("required environment variable %s is not set", key)
	}
	return value, nil
}

// getEnvAsInt retrieves an environment variable as an integer with a default fallback.
// If the variable is not set or cannot be parsed as an integer, returns defaultValue.
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDuration retrieves an environment variable as a time.Duration with
// a default fallback. Supports Go duration format: "300ms", "1.5h", "2h45m".
// If the variable is not set or cannot be parsed, returns defaultValue.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
