// Package config provides client configuration from environment variables and .env files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the client configuration.
type Config struct {
	App    AppConfig
	Logger LoggerConfig
	API    APIConfig
	Push   PushConfig
	State  StateConfig
	Data   DataConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// APIConfig holds remote service client configuration.
type APIConfig struct {
	// BaseURL is the versioned base path of the forum API, e.g. http://localhost:5000/api
	BaseURL string
	Timeout time.Duration
	// Outbound rate limit (requests per second, burst).
	RPS   float64
	Burst int
}

// PushConfig holds push channel configuration.
type PushConfig struct {
	// URL of the event stream endpoint. Defaults to {api base}/events.
	URL string
	// Reconnection policy, exposed as configuration rather than hidden defaults.
	ReconnectAttempts int
	ReconnectDelay    time.Duration
}

// StateConfig holds state layer tuning.
type StateConfig struct {
	// ErrorTTL is how long a slice-level error message lingers before it is
	// cleared automatically.
	ErrorTTL time.Duration
}

// DataConfig holds durable local storage configuration.
type DataConfig struct {
	// Dir is the directory for the local badger store (session, vote cache).
	Dir string
}

// Load builds configuration with precedence: environment variables, then the
// .env file, then defaults. An empty envFile skips .env loading.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		// Missing .env is fine; real env vars still apply.
		_ = godotenv.Load(envFile)
	}

	cfg := &Config{
		App: AppConfig{
			Environment: getEnv("PARLEY_ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getEnv("PARLEY_LOG_LEVEL", "info"),
		},
		API: APIConfig{
			BaseURL: getEnv("PARLEY_API_URL", "http://localhost:5000/api"),
			RPS:     getFloatEnv("PARLEY_API_RPS", 10),
			Burst:   getIntEnv("PARLEY_API_BURST", 20),
		},
		Push: PushConfig{
			URL:               getEnv("PARLEY_PUSH_URL", ""),
			ReconnectAttempts: getIntEnv("PARLEY_PUSH_RECONNECT_ATTEMPTS", 5),
		},
		Data: DataConfig{
			Dir: getEnv("PARLEY_DATA_DIR", ""),
		},
	}

	var err error
	if cfg.API.Timeout, err = getDurationEnv("PARLEY_API_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.Push.ReconnectDelay, err = getDurationEnv("PARLEY_PUSH_RECONNECT_DELAY", time.Second); err != nil {
		return nil, err
	}
	if cfg.State.ErrorTTL, err = getDurationEnv("PARLEY_ERROR_TTL", 5*time.Second); err != nil {
		return nil, err
	}

	if cfg.Push.URL == "" {
		cfg.Push.URL = strings.TrimSuffix(cfg.API.BaseURL, "/") + "/events"
	}

	if err := cfg.expandDataDir(); err != nil {
		return nil, fmt.Errorf("invalid data dir: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.API.BaseURL == "" {
		return errors.New("API base URL is required")
	}
	if c.API.RPS <= 0 || c.API.Burst <= 0 {
		return errors.New("API rate limit must be positive")
	}
	if c.Push.ReconnectAttempts < 0 {
		return errors.New("push reconnect attempts cannot be negative")
	}
	if c.State.ErrorTTL <= 0 {
		return errors.New("error TTL must be positive")
	}

	return nil
}

// expandDataDir expands ~ and makes the path absolute.
// Defaults to ~/.parley when unset.
func (c *Config) expandDataDir() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	path := c.Data.Dir
	if path == "" {
		path = filepath.Join(homeDir, ".parley")
	}
	if strings.HasPrefix(path, "~/") {
		path = filepath.Join(homeDir, path[2:])
	}
	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	c.Data.Dir = filepath.Clean(path)
	return nil
}

// getEnv returns the environment value or a default.
func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

// getIntEnv returns an int from the environment or a default.
func getIntEnv(key string, defaultValue int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue
	}
	return n
}

// getFloatEnv returns a float from the environment or a default.
func getFloatEnv(key string, defaultValue float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return defaultValue
	}
	return f
}

// getDurationEnv returns a duration from the environment or a default.
// Unlike the other helpers a malformed value is an error, not a silent
// fallback, since a bad duration usually means a typo worth surfacing.
func getDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}
