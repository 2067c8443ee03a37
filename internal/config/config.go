package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the scorecard service
type Config struct {
	Server     ServerConfig
	Catalog    CatalogConfig
	Delivery   DeliveryConfig
	Validation ValidationConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host           string
	Port           int
	AllowedOrigins []string
}

// CatalogConfig holds question catalog configuration
type CatalogConfig struct {
	Path           string        // file or directory of catalog fragments
	ReloadInterval time.Duration // 0 disables polling for changes
}

// DeliveryConfig holds the report delivery service configuration
type DeliveryConfig struct {
	BaseURL     string
	Endpoint    string
	APIKey      string
	Timeout     time.Duration
	MaxAttempts int
	RetryDelay  time.Duration
}

// ValidationConfig holds input validation switches
type ValidationConfig struct {
	BlockPersonalEmail bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host:           getEnv("SERVER_HOST", "0.0.0.0"),
			Port:           getEnvAsInt("SERVER_PORT", 8080),
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		},
		Catalog: CatalogConfig{
			Path:           getEnv("CATALOG_PATH", "./catalog/scorecard.yaml"),
			ReloadInterval: getEnvAsDuration("CATALOG_RELOAD_INTERVAL", 0),
		},
		Delivery: DeliveryConfig{
			BaseURL:     getEnv("DELIVERY_BASE_URL", "http://localhost:3000"),
			Endpoint:    getEnv("DELIVERY_ENDPOINT", "generate-pdf"),
			APIKey:      getEnv("DELIVERY_API_KEY", ""),
			Timeout:     getEnvAsDuration("DELIVERY_TIMEOUT", 10*time.Second),
			MaxAttempts: getEnvAsInt("DELIVERY_MAX_ATTEMPTS", 2),
			RetryDelay:  getEnvAsDuration("DELIVERY_RETRY_DELAY", 500*time.Millisecond),
		},
		Validation: ValidationConfig{
			BlockPersonalEmail: getEnvAsBool("VALIDATION_BLOCK_PERSONAL_EMAIL", true),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Catalog.Path == "" {
		return fmt.Errorf("catalog path is required")
	}

	if c.Catalog.ReloadInterval < 0 {
		return fmt.Errorf("catalog reload interval cannot be negative: %s", c.Catalog.ReloadInterval)
	}

	u, err := url.Parse(c.Delivery.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid delivery base URL: %q", c.Delivery.BaseURL)
	}

	if c.Delivery.Timeout <= 0 {
		return fmt.Errorf("delivery timeout must be positive: %s", c.Delivery.Timeout)
	}

	// One retry by default, never more than two
	if c.Delivery.MaxAttempts < 1 || c.Delivery.MaxAttempts > 3 {
		return fmt.Errorf("delivery max attempts must be 1..3: %d", c.Delivery.MaxAttempts)
	}

	if c.Delivery.RetryDelay < 0 {
		return fmt.Errorf("delivery retry delay cannot be negative: %s", c.Delivery.RetryDelay)
	}

	return nil
}

// Address returns the host:port the server listens on
func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
