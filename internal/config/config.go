// Package config manages runtime configuration for the flow editing
// service, loading settings from environment variables with sensible
// defaults
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds configuration settings for the editing service
type Config struct {
	APIHost         string
	LogLevel        string
	APIPort         int
	LayoutCacheSize int
	ShutdownTimeout time.Duration
}

const (
	DefaultAPIHost         = "0.0.0.0"
	DefaultAPIPort         = 5000
	DefaultLayoutCacheSize = 1024
	DefaultShutdownTimeout = 10 * time.Second

	MaxTCPPort         = 65535
	MaxLayoutCacheSize = 1_000_000
)

var (
	ErrInvalidAPIPort         = errors.New("invalid API port")
	ErrInvalidLayoutCacheSize = errors.New("layout cache size must be positive")
)

// NewDefaultConfig creates a configuration with defaults for all
// service settings
func NewDefaultConfig() *Config {
	return &Config{
		APIHost:         DefaultAPIHost,
		APIPort:         DefaultAPIPort,
		LayoutCacheSize: DefaultLayoutCacheSize,
		ShutdownTimeout: DefaultShutdownTimeout,
		LogLevel:        "info",
	}
}

// LoadFromEnv populates configuration values from environment
// variables. Returns an error if any env var cannot be parsed
func (c *Config) LoadFromEnv() error {
	if apiHost := os.Getenv("API_HOST"); apiHost != "" {
		c.APIHost = apiHost
	}
	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		c.LogLevel = logLevel
	}

	if err := loadInt("API_PORT", &c.APIPort); err != nil {
		return err
	}
	if err := loadInt("LAYOUT_CACHE_SIZE", &c.LayoutCacheSize); err != nil {
		return err
	}
	if err := loadDuration(
		"SHUTDOWN_TIMEOUT", &c.ShutdownTimeout,
	); err != nil {
		return err
	}

	return c.Validate()
}

// Validate checks that the configuration values are within bounds
func (c *Config) Validate() error {
	if c.APIPort <= 0 || c.APIPort > MaxTCPPort {
		return fmt.Errorf("%w: %d", ErrInvalidAPIPort, c.APIPort)
	}
	if c.LayoutCacheSize <= 0 || c.LayoutCacheSize > MaxLayoutCacheSize {
		return fmt.Errorf(
			"%w: %d", ErrInvalidLayoutCacheSize, c.LayoutCacheSize,
		)
	}
	return nil
}

func loadInt(name string, into *int) error {
	raw := os.Getenv(name)
	if raw == "" {
		return nil
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", name, err)
	}
	*into = val
	return nil
}

func loadDuration(name string, into *time.Duration) error {
	raw := os.Getenv(name)
	if raw == "" {
		return nil
	}
	val, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", name, err)
	}
	*into = val
	return nil
}
