package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration.
type Config struct {
	Server      ServerConfig
	Integration IntegrationConfig
	Logging     LogConfig
	RateLimit   RateLimitConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port string `envconfig:"PORT" default:"8000"`
	Host string `envconfig:"HOST" default:"0.0.0.0"`
}

// IntegrationConfig holds the defaults and limits applied to integration
// requests.
type IntegrationConfig struct {
	AbsTolerance   float64       `envconfig:"INTEGRATION_ABS_TOL" default:"0.01"`
	RelTolerance   float64       `envconfig:"INTEGRATION_REL_TOL" default:"0.01"`
	MaxDepth       int           `envconfig:"INTEGRATION_MAX_DEPTH" default:"2048"`
	MaxEvaluations int           `envconfig:"INTEGRATION_MAX_EVALS" default:"2000000"`
	MaxSamples     int           `envconfig:"INTEGRATION_MAX_SAMPLES" default:"5000000"`
	Timeout        time.Duration `envconfig:"INTEGRATION_TIMEOUT" default:"10s"`
	PoolSize       int           `envconfig:"INTEGRATION_POOL_SIZE" default:"4"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// RateLimitConfig holds rate limiting configuration. The per-client limit
// covers every route; ComputeRequestsPerSecond additionally caps the total
// rate of integration requests across all clients.
type RateLimitConfig struct {
	RequestsPerSecond        int  `envconfig:"RATE_LIMIT_RPS" default:"100"`
	Burst                    int  `envconfig:"RATE_LIMIT_BURST" default:"200"`
	ComputeRequestsPerSecond int  `envconfig:"RATE_LIMIT_COMPUTE_RPS" default:"50"`
	Enabled                  bool `envconfig:"RATE_LIMIT_ENABLED" default:"true"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Integration.Validate(); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Config {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port: "8000",
			Host: "0.0.0.0",
		},
		Integration: DefaultIntegration(),
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond:        100,
			Burst:                    200,
			ComputeRequestsPerSecond: 50,
			Enabled:                  true,
		},
	}
}

// DefaultIntegration returns the integration defaults.
func DefaultIntegration() IntegrationConfig {
	return IntegrationConfig{
		AbsTolerance:   0.01,
		RelTolerance:   0.01,
		MaxDepth:       2048,
		MaxEvaluations: 2_000_000,
		MaxSamples:     5_000_000,
		Timeout:        10 * time.Second,
		PoolSize:       4,
	}
}

// Validate rejects limits the integrators cannot work with.
func (c IntegrationConfig) Validate() error {
	switch {
	case c.AbsTolerance < 0 || c.RelTolerance < 0:
		return fmt.Errorf("integration tolerances must be non-negative")
	case c.MaxDepth <= 0:
		return fmt.Errorf("integration max depth must be positive, got %d", c.MaxDepth)
	case c.MaxSamples <= 0:
		return fmt.Errorf("integration max samples must be positive, got %d", c.MaxSamples)
	case c.Timeout <= 0:
		return fmt.Errorf("integration timeout must be positive, got %s", c.Timeout)
	case c.PoolSize <= 0:
		return fmt.Errorf("integration pool size must be positive, got %d", c.PoolSize)
	}
	return nil
}
