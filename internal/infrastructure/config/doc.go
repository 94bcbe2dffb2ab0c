// Package config provides 12-factor configuration for the integration service.
//
// Configuration is loaded from environment variables with defaults.
//
// Configuration Sections:
//   - Server: HTTP server settings (port, host)
//   - Integration: default tolerances and resource limits per request
//   - Logging: Log level and output format
//   - RateLimit: Per-IP rate limiting configuration
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("Server running on %s:%s\n", cfg.Server.Host, cfg.Server.Port)
//
// Environment Variables:
//   - PORT, HOST
//   - INTEGRATION_ABS_TOL, INTEGRATION_REL_TOL, INTEGRATION_MAX_DEPTH,
//     INTEGRATION_MAX_EVALS, INTEGRATION_MAX_SAMPLES, INTEGRATION_TIMEOUT,
//     INTEGRATION_POOL_SIZE
//   - LOG_LEVEL, LOG_DEV
//   - RATE_LIMIT_RPS, RATE_LIMIT_BURST, RATE_LIMIT_ENABLED
package config
