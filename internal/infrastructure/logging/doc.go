// Package logging provides structured logging using uber/zap.
//
// Two encodings are supported:
//   - Production: JSON output for machine parsing
//   - Development: Colored console output for human readability
//
// The server derives its logger from config.LogConfig; the CLI logs to
// stderr at warn level unless --verbose is set.
//
// Example Usage:
//
//	logger, err := logging.New(logging.FromConfig(cfg.Logging))
//	logger.Component("integration").Info("integration finished",
//		zap.String("method", "quad"), zap.Int("evaluations", res.Evaluations))
package logging
