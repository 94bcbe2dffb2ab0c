// Package main is the entry point for the integrator HTTP service.
//
// The server exposes the numerical integration engine over REST:
//   - POST /integrate/:method runs one integration
//     (quad, improper, clenshaw_curtis, plain, low_discrepancy, stratified)
//   - GET /services, POST /services/discover, POST /services/execute
//     go through the service registry
//   - GET /health, GET /metrics (Prometheus), GET /metrics/json
//
// Configuration:
//   - Environment variables (PORT, HOST, LOG_LEVEL, LOG_DEV,
//     INTEGRATION_*, RATE_LIMIT_*)
//   - CLI flags (override env vars)
//
// Usage:
//
//	./server -port 8000
//	./server -dev
//
//	curl -s localhost:8000/integrate/improper \
//	  -d '{"expression":"exp(-x*x)","a":"-inf","b":"inf"}'
//
// Signals:
//   - SIGINT, SIGTERM: Graceful shutdown
package main
