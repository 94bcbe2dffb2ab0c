// Package server assembles the integrator HTTP service: it builds the
// expression runtime pool and integration engine, registers the service
// providers, installs middleware and routes, and serves until its context
// is canceled.
package server
