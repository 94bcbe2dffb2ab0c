// Package http implements the REST handlers of the integrator service:
// service listing, discovery and execution through the registry, and a
// direct /integrate/:method endpoint for the integration tools.
package http
