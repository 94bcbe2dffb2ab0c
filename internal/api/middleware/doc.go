// Package middleware holds the gin middleware shared by the HTTP API:
// CORS, per-client and global rate limiting, and request IDs.
package middleware
