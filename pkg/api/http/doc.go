// Package http provides the HTTP API implementation.
//
// The HTTP server exposes endpoints for:
//   - The welcome page (GET /)
//   - Health checks (GET /health)
//   - Application info (GET /api/info)
//   - Prometheus metrics
package http
