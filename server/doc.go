// Package server provides the HTTP server for apikit services: Gin served
// over HTTP/1.1 and h2c, with the response envelope on every path.
//
// # Middleware
//
// Server level (server/middleware, wrapping the whole handler):
//
//   - Recovery: panics become an INTERNAL_ERROR envelope
//   - RequestID: X-Request-Id propagation and generation
//   - BodySizeLimit: request body limit, surfaced as PAYLOAD_TOO_LARGE
//
// Gin level (applied by ApplyMiddleware):
//
//   - Tracing: OpenTelemetry server spans and request/error metrics
//   - RequestLogger: one log line per request, with the envelope error code
//   - GinRecovery: panics inside Gin, visible to logging and tracing
//   - CORS: gin-contrib/cors, disallowed origins get FORBIDDEN
//   - Gzip: gin-contrib/gzip, when compression is enabled
//   - RateLimit: token bucket per client, TOO_MANY_REQUESTS when exhausted
//
// # Endpoints
//
// Built-in endpoints (server/endpoint), all answering with the envelope:
//
//   - /health: component health aggregation
//   - /liveness: Kubernetes liveness probe
//   - /readiness: Kubernetes readiness probe
//   - /info: service information and uptime
//   - /version: build version information
package server
