// Package observability groups structured logging, Prometheus metrics and OpenTelemetry
// tracing for the labels service.
//
// Subpackages:
//   - logging: slog loggers with request id propagation
//   - metrics: hub and block metrics
//   - tracing: tracer provider setup and HTTP server spans
package observability
