// Package metrics provides the Prometheus metrics of the labels service.
//
// This package covers:
//   - Hub client metrics (request count, latency, notices returned)
//   - Block metrics (renders by outcome, labels rendered, config submissions)
//
// HTTP server metrics live next to the middleware in internal/handler/http.
// All metrics register with the default Prometheus registry and are exposed via /metrics.
//
// Example usage:
//
//	start := time.Now()
//	notices, err := fetch()
//	metrics.RecordHubRequest("success", time.Since(start), len(notices))
package metrics
