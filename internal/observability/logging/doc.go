// Package logging wraps log/slog with the helpers used across the service: level parsing,
// JSON or text output, and request id propagation.
//
// Example usage:
//
//	logger := logging.NewLogger()
//	slog.SetDefault(logger)
//
//	func handle(ctx context.Context) {
//	    logging.WithRequestID(ctx, slog.Default()).Info("rendering block")
//	}
package logging
