// Package tracing provides OpenTelemetry tracing for the labels service.
//
// Example usage:
//
//	shutdown := tracing.InitProvider("tk-labels")
//	defer func() { _ = shutdown(context.Background()) }()
//
//	ctx, span := tracing.GetTracer().Start(ctx, "hub.ProjectNotices")
//	defer span.End()
package tracing
