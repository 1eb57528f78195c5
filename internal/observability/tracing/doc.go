// Package tracing provides OpenTelemetry tracing integration.
//
// Spans are created through the global tracer provider; without an SDK
// provider installed they are no-ops. Server spans come from Middleware and
// the provider adapter starts client spans around each upstream call.
package tracing
