package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// instrumentationName identifies spans emitted by this module.
const instrumentationName = "newshub"

// GetTracer returns the tracer for creating spans. It is resolved from the
// global provider on each call so a provider installed after package init
// (as tests do) takes effect.
//
// Example usage:
//
//	ctx, span := tracing.GetTracer().Start(ctx, "newsapi.top-headlines")
//	defer span.End()
func GetTracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}
