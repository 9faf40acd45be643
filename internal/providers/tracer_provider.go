package providers

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "puzzlestats"

// NewTracerProvider returns a tracer from the global provider. Until an
// exporter is installed it records nothing.
func NewTracerProvider() trace.Tracer {
	return otel.Tracer(tracerName)
}
