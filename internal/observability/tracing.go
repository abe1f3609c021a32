package observability

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// instrumentationName identifies this module's spans to whichever tracer
// provider the host process installed.
const instrumentationName = "github.com/hugo-ops/hugo"

// Tracer returns the module's tracer from the global provider. Without an
// installed provider this is a no-op tracer.
func Tracer() trace.Tracer {
	return otel.GetTracerProvider().Tracer(instrumentationName)
}
