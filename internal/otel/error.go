package otel

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// RecordError marks span as failed. A context cancelled by the client only
// leaves an event on the span.
func RecordError(err error, span trace.Span) {
	if err == nil {
		return
	}
	if errors.Is(err, context.Canceled) {
		span.AddEvent("cancelled", trace.WithAttributes(attribute.String("error", err.Error())))
		return
	}
	span.SetStatus(codes.Error, err.Error())
	span.RecordError(err, trace.WithStackTrace(true))
}
