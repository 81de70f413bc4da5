package otel

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelMetric "go.opentelemetry.io/otel/metric"
)

var Meter = otel.Meter("storefront")

// RequestDuration is recorded by the logging middleware once per request.
var RequestDuration, _ = Meter.Float64Histogram(
	"storefront.request.duration",
	otelMetric.WithUnit("s"),
	otelMetric.WithDescription("Duration of handled HTTP requests."),
)

func RouteAttributes(method string, route string) otelMetric.MeasurementOption {
	return otelMetric.WithAttributeSet(newAttributeSet(method, route))
}

func newAttributeSet(method string, route string) attribute.Set {
	return attribute.NewSet(
		attribute.String("http.request.method", method),
		attribute.String("http.route", route),
	)
}
