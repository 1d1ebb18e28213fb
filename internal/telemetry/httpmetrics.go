package telemetry

import (
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var (
	otelMetricsEnabled     bool
	otelHTTPRequestsTotal  metric.Int64Counter
	otelHTTPRequestSeconds metric.Float64Histogram
	otelHTTPInFlight       metric.Int64UpDownCounter
)

func initHTTPMetricsInstruments(serviceName string) {
	meter := otel.Meter(serviceName)

	var err error
	otelHTTPRequestsTotal, err = meter.Int64Counter(
		"varejao_http_requests_total",
		metric.WithDescription("HTTP requests by route and status"),
	)
	if err != nil {
		return
	}

	otelHTTPRequestSeconds, err = meter.Float64Histogram(
		"varejao_http_request_duration_seconds",
		metric.WithDescription("HTTP request latency"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return
	}

	otelHTTPInFlight, err = meter.Int64UpDownCounter(
		"varejao_http_requests_in_flight",
		metric.WithDescription("HTTP requests being served"),
	)
	if err != nil {
		return
	}

	otelMetricsEnabled = true
}

func ChiMetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		if otelMetricsEnabled {
			otelHTTPInFlight.Add(r.Context(), 1)
			defer otelHTTPInFlight.Add(r.Context(), -1)
		}

		rec := newStatusRecorder(w)
		next.ServeHTTP(rec, r)

		if !otelMetricsEnabled {
			return
		}
		attrs := metric.WithAttributes(
			attribute.String("http.method", r.Method),
			attribute.String("http.route", routeOf(r)),
			attribute.Int("http.status_code", rec.status),
		)
		otelHTTPRequestsTotal.Add(r.Context(), 1, attrs)
		otelHTTPRequestSeconds.Record(r.Context(), time.Since(start).Seconds(), attrs)
	})
}
