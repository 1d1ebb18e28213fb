package telemetry

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	otelLog "go.opentelemetry.io/otel/log"
)

// ChiLogMiddleware emits one record per request, at WARN for 4xx and
// ERROR for 5xx responses.
func ChiLogMiddleware(serviceName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)

			next.ServeHTTP(rec, r)

			emit(r.Context(), serviceName, "http.request", severityForStatus(rec.status), "request completed",
				otelLog.String("http.method", r.Method),
				otelLog.String("http.route", routeOf(r)),
				otelLog.String("http.target", r.URL.Path),
				otelLog.String("http.request_id", middleware.GetReqID(r.Context())),
				otelLog.Int("http.status_code", rec.status),
				LogDuration("http.duration_ms", time.Since(start)),
			)
		})
	}
}

func severityForStatus(status int) otelLog.Severity {
	switch {
	case status >= 500:
		return otelLog.SeverityError
	case status >= 400:
		return otelLog.SeverityWarn
	default:
		return otelLog.SeverityInfo
	}
}
