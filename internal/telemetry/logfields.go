package telemetry

import (
	"context"
	"time"

	otelLog "go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/trace"
)

// TraceID returns the hex trace id of the active span, or "" outside one.
func TraceID(ctx context.Context) string {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return ""
	}
	return sc.TraceID().String()
}

func LogString(key, value string) otelLog.KeyValue {
	return otelLog.String(key, value)
}

func LogInt(key string, value int) otelLog.KeyValue {
	return otelLog.Int(key, value)
}

func LogBool(key string, value bool) otelLog.KeyValue {
	return otelLog.Bool(key, value)
}

// LogDuration records d in milliseconds under key.
func LogDuration(key string, d time.Duration) otelLog.KeyValue {
	return otelLog.Int64(key, d.Milliseconds())
}

// LogErr is the "error" attribute. A nil err yields an empty value.
func LogErr(err error) otelLog.KeyValue {
	if err == nil {
		return otelLog.String("error", "")
	}
	return otelLog.String("error", err.Error())
}
