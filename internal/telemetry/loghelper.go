package telemetry

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	otelLog "go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/global"
)

const defaultLogScope = "varejao-api"

var mirror atomic.Pointer[slog.Logger]

// UseSlog mirrors every log record to l. It is how logs stay visible when
// the OTLP pipeline is disabled. Passing nil turns mirroring off.
func UseSlog(l *slog.Logger) {
	mirror.Store(l)
}

// Log emits a structured log event with optional attributes.
func Log(ctx context.Context, severity otelLog.Severity, msg string, attrs ...otelLog.KeyValue) {
	emit(ctx, defaultLogScope, "app.log", severity, msg, attrs...)
}

func LogInfo(ctx context.Context, msg string, attrs ...otelLog.KeyValue) {
	Log(ctx, otelLog.SeverityInfo, msg, attrs...)
}

func LogWarn(ctx context.Context, msg string, attrs ...otelLog.KeyValue) {
	Log(ctx, otelLog.SeverityWarn, msg, attrs...)
}

func LogError(ctx context.Context, msg string, attrs ...otelLog.KeyValue) {
	Log(ctx, otelLog.SeverityError, msg, attrs...)
}

func emit(ctx context.Context, scope, event string, severity otelLog.Severity, msg string, attrs ...otelLog.KeyValue) {
	var rec otelLog.Record
	rec.SetEventName(event)
	rec.SetTimestamp(time.Now())
	rec.SetSeverity(severity)
	rec.SetSeverityText(severityText(severity))
	rec.SetBody(otelLog.StringValue(msg))
	rec.AddAttributes(attrs...)

	global.Logger(scope).Emit(ctx, rec)

	if l := mirror.Load(); l != nil {
		l.LogAttrs(ctx, slogLevel(severity), msg, slogAttrs(ctx, attrs)...)
	}
}

func severityText(sev otelLog.Severity) string {
	switch {
	case sev >= otelLog.SeverityError:
		return "ERROR"
	case sev >= otelLog.SeverityWarn:
		return "WARN"
	default:
		return "INFO"
	}
}

func slogLevel(sev otelLog.Severity) slog.Level {
	switch {
	case sev >= otelLog.SeverityError:
		return slog.LevelError
	case sev >= otelLog.SeverityWarn:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

func slogAttrs(ctx context.Context, attrs []otelLog.KeyValue) []slog.Attr {
	out := make([]slog.Attr, 0, len(attrs)+1)
	if id := TraceID(ctx); id != "" {
		out = append(out, slog.String("trace_id", id))
	}
	for _, kv := range attrs {
		switch kv.Value.Kind() {
		case otelLog.KindString:
			out = append(out, slog.String(kv.Key, kv.Value.AsString()))
		case otelLog.KindInt64:
			out = append(out, slog.Int64(kv.Key, kv.Value.AsInt64()))
		case otelLog.KindBool:
			out = append(out, slog.Bool(kv.Key, kv.Value.AsBool()))
		case otelLog.KindFloat64:
			out = append(out, slog.Float64(kv.Key, kv.Value.AsFloat64()))
		default:
			out = append(out, slog.String(kv.Key, kv.Value.String()))
		}
	}
	return out
}
