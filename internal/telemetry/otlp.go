package telemetry

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/propagation"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

// Service identifies this process on every exported signal.
type Service struct {
	Name        string
	Version     string
	Environment string
}

type shutdownFunc = func(context.Context) error

// Setup starts the traces, metrics and logs pipelines over OTLP gRPC. The
// returned function flushes and stops all of them in reverse order.
func Setup(ctx context.Context, svc Service) (shutdownFunc, error) {
	res := svc.resource()

	var shutdowns []shutdownFunc
	shutdown := func(ctx context.Context) error {
		var errs []error
		for i := len(shutdowns) - 1; i >= 0; i-- {
			errs = append(errs, shutdowns[i](ctx))
		}
		return errors.Join(errs...)
	}

	starts := []func(context.Context, *resource.Resource) (shutdownFunc, error){
		startTraces,
		startMetrics,
		startLogs,
	}
	for _, start := range starts {
		fn, err := start(ctx, res)
		if err != nil {
			_ = shutdown(ctx)
			return nil, err
		}
		shutdowns = append(shutdowns, fn)
	}

	initHTTPMetricsInstruments(svc.Name)
	initJobMetricsInstruments(svc.Name)
	return shutdown, nil
}

func (s Service) resource() *resource.Resource {
	attrs := []attribute.KeyValue{semconv.ServiceName(s.Name)}
	if s.Version != "" {
		attrs = append(attrs, semconv.ServiceVersion(s.Version))
	}
	if s.Environment != "" {
		attrs = append(attrs, semconv.DeploymentEnvironment(s.Environment))
	}
	return resource.NewWithAttributes(semconv.SchemaURL, attrs...)
}

func startTraces(ctx context.Context, res *resource.Resource) (shutdownFunc, error) {
	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(otlpEndpoint("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT")),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("otlp trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	return tp.Shutdown, nil
}

func startMetrics(ctx context.Context, res *resource.Resource) (shutdownFunc, error) {
	exporter, err := otlpmetricgrpc.New(ctx,
		otlpmetricgrpc.WithEndpoint(otlpEndpoint("OTEL_EXPORTER_OTLP_METRICS_ENDPOINT")),
		otlpmetricgrpc.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("otlp metric exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)
	return mp.Shutdown, nil
}

func startLogs(ctx context.Context, res *resource.Resource) (shutdownFunc, error) {
	exporter, err := otlploggrpc.New(ctx,
		otlploggrpc.WithEndpoint(otlpEndpoint("OTEL_EXPORTER_OTLP_LOGS_ENDPOINT")),
		otlploggrpc.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("otlp log exporter: %w", err)
	}

	lp := sdklog.NewLoggerProvider(
		sdklog.WithProcessor(sdklog.NewBatchProcessor(exporter)),
		sdklog.WithResource(res),
	)
	global.SetLoggerProvider(lp)
	return lp.Shutdown, nil
}

// otlpEndpoint prefers the per-signal variable over the shared one.
func otlpEndpoint(signalEnv string) string {
	for _, key := range []string{signalEnv, "OTEL_EXPORTER_OTLP_ENDPOINT"} {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v
		}
	}
	return "localhost:4317"
}
