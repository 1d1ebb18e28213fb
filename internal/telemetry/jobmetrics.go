package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type JobStatus string

const (
	JobSucceeded JobStatus = "ok"
	JobFailed    JobStatus = "error"
	// JobRejected means the queue refused the job at enqueue time.
	JobRejected JobStatus = "rejected"
)

var (
	otelJobMetricsEnabled bool
	otelJobsTotal         metric.Int64Counter
	otelJobSeconds        metric.Float64Histogram
)

func initJobMetricsInstruments(serviceName string) {
	meter := otel.Meter(serviceName + "/queue")

	var err error
	otelJobsTotal, err = meter.Int64Counter(
		"varejao_notification_jobs_total",
		metric.WithDescription("Notification jobs by type and outcome"),
	)
	if err != nil {
		return
	}

	otelJobSeconds, err = meter.Float64Histogram(
		"varejao_notification_job_duration_seconds",
		metric.WithDescription("Notification job handling latency"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return
	}

	otelJobMetricsEnabled = true
}

func RecordJob(ctx context.Context, jobType string, status JobStatus, duration time.Duration) {
	if !otelJobMetricsEnabled {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("job.type", jobType),
		attribute.String("job.status", string(status)),
	)
	otelJobsTotal.Add(ctx, 1, attrs)
	if status != JobRejected {
		otelJobSeconds.Record(ctx, duration.Seconds(), attrs)
	}
}
