package db

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var (
	dbMetricsEnabled bool
	dbQueryDuration  metric.Float64Histogram
	dbQueryErrors    metric.Int64Counter
	dbTracer         trace.Tracer
)

// InitTelemetry binds the query instruments to the global providers. Call
// it after the OTel pipeline is set up; before that queries are traced
// through the no-op provider.
func InitTelemetry(serviceName string) {
	dbTracer = otel.Tracer(serviceName + "/db")
	meter := otel.Meter(serviceName + "/db")

	var err error
	dbQueryDuration, err = meter.Float64Histogram(
		"varejao_db_query_duration_seconds",
		metric.WithDescription("Database query latency by table and operation"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return
	}

	dbQueryErrors, err = meter.Int64Counter(
		"varejao_db_query_errors_total",
		metric.WithDescription("Failed database queries"),
	)
	if err != nil {
		return
	}

	dbMetricsEnabled = true
}

// probe measures one statement from dispatch until its result is consumed.
type probe struct {
	ctx   context.Context
	span  trace.Span
	op    string
	table string
	start time.Time
	once  sync.Once
}

func startProbe(ctx context.Context, sql string) *probe {
	p := &probe{op: dbOperation(sql), table: dbTable(sql), start: time.Now()}

	tracer := dbTracer
	if tracer == nil {
		tracer = otel.Tracer("varejao-db")
	}
	p.ctx, p.span = tracer.Start(ctx, "DB "+p.op+" "+p.table,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "postgresql"),
			attribute.String("db.operation", p.op),
			attribute.String("db.sql.table", p.table),
		),
	)
	return p
}

// finish is idempotent. pgx.ErrNoRows is an answer, not a failure.
func (p *probe) finish(err error) {
	p.once.Do(func() {
		if errors.Is(err, pgx.ErrNoRows) {
			err = nil
		}
		if err != nil {
			p.span.RecordError(err)
			p.span.SetStatus(codes.Error, "db_error")
		}
		p.span.End()

		if !dbMetricsEnabled {
			return
		}
		attrs := metric.WithAttributes(
			attribute.String("db.operation", p.op),
			attribute.String("db.sql.table", p.table),
			attribute.String("db.status", statusLabel(err)),
		)
		dbQueryDuration.Record(p.ctx, time.Since(p.start).Seconds(), attrs)
		if err != nil {
			dbQueryErrors.Add(p.ctx, 1, attrs)
		}
	})
}

type instrumentedQueryer struct {
	q Queryer
}

func (i instrumentedQueryer) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	p := startProbe(ctx, sql)
	tag, err := i.q.Exec(p.ctx, sql, arguments...)
	p.finish(err)
	return tag, err
}

func (i instrumentedQueryer) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	p := startProbe(ctx, sql)
	rows, err := i.q.Query(p.ctx, sql, args...)
	if err != nil {
		p.finish(err)
		return rows, err
	}
	return &instrumentedRows{Rows: rows, probe: p}, nil
}

func (i instrumentedQueryer) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	p := startProbe(ctx, sql)
	return &instrumentedRow{Row: i.q.QueryRow(p.ctx, sql, args...), probe: p}
}

type instrumentedRows struct {
	pgx.Rows
	probe *probe
}

func (r *instrumentedRows) Close() {
	r.Rows.Close()
	r.probe.finish(r.Rows.Err())
}

type instrumentedRow struct {
	pgx.Row
	probe *probe
}

func (r *instrumentedRow) Scan(dest ...any) error {
	err := r.Row.Scan(dest...)
	r.probe.finish(err)
	return err
}

func statusLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func dbOperation(sql string) string {
	fields := strings.Fields(strings.TrimSpace(sql))
	if len(fields) == 0 {
		return "unknown"
	}
	return strings.ToUpper(fields[0])
}

// dbTable extracts the first table named after FROM, INTO or UPDATE.
func dbTable(sql string) string {
	fields := strings.Fields(sql)
	for i, f := range fields {
		switch strings.ToUpper(f) {
		case "FROM", "INTO", "UPDATE":
			if i+1 < len(fields) {
				return strings.Trim(strings.ToLower(fields[i+1]), "(),;")
			}
		}
	}
	return "unknown"
}
