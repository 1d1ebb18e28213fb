// Package queue delivers best-effort background jobs.
//
// Jobs are JSON envelopes pushed onto a Driver and drained by worker
// goroutines started with Run. A job is attempted exactly once: handler
// errors are logged and counted, never retried.
package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/PabloPavan/varejao_api/internal/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

var (
	ErrQueueFull      = errors.New("queue: full")
	ErrQueueClosed    = errors.New("queue: closed")
	ErrUnknownJobType = errors.New("queue: unknown job type")
)

// Driver is the storage backend for encoded envelopes.
type Driver interface {
	Push(ctx context.Context, payload []byte) error
	// Pop blocks until a payload is available. A nil payload with a nil
	// error means the wait timed out and the caller should poll again.
	Pop(ctx context.Context) ([]byte, error)
	Close() error
}

// Handler processes the payload of one job type.
type Handler func(ctx context.Context, payload json.RawMessage) error

// Receipt identifies an accepted job.
type Receipt struct {
	ID         string
	Type       string
	EnqueuedAt time.Time
}

type Envelope struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Payload    json.RawMessage `json:"payload"`
	EnqueuedAt time.Time       `json:"enqueued_at"`
}

type Options struct {
	// JobTimeout bounds a single handler invocation. Zero means no limit.
	JobTimeout time.Duration
}

type Queue struct {
	driver     Driver
	jobTimeout time.Duration

	mu       sync.RWMutex
	handlers map[string]Handler

	now   func() time.Time
	newID func() string
}

func New(driver Driver, opts Options) *Queue {
	return &Queue{
		driver:     driver,
		jobTimeout: opts.JobTimeout,
		handlers:   map[string]Handler{},
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// Handle registers h for jobType, replacing any previous handler.
func (q *Queue) Handle(jobType string, h Handler) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.handlers[jobType] = h
}

// Enqueue encodes payload and pushes it without waiting for processing.
func (q *Queue) Enqueue(ctx context.Context, jobType string, payload any) (Receipt, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Receipt{}, fmt.Errorf("queue: marshal %s payload: %w", jobType, err)
	}

	env := Envelope{
		ID:         q.newID(),
		Type:       jobType,
		Payload:    raw,
		EnqueuedAt: q.now().UTC(),
	}
	data, err := json.Marshal(env)
	if err != nil {
		return Receipt{}, fmt.Errorf("queue: marshal envelope: %w", err)
	}

	if err := q.driver.Push(ctx, data); err != nil {
		telemetry.RecordJob(ctx, jobType, telemetry.JobRejected, 0)
		return Receipt{}, err
	}

	return Receipt{ID: env.ID, Type: env.Type, EnqueuedAt: env.EnqueuedAt}, nil
}

// Run starts workers goroutines and blocks until ctx is cancelled and all
// of them have returned. Jobs in flight when ctx ends are finished first.
func (q *Queue) Run(ctx context.Context, workers int) error {
	if workers <= 0 {
		workers = 1
	}

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			q.work(ctx)
		}()
	}

	telemetry.LogInfo(ctx, "queue workers started", telemetry.LogInt("workers", workers))
	wg.Wait()
	return nil
}

// Close releases the driver. Subsequent Enqueue calls fail.
func (q *Queue) Close() error {
	return q.driver.Close()
}

func (q *Queue) work(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}

		raw, err := q.driver.Pop(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, ErrQueueClosed) {
				return
			}
			telemetry.LogError(ctx, "queue pop failed", telemetry.LogErr(err))
			select {
			case <-ctx.Done():
				return
			case <-time.After(500 * time.Millisecond):
			}
			continue
		}
		if raw == nil {
			continue
		}

		// shutdown does not cancel a running handler
		q.process(context.WithoutCancel(ctx), raw)
	}
}

func (q *Queue) process(ctx context.Context, raw []byte) {
	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		telemetry.LogError(ctx, "queue bad envelope", telemetry.LogErr(err))
		return
	}

	if err := q.dispatch(ctx, env); err != nil {
		telemetry.LogError(ctx, "queue job failed",
			telemetry.LogString("job.id", env.ID),
			telemetry.LogString("job.type", env.Type),
			telemetry.LogErr(err),
		)
		return
	}

	telemetry.LogInfo(ctx, "queue job processed",
		telemetry.LogString("job.id", env.ID),
		telemetry.LogString("job.type", env.Type),
		telemetry.LogDuration("job.wait_ms", q.now().Sub(env.EnqueuedAt)),
	)
}

func (q *Queue) dispatch(ctx context.Context, env Envelope) error {
	q.mu.RLock()
	h, ok := q.handlers[env.Type]
	q.mu.RUnlock()
	if !ok {
		telemetry.RecordJob(ctx, env.Type, telemetry.JobFailed, 0)
		return fmt.Errorf("%w: %s", ErrUnknownJobType, env.Type)
	}

	if q.jobTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, q.jobTimeout)
		defer cancel()
	}

	ctx, span := telemetry.StartSpan(ctx, "queue.job "+env.Type,
		attribute.String("job.id", env.ID),
		attribute.String("job.type", env.Type),
	)

	start := q.now()
	err := h(ctx, env.Payload)
	status := telemetry.JobSucceeded
	if err != nil {
		status = telemetry.JobFailed
	}
	telemetry.RecordJob(ctx, env.Type, status, q.now().Sub(start))
	telemetry.EndSpan(span, err)
	return err
}
