package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const defaultQueryTimeout = 3 * time.Second

// Queryer is the subset of pgxpool.Pool the repositories use.
type Queryer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Base is embedded by every repository: one pool, one per-statement
// deadline, every statement traced.
type Base struct {
	q       Queryer
	timeout time.Duration
}

func NewBase(pool *pgxpool.Pool, timeout time.Duration) *Base {
	return newBase(pool, timeout)
}

func newBase(q Queryer, timeout time.Duration) *Base {
	if timeout <= 0 {
		timeout = defaultQueryTimeout
	}
	return &Base{q: instrumentedQueryer{q: q}, timeout: timeout}
}

func (b *Base) Q() Queryer {
	return b.q
}

// WithTimeout bounds a single statement. Callers must read the whole result
// before calling the returned cancel.
func (b *Base) WithTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, b.timeout)
}

func (b *Base) Timeout() time.Duration {
	return b.timeout
}
