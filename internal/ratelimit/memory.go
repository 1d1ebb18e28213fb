package ratelimit

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const maxMemoryKeys = 10000

// MemoryLimiter is a per-process token bucket: Limit tokens refilled evenly
// over Window. It is used when Redis is not configured.
type MemoryLimiter struct {
	limit  int
	window time.Duration
	now    func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func NewMemoryLimiter(limit int, window time.Duration) *MemoryLimiter {
	limit, window = normalize(limit, window)
	return &MemoryLimiter{
		limit:   limit,
		window:  window,
		now:     time.Now,
		buckets: map[string]*bucket{},
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, time.Duration, error) {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.buckets[key]
	if !ok {
		if len(l.buckets) >= maxMemoryKeys {
			l.sweep(now)
		}
		every := l.window / time.Duration(l.limit)
		b = &bucket{limiter: rate.NewLimiter(rate.Every(every), l.limit)}
		l.buckets[key] = b
	}
	b.lastSeen = now

	r := b.limiter.ReserveN(now, 1)
	if !r.OK() {
		return false, l.window, nil
	}
	if delay := r.DelayFrom(now); delay > 0 {
		r.CancelAt(now)
		return false, delay, nil
	}
	return true, 0, nil
}

// sweep drops buckets idle for a full window; they are back at capacity.
func (l *MemoryLimiter) sweep(now time.Time) {
	for k, b := range l.buckets {
		if now.Sub(b.lastSeen) >= l.window {
			delete(l.buckets, k)
		}
	}
}
