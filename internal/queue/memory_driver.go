package queue

import (
	"context"
	"sync"
)

// MemoryDriver is a bounded in-process queue. Jobs are lost on restart.
type MemoryDriver struct {
	ch   chan []byte
	done chan struct{}
	once sync.Once
}

func NewMemoryDriver(size int) *MemoryDriver {
	if size <= 0 {
		size = 1000
	}
	return &MemoryDriver{
		ch:   make(chan []byte, size),
		done: make(chan struct{}),
	}
}

// Push never blocks; it fails with ErrQueueFull when the buffer is full.
func (d *MemoryDriver) Push(_ context.Context, payload []byte) error {
	select {
	case <-d.done:
		return ErrQueueClosed
	default:
	}

	select {
	case d.ch <- payload:
		return nil
	default:
		return ErrQueueFull
	}
}

func (d *MemoryDriver) Pop(ctx context.Context) ([]byte, error) {
	select {
	case payload := <-d.ch:
		return payload, nil
	default:
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-d.done:
		return nil, ErrQueueClosed
	case payload := <-d.ch:
		return payload, nil
	}
}

func (d *MemoryDriver) Len() int {
	return len(d.ch)
}

func (d *MemoryDriver) Close() error {
	d.once.Do(func() { close(d.done) })
	return nil
}
