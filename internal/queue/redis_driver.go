package queue

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	DefaultRedisKey     = "varejao:queue:notifications"
	defaultRedisPopWait = 5 * time.Second
)

// RedisDriver keeps envelopes in a Redis list (LPUSH/BRPOP) so pending jobs
// survive a restart. The client is owned by the caller.
type RedisDriver struct {
	rdb     *redis.Client
	key     string
	popWait time.Duration
	closed  atomic.Bool
}

func NewRedisDriver(rdb *redis.Client, key string) *RedisDriver {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisDriver{rdb: rdb, key: key, popWait: defaultRedisPopWait}
}

func (d *RedisDriver) Push(ctx context.Context, payload []byte) error {
	if d.closed.Load() {
		return ErrQueueClosed
	}
	if err := d.rdb.LPush(ctx, d.key, payload).Err(); err != nil {
		return fmt.Errorf("queue/redis: push: %w", err)
	}
	return nil
}

func (d *RedisDriver) Pop(ctx context.Context) ([]byte, error) {
	if d.closed.Load() {
		return nil, ErrQueueClosed
	}
	result, err := d.rdb.BRPop(ctx, d.popWait, d.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("queue/redis: pop: %w", err)
	}
	if len(result) < 2 {
		return nil, nil
	}
	return []byte(result[1]), nil
}

func (d *RedisDriver) Len(ctx context.Context) (int64, error) {
	return d.rdb.LLen(ctx, d.key).Result()
}

func (d *RedisDriver) Close() error {
	d.closed.Store(true)
	return nil
}
