package ratelimit

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	defaultLimit  = 5
	defaultWindow = time.Minute
)

// Limiter reports whether a call identified by key may proceed and, when it
// may not, how long the caller should wait.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, time.Duration, error)
}

// Key joins non-empty parts into a limiter key. Parts are lower-cased so
// "Ana@Loja.com" and "ana@loja.com" share a bucket.
func Key(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ":")
}

// RedisLimiter is a fixed-window counter shared by every API instance.
type RedisLimiter struct {
	Client *redis.Client
	Prefix string
	Limit  int
	Window time.Duration
}

var allowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
local ttl = redis.call("PTTL", KEYS[1])
if current > tonumber(ARGV[1]) then
  return {0, ttl}
end
return {1, ttl}
`)

var errUnexpectedReply = errors.New("ratelimit: unexpected script reply")

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	if l.Client == nil {
		return true, 0, nil
	}

	limit, window := normalize(l.Limit, l.Window)

	fullKey := l.Prefix + key
	res, err := allowScript.Run(ctx, l.Client, []string{fullKey}, limit, window.Milliseconds()).Result()
	if err != nil {
		return false, 0, err
	}

	values, ok := res.([]any)
	if !ok || len(values) != 2 {
		return false, 0, errUnexpectedReply
	}

	allowed, _ := values[0].(int64)
	ttlMs, _ := values[1].(int64)
	if ttlMs < 0 {
		ttlMs = 0
	}

	return allowed == 1, time.Duration(ttlMs) * time.Millisecond, nil
}

func normalize(limit int, window time.Duration) (int, time.Duration) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if window <= 0 {
		window = defaultWindow
	}
	return limit, window
}
