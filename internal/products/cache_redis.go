package products

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client *redis.Client
	prefix string
}

func NewRedisCache(client *redis.Client, prefix string) *RedisCache {
	p := strings.TrimSpace(prefix)
	if p == "" {
		p = "varejao:cache:"
	}
	return &RedisCache{client: client, prefix: p}
}

func (c *RedisCache) keyByID(id string) string {
	return c.prefix + "product:" + id
}

func (c *RedisCache) keyList() string {
	return c.prefix + "product:list"
}

func (c *RedisCache) GetByID(ctx context.Context, id string) (*Product, bool, error) {
	var p Product
	ok, err := c.get(ctx, c.keyByID(id), &p)
	if !ok || err != nil {
		return nil, false, err
	}
	return &p, true, nil
}

func (c *RedisCache) SetByID(ctx context.Context, p *Product, ttl time.Duration) error {
	return c.set(ctx, c.keyByID(p.ID), p, ttl)
}

func (c *RedisCache) DeleteByID(ctx context.Context, id string) error {
	return c.client.Del(ctx, c.keyByID(id)).Err()
}

func (c *RedisCache) GetList(ctx context.Context) ([]*Product, bool, error) {
	var out []*Product
	ok, err := c.get(ctx, c.keyList(), &out)
	if !ok || err != nil {
		return nil, false, err
	}
	if out == nil {
		out = []*Product{}
	}
	return out, true, nil
}

func (c *RedisCache) SetList(ctx context.Context, products []*Product, ttl time.Duration) error {
	return c.set(ctx, c.keyList(), products, ttl)
}

func (c *RedisCache) DeleteList(ctx context.Context) error {
	return c.client.Del(ctx, c.keyList()).Err()
}

func (c *RedisCache) get(ctx context.Context, key string, dst any) (bool, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(val, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (c *RedisCache) set(ctx context.Context, key string, v any, ttl time.Duration) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, payload, ttl).Err()
}
