// Package cache is a small JSON-value cache on Redis, used for the borrow
// summary report. A miss is (false, nil), never an error.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
)

type Redis struct {
	c *redis.Client
}

func NewRedis(c *redis.Client) *Redis { return &Redis{c: c} }

func (r *Redis) Get(ctx context.Context, key string, dest any) (bool, error) {
	val, err := r.c.Get(ctx, key).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, err
	}
	return true, nil
}

func (r *Redis) Set(ctx context.Context, key string, v any, ttl time.Duration) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return r.c.Set(ctx, key, payload, ttl).Err()
}

func (r *Redis) Del(ctx context.Context, key string) error {
	return r.c.Del(ctx, key).Err()
}
