package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "ratelimit:%s:%d"

// RedisLimiter counts requests in fixed windows shared by every instance
// pointed at the same Redis.
type RedisLimiter struct {
	redis *redis.Client
	cfg   Config
	now   func() time.Time
}

func NewRedisLimiter(client *redis.Client, cfg Config) (*RedisLimiter, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &RedisLimiter{redis: client, cfg: cfg, now: time.Now}, nil
}

func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	window := l.now().UnixNano() / int64(l.cfg.Window)
	k := fmt.Sprintf(keyPrefix, key, window)

	count, err := l.redis.Incr(ctx, k).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		// First hit in this window owns the expiry.
		if err := l.redis.Expire(ctx, k, l.cfg.Window).Err(); err != nil {
			return false, err
		}
	}
	return count <= int64(l.cfg.Limit), nil
}
