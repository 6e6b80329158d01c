package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisFixedWindowLimiter counts per key in redis so every instance shares
// one budget. INCR and the first-write EXPIRE run in one pipeline.
type RedisFixedWindowLimiter struct {
	client redis.UniversalClient
	prefix string
}

func NewRedisFixedWindowLimiter(client redis.UniversalClient, prefix string) *RedisFixedWindowLimiter {
	if prefix == "" {
		prefix = "rate_limit"
	}
	return &RedisFixedWindowLimiter{client: client, prefix: prefix}
}

func (l *RedisFixedWindowLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (Decision, error) {
	now := time.Now()
	bucket := now.Truncate(window)
	redisKey := fmt.Sprintf("%s:%s:%d", l.prefix, key, bucket.Unix())
	resetAt := bucket.Add(window)

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, window+time.Second)
	if _, err := pipe.Exec(ctx); err != nil {
		return Decision{}, err
	}

	count := int(incr.Val())
	if count > limit {
		return Decision{
			Allowed:    false,
			Remaining:  0,
			RetryAfter: time.Until(resetAt),
			ResetAt:    resetAt,
		}, nil
	}
	return Decision{
		Allowed:   true,
		Remaining: limit - count,
		ResetAt:   resetAt,
	}, nil
}
