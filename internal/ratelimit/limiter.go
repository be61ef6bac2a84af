package ratelimit

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter admits or rejects a request against a per-seller per-minute quota.
// limitPerMin <= 0 means unlimited.
type Limiter interface {
	Allow(ctx context.Context, sellerID int64, limitPerMin int) (bool, error)
}

// RedisLimiter counts requests in a fixed one-minute window keyed by the
// unix minute. Counters expire on their own.
type RedisLimiter struct {
	rdb       *redis.Client
	keyPrefix string
}

func NewRedisLimiter(rdb *redis.Client, keyPrefix string) *RedisLimiter {
	if keyPrefix == "" {
		keyPrefix = "rl:seller:"
	}
	return &RedisLimiter{rdb: rdb, keyPrefix: keyPrefix}
}

var _ Limiter = (*RedisLimiter)(nil)

func (l *RedisLimiter) Allow(ctx context.Context, sellerID int64, limitPerMin int) (bool, error) {
	if limitPerMin <= 0 {
		return true, nil
	}

	// fixed-window key: rl:seller:{id}:{unix_minute}
	minute := time.Now().Unix() / 60
	key := l.keyPrefix + strconv.FormatInt(sellerID, 10) + ":" + strconv.FormatInt(minute, 10)

	// INCR and set expiry 2*window (safety)
	pipe := l.rdb.Pipeline()
	cnt := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, 2*time.Minute)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}

	return cnt.Val() <= int64(limitPerMin), nil
}
