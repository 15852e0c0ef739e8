package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Limiter counts attempts in fixed redis windows. A nil client allows everything,
// which keeps local development and tests free of a redis dependency.
type Limiter struct {
	rdb *redis.Client
}

func New(rdb *redis.Client) *Limiter {
	return &Limiter{rdb: rdb}
}

func key(scope, subject string) string {
	return fmt.Sprintf("rate_limit:%s:%s", scope, subject)
}

// Allow increments the counter for scope/subject and reports whether it is still within limit.
func (l *Limiter) Allow(ctx context.Context, scope, subject string, limit int, window time.Duration) (bool, time.Duration, error) {
	if l == nil || l.rdb == nil || limit <= 0 {
		return true, 0, nil
	}

	k := key(scope, subject)
	pipe := l.rdb.TxPipeline()
	incr := pipe.Incr(ctx, k)
	pipe.ExpireNX(ctx, k, window)
	ttl := pipe.TTL(ctx, k)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, fmt.Errorf("failed to check rate limit in redis: %w", err)
	}

	if incr.Val() > int64(limit) {
		return false, ttl.Val(), nil
	}
	return true, 0, nil
}

// Cooldown takes a lock for subject that expires after d. It reports false
// while a previous lock is still held.
func (l *Limiter) Cooldown(ctx context.Context, scope, subject string, d time.Duration) (bool, time.Duration, error) {
	if l == nil || l.rdb == nil || d <= 0 {
		return true, 0, nil
	}

	k := key(scope, subject)
	wasSet, err := l.rdb.SetNX(ctx, k, "locked", d).Result()
	if err != nil {
		return false, 0, fmt.Errorf("failed to check rate limit in redis: %w", err)
	}
	if wasSet {
		return true, 0, nil
	}

	ttl, err := l.rdb.TTL(ctx, k).Result()
	if err != nil {
		return false, 0, nil
	}
	return false, ttl, nil
}

func (l *Limiter) Reset(ctx context.Context, scope, subject string) error {
	if l == nil || l.rdb == nil {
		return nil
	}
	return l.rdb.Del(ctx, key(scope, subject)).Err()
}
