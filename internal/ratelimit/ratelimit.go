// Package ratelimit implements a fixed-window request limiter backed by Redis.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrRateLimited = errors.New("rate limit exceeded")

// Result describes the outcome of one Allow call.
type Result struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// Limiter allows at most limit hits per key in each window. Windows are
// aligned to multiples of the window length. A Limiter without a Redis client
// allows everything.
type Limiter struct {
	client redis.Cmdable
	prefix string
	limit  int
	window time.Duration
	now    func() time.Time
}

func New(client redis.Cmdable, prefix string, limit int, window time.Duration) *Limiter {
	return &Limiter{
		client: client,
		prefix: prefix,
		limit:  limit,
		window: window,
		now:    time.Now,
	}
}

func (l *Limiter) Enabled() bool {
	return l != nil && l.client != nil && l.limit > 0 && l.window > 0
}

// Allow records one hit for key and reports whether it fits in the current
// window.
func (l *Limiter) Allow(ctx context.Context, key string) (Result, error) {
	if !l.Enabled() {
		return Result{Allowed: true, Remaining: -1}, nil
	}

	now := l.now()
	slot := now.UnixNano() / int64(l.window)
	windowEnd := time.Unix(0, (slot+1)*int64(l.window))
	redisKey := fmt.Sprintf("%s:%s:%d", l.prefix, key, slot)

	var incr *redis.IntCmd
	_, err := l.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, redisKey)
		pipe.Expire(ctx, redisKey, windowEnd.Sub(now)+time.Second)
		return nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("failed to record hit: %w", err)
	}

	count := int(incr.Val())
	if count > l.limit {
		return Result{Allowed: false, RetryAfter: windowEnd.Sub(now)}, nil
	}
	return Result{Allowed: true, Remaining: l.limit - count}, nil
}
