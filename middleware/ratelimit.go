package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"blog-api/helper"
	"blog-api/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Limiter decides whether key may issue one more request in the current window.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// IPRateLimiter keeps a sliding window of request times per key in memory. Keys
// with no request inside the window are dropped.
type IPRateLimiter struct {
	mu        sync.Mutex
	requests  map[string][]time.Time
	limit     int
	window    time.Duration
	now       func() time.Time
	lastSweep time.Time
}

func NewIPRateLimiter(limit int, window time.Duration) *IPRateLimiter {
	return &IPRateLimiter{
		requests: make(map[string][]time.Time),
		limit:    limit,
		window:   window,
		now:      time.Now,
	}
}

func (rl *IPRateLimiter) Allow(_ context.Context, key string) (bool, error) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	cutoff := now.Add(-rl.window)

	if now.Sub(rl.lastSweep) >= rl.window {
		rl.sweep(cutoff)
		rl.lastSweep = now
	}

	requests := trimBefore(rl.requests[key], cutoff)

	if len(requests) >= rl.limit {
		rl.requests[key] = requests
		return false, nil
	}

	rl.requests[key] = append(requests, now)
	return true, nil
}

// sweep drops every key whose last request is older than cutoff.
func (rl *IPRateLimiter) sweep(cutoff time.Time) {
	for key, requests := range rl.requests {
		if len(requests) == 0 || !requests[len(requests)-1].After(cutoff) {
			delete(rl.requests, key)
		}
	}
}

func trimBefore(requests []time.Time, cutoff time.Time) []time.Time {
	i := 0
	for ; i < len(requests); i++ {
		if requests[i].After(cutoff) {
			break
		}
	}
	return requests[i:]
}

// RedisRateLimiter counts requests in fixed windows shared by every instance.
type RedisRateLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	prefix string
}

func NewRedisRateLimiter(client *redis.Client, limit int, window time.Duration) *RedisRateLimiter {
	return &RedisRateLimiter{
		client: client,
		limit:  limit,
		window: window,
		prefix: "throttle:",
	}
}

// Allow increments the counter and sets its expiry in one MULTI/EXEC, so a
// counter never outlives its window.
func (rl *RedisRateLimiter) Allow(ctx context.Context, key string) (bool, error) {
	k := rl.prefix + key

	var incr *redis.IntCmd
	_, err := rl.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(ctx, k)
		pipe.ExpireNX(ctx, k, rl.window)
		return nil
	})
	if err != nil {
		return false, err
	}
	return incr.Val() <= int64(rl.limit), nil
}

// RateLimitMiddleware throttles by client IP. A failing limiter lets the request
// through.
func RateLimitMiddleware(l Limiter, h *helper.HTTPHelper) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := l.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			logger.FromContext(c.Request.Context()).Warn("rate limiter unavailable", "error", err.Error())
			c.Next()
			return
		}
		if !allowed {
			h.SendError(c, "Too many requests", h.EmptyJsonMap(), http.StatusTooManyRequests)
			c.Abort()
			return
		}
		c.Next()
	}
}
