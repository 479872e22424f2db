package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/learnpath-backend/internal/platform/logger"
)

// Limiter is a fixed-window counter per key: the first hit in a window sets
// the key's expiry, later hits only increment it.
type Limiter struct {
	log    *logger.Logger
	rdb    goredis.UniversalClient
	prefix string
	limit  int64
	window time.Duration
}

func NewLimiter(log *logger.Logger, rdb goredis.UniversalClient, prefix string, limit int, window time.Duration) *Limiter {
	if prefix == "" {
		prefix = "rate_limit"
	}
	return &Limiter{
		log:    log.With("client", "RedisLimiter"),
		rdb:    rdb,
		prefix: prefix,
		limit:  int64(limit),
		window: window,
	}
}

// Allow reports whether key is within its budget. When it is not, retryAfter
// is the time left in the current window.
func (l *Limiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	k := fmt.Sprintf("%s:%s", l.prefix, key)
	count, err := l.rdb.Incr(ctx, k).Result()
	if err != nil {
		return false, 0, fmt.Errorf("incr %s: %w", k, err)
	}
	if count == 1 {
		if err := l.rdb.Expire(ctx, k, l.window).Err(); err != nil {
			return false, 0, fmt.Errorf("expire %s: %w", k, err)
		}
	}
	if count <= l.limit {
		return true, 0, nil
	}
	ttl, err := l.rdb.TTL(ctx, k).Result()
	if err != nil {
		return false, 0, fmt.Errorf("ttl %s: %w", k, err)
	}
	if ttl < 0 {
		// Lost the expiry (crash between INCR and EXPIRE); restart the window.
		if err := l.rdb.Expire(ctx, k, l.window).Err(); err != nil {
			l.log.Warn("rate limit expiry repair failed", "key", k, "error", err)
		}
		ttl = l.window
	}
	return false, ttl, nil
}

// NewClient connects and pings once so misconfiguration fails at startup.
func NewClient(ctx context.Context, addr, password string, db int) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{Addr: addr, Password: password, DB: db})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}
	return rdb, nil
}
