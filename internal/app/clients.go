package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/learnpath-backend/internal/clients/redis"
	"github.com/yungbote/learnpath-backend/internal/observability"
	"github.com/yungbote/learnpath-backend/internal/platform/logger"
	"github.com/yungbote/learnpath-backend/internal/platform/openai"
)

type Clients struct {
	OpenAI  openai.Client
	Redis   *goredis.Client
	Limiter *redis.Limiter
}

func wireClients(ctx context.Context, log *logger.Logger, cfg Config, metrics *observability.Metrics) (Clients, error) {
	log.Info("Wiring clients...")

	ai, err := openai.NewClient(log, cfg.OpenAI())
	if err != nil {
		return Clients{}, fmt.Errorf("init openai client: %w", err)
	}
	out := Clients{OpenAI: observability.InstrumentLLM(ai, metrics)}

	// Redis is optional; without it generation and chat are not rate limited.
	if strings.TrimSpace(cfg.RedisAddr) == "" {
		log.Warn("REDIS_ADDR not set, rate limiting disabled")
		return out, nil
	}
	rdb, err := redis.NewClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return Clients{}, fmt.Errorf("init redis: %w", err)
	}
	out.Redis = rdb
	if cfg.RateLimitRequests > 0 && cfg.RateLimitWindow > 0 {
		out.Limiter = redis.NewLimiter(log, rdb, "rate_limit", cfg.RateLimitRequests, time.Duration(cfg.RateLimitWindow)*time.Second)
	}
	return out, nil
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
}
