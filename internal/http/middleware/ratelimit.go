package middleware

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/learnpath-backend/internal/http/response"
	"github.com/yungbote/learnpath-backend/internal/observability"
	"github.com/yungbote/learnpath-backend/internal/platform/ctxutil"
	"github.com/yungbote/learnpath-backend/internal/platform/logger"
)

type Limiter interface {
	Allow(ctx context.Context, key string) (allowed bool, retryAfter time.Duration, err error)
}

// RateLimit keys on the authenticated user, falling back to the client IP.
// Limiter failures let the request through.
func RateLimit(log *logger.Logger, limiter Limiter, metrics *observability.Metrics, scope string) gin.HandlerFunc {
	if limiter == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		subject := c.ClientIP()
		if uid := ctxutil.UserID(c.Request.Context()); uid != uuid.Nil {
			subject = uid.String()
		}
		allowed, retryAfter, err := limiter.Allow(c.Request.Context(), scope+":"+subject)
		if err != nil {
			if log != nil {
				log.Warn("rate limiter unavailable", "scope", scope, "error", err)
			}
			c.Next()
			return
		}
		if !allowed {
			metrics.IncRateLimited(c.FullPath())
			secs := int(math.Ceil(retryAfter.Seconds()))
			if secs < 1 {
				secs = 1
			}
			c.Header("Retry-After", strconv.Itoa(secs))
			response.RespondError(c, http.StatusTooManyRequests, "rate_limited", errors.New("too many requests"))
			return
		}
		c.Next()
	}
}
