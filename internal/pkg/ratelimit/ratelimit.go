// internal/pkg/ratelimit/ratelimit.go
package ratelimit

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"hh-order-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Limiter is a fixed-window counter backed by redis.
type Limiter struct {
	client *redis.Client
}

func NewLimiter(client *redis.Client) *Limiter {
	return &Limiter{client: client}
}

// Allow increments the counter for key and reports whether the request fits
// within max requests per window.
func (l *Limiter) Allow(ctx context.Context, key string, max int64, window time.Duration) (bool, error) {
	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment rate limit counter: %w", err)
	}

	// Set expiration on first hit in the window
	if count == 1 {
		l.client.Expire(ctx, key, window)
	}

	return count <= max, nil
}

// Middleware rate-limits by client IP and route. A nil limiter disables
// limiting; redis errors fail open so an unavailable redis never takes the
// public endpoints down with it.
func Middleware(l *Limiter, max int64, window time.Duration, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if l == nil {
			c.Next()
			return
		}

		key := fmt.Sprintf("ratelimit:%s:%s", c.ClientIP(), c.FullPath())
		allowed, err := l.Allow(c.Request.Context(), key, max, window)
		if err != nil {
			logger.Warn("rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}
		if !allowed {
			response.Error(c, http.StatusTooManyRequests, "too many requests", nil)
			return
		}

		c.Next()
	}
}
