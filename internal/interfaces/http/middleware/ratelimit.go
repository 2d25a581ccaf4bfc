package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sekai-soft/yurikamome/internal/infrastructure/cache/redis"
	"github.com/sekai-soft/yurikamome/pkg/logger"
)

// LoginRateLimitMiddleware throttles upstream login attempts per client
// IP so bad credentials cannot be hammered through us into Twitter.
type LoginRateLimitMiddleware struct {
	limiter *redis.LoginLimiter
	logger  logger.Logger
}

// NewLoginRateLimitMiddleware creates a new login rate limit middleware.
func NewLoginRateLimitMiddleware(limiter *redis.LoginLimiter, log logger.Logger) *LoginRateLimitMiddleware {
	return &LoginRateLimitMiddleware{
		limiter: limiter,
		logger:  log.With(logger.Component("login_ratelimit")),
	}
}

// Handler returns the Gin middleware handler.
func (m *LoginRateLimitMiddleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := GetClientIP(c)

		allowed, err := m.limiter.Allow(c.Request.Context(), key)
		if err != nil {
			// Redis being down should not lock everyone out.
			m.logger.Warn("rate limiter unavailable", logger.Error(err))
			c.Next()
			return
		}

		if !allowed {
			if retryAfter, err := m.limiter.RetryAfter(c.Request.Context(), key); err == nil && retryAfter > 0 {
				c.Header("Retry-After", fmt.Sprintf("%d", int(retryAfter.Seconds())))
			}
			m.logger.Warn("login attempts throttled", logger.ClientIP(key))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "too many login attempts",
			})
			return
		}

		c.Next()
	}
}
