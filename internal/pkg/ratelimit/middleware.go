package ratelimit

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/servepupil/api/internal/pkg/response"
)

// Middleware limits requests per caller. Authenticated callers are keyed by
// uid, anonymous ones by client IP.
func Middleware(limiter *RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if uid := c.GetString("uid"); uid != "" {
			key = uid
		}

		if !limiter.Allow(key) {
			c.Header("X-RateLimit-Remaining", "0")
			response.Error(c, 429, "Too many requests", "RATE_LIMITED")
			c.Abort()
			return
		}

		c.Header("X-RateLimit-Remaining", strconv.Itoa(limiter.Remaining(key)))
		c.Next()
	}
}
