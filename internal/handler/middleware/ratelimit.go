package middleware

import (
	"errors"
	"net/http"

	"campus-placement/internal/handler/httperr"
	"campus-placement/internal/realtime"

	"github.com/gin-gonic/gin"
)

var errRateLimited = errors.New("connection rate limit exceeded")

// ConnectRateLimit throttles new socket upgrades per client IP.
func ConnectRateLimit(limiter realtime.ConnectLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}
		if !limiter.Allow(c.Request.Context(), c.ClientIP()) {
			c.Header("Retry-After", "1")
			httperr.AbortWithError(c, http.StatusTooManyRequests, errRateLimited, "Too many connection attempts", nil)
			return
		}
		c.Next()
	}
}
