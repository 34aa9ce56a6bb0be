package middleware

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "itemvault/internal/errors"
	"itemvault/internal/logger"
	"itemvault/internal/ratelimit"
)

// RateLimit rejects clients that exceed the limiter's budget for the matched
// route. Counters are keyed by client IP and route. If the limiter store fails
// the request is let through.
func RateLimit(limiter ratelimit.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP() + "|" + c.FullPath()

		res, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			logger.Get().Warnw("rate limiter unavailable", "error", err, "path", c.Request.URL.Path)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(res.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))

		if !res.Allowed {
			retry := int(math.Ceil(res.RetryAfter.Seconds()))
			c.Header("Retry-After", strconv.Itoa(retry))
			abortWithError(c, apperrors.ErrTooManyRequests)
			return
		}
		c.Next()
	}
}
