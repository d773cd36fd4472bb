package middleware

import (
	"math"
	"net/http"
	"strconv"

	"github.com/dimitrije/signshop-api/internal/ratelimit"
	"github.com/m1z23r/drift/pkg/drift"
	"go.uber.org/zap"
)

// RateLimit rejects requests over the limiter's budget with 429. The budget is
// tracked per client IP as resolved by proxies. Limiter failures are logged and
// the request is let through.
func RateLimit(limiter *ratelimit.Limiter, proxies TrustedProxies, logger *zap.Logger) drift.HandlerFunc {
	return func(c *drift.Context) {
		res, err := limiter.Allow(c.Request.Context(), proxies.ClientIP(c.Request))
		if err != nil {
			logger.Warn("rate limiter unavailable", zap.Error(err))
			c.Next()
			return
		}
		if !res.Allowed {
			retry := int(math.Ceil(res.RetryAfter.Seconds()))
			c.Response.Header().Set("Retry-After", strconv.Itoa(retry))
			_ = c.JSON(http.StatusTooManyRequests, map[string]interface{}{
				"error":       ratelimit.ErrRateLimited.Error(),
				"retry_after": retry,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}
