// README: Per-client rate limit middleware; limiter failures let the request through.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"flightopt/internal/modules/ratelimit"
)

func RateLimit(limiter ratelimit.Limiter, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			logger.WarnContext(c.Request.Context(), "rate limiter unavailable, allowing request",
				"client_ip", c.ClientIP(), "error", err)
			c.Next()
			return
		}
		if !allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "リクエストが多すぎます。しばらくしてから再度お試しください。",
			})
			return
		}
		c.Next()
	}
}
