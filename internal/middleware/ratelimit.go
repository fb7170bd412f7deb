package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	pkgredis "github.com/inkwell/core/internal/pkg/redis"
)

const (
	rateLimitMax    = 50
	rateLimitWindow = time.Second
)

// RateLimit returns a middleware that enforces a per-IP rate limit on
// unauthenticated requests. Authenticated traffic passes through.
func RateLimit(rc *pkgredis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		if IsAuthenticated(c) {
			c.Next()
			return
		}

		ip := c.ClientIP()
		if ip == "" {
			c.Next()
			return
		}

		key := fmt.Sprintf("inkwell:rate_limit:%s:%d", ip, time.Now().Unix())
		count, err := rc.IncrWindow(c.Request.Context(), key, rateLimitWindow+time.Second)
		if err != nil {
			c.Next()
			return
		}

		if count > rateLimitMax {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"ok":      0,
				"code":    http.StatusTooManyRequests,
				"message": "too many requests",
			})
			return
		}

		c.Next()
	}
}
