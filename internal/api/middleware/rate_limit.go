package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/pkg/redis"
	"github.com/CodeJ3010803/Abenson-Time-Monitoring-System/pkg/response"
)

// Rate limit buckets
const (
	ScopePunch = "punch"
	ScopeLogin = "login"
)

// RateLimit allows limit requests per window for each client IP within scope.
// Punches on different categories share the bucket so one kiosk cannot
// double its quota. Without Redis, or when Redis fails, requests pass.
func RateLimit(rdb *redis.Client, scope string, limit int, window time.Duration) gin.HandlerFunc {
	retryAfter := strconv.Itoa(int(window.Seconds()))

	return func(c *gin.Context) {
		if rdb == nil || limit <= 0 {
			c.Next()
			return
		}

		key := "rate_limit:" + scope + ":" + c.ClientIP()
		allowed, err := rdb.CheckRateLimit(c.Request.Context(), key, limit, window)
		if err == nil && !allowed {
			c.Header("Retry-After", retryAfter)
			response.TooManyRequests(c)
			return
		}
		c.Next()
	}
}
