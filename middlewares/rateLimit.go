package middlewares

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	rateLimitPeriod = 1 * time.Minute
	rateLimitCount  = 5
)

// RateLimiter caps requests per client IP using a redis counter. With no
// redis client it is a no-op.
func RateLimiter(client *redis.Client) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if client == nil {
			ctx.Next()
			return
		}

		key := "rate_limit:" + ctx.ClientIP()
		count, err := client.Incr(ctx.Request.Context(), key).Result()
		if err != nil {
			ctx.Next()
			return
		}

		if count == 1 {
			client.Expire(ctx.Request.Context(), key, rateLimitPeriod)
		}

		if count > rateLimitCount {
			ctx.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"message": "Too many requests"})
			return
		}

		ctx.Next()
	}
}
