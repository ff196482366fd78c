package middleware

import (
	"github.com/spacekeep/capture-service/pkg/app"
	"github.com/spacekeep/capture-service/pkg/code"
	"github.com/spacekeep/capture-service/pkg/limiter"

	"github.com/gin-gonic/gin"
)

// RateLimiter rejects requests once their bucket runs dry.
func RateLimiter(l limiter.Face) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := l.Key(c)
		if bucket, ok := l.GetBucket(key); ok {
			if bucket.TakeAvailable(1) == 0 {
				response := app.NewResponse(c)
				response.ToResponse(code.ErrorTooManyRequest)
				c.Abort()
				return
			}
		}
		c.Next()
	}
}
