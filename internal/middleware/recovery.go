package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/spacekeep/capture-service/pkg/code"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecoveryWithLogger converts handler panics into a logged 200 envelope
// with an internal error code.
func RecoveryWithLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("recovered from panic",
					zap.String("router", c.Request.URL.Path),
					zap.String("method", c.Request.Method),
					zap.String("panic", fmt.Sprintf("%v", err)),
					zap.String("stack", string(debug.Stack())),
				)
				c.AbortWithStatusJSON(http.StatusOK,
					code.ErrorServerInternal.WithDetails(fmt.Sprintf("%v", err)))
			}
		}()
		c.Next()
	}
}
