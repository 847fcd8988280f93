package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
)

// Recovery middleware catches panics, logs them with stack traces, and
// returns the contract's flat 500 body. The correlation ID stays in the
// response header set by the CorrelationID middleware; the body shape is
// fixed by the caller contract.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("Panic recovered",
					"error", r,
					"stack", string(debug.Stack()),
					"path", c.Request.URL.Path,
					"method", c.Request.Method,
					"correlation_id", GetCorrelationID(c),
				)

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"message": "Internal server error",
				})
			}
		}()

		c.Next()
	}
}
