package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// CorrelationIDHeader carries the caller-supplied request identifier.
	CorrelationIDHeader = "X-Correlation-ID"

	// CorrelationIDKey stores the identifier in the gin context.
	CorrelationIDKey = "correlation_id"
)

// CorrelationID tags every request with an identifier so one RPC call can be
// traced from the request log through the engine-call log lines. Callers may
// supply their own via the header; otherwise a fresh UUID is assigned. The
// identifier is echoed back in the response header either way.
func CorrelationID() gin.HandlerFunc {
	return func(c *gin.Context) {
		correlationID := c.GetHeader(CorrelationIDHeader)
		if correlationID == "" {
			correlationID = uuid.New().String()
		}

		c.Header(CorrelationIDHeader, correlationID)
		c.Set(CorrelationIDKey, correlationID)

		c.Next()
	}
}

// GetCorrelationID returns the request's correlation ID, or "" when the
// middleware has not run for this request.
func GetCorrelationID(c *gin.Context) string {
	id, exists := c.Get(CorrelationIDKey)
	if !exists {
		return ""
	}
	correlationID, _ := id.(string)
	return correlationID
}
