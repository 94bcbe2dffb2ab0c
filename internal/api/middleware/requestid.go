package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/AgentOS/integrator/internal/shared/id"
)

// RequestIDHeader carries the request ID in both directions
const RequestIDHeader = "X-Request-ID"

const requestIDKey = "request_id"

// RequestID accepts a well-formed incoming request ID or assigns a new one,
// stores it on the context and echoes it in the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		reqID := c.GetHeader(RequestIDHeader)
		if !id.IsValidPrefixed(reqID, id.RequestPrefix) {
			reqID = id.NewRequestID().String()
		}

		c.Set(requestIDKey, reqID)
		c.Header(RequestIDHeader, reqID)
		c.Next()
	}
}

// GetRequestID returns the request ID assigned by RequestID, or ""
func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
