package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/chai-gali/chai-gali-orders-service/internal/logging"
)

// RequestLogger logs one structured line per request.
func RequestLogger(logger *logging.LoggerV2) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		fields := logging.Fields{
			"request_id": RequestIDFromContext(c.Request.Context()),
			"method":     c.Request.Method,
			"route":      c.FullPath(),
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}

		if c.Writer.Status() >= 500 {
			logger.Error("request completed", fields)
			return
		}
		logger.Info("request completed", fields)
	}
}
