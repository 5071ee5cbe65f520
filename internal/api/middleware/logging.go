package middleware

import (
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
)

// SlogRequestLogger logs one line per request after it completes.
func SlogRequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		latency := time.Since(start)
		status := c.Writer.Status()

		if logger != nil {
			attrs := []any{
				"method", method,
				"path", path,
				"status", status,
				"latency_ms", latency.Milliseconds(),
				"client_ip", c.ClientIP(),
			}
			if caller := Caller(c); caller != (common.Address{}) {
				attrs = append(attrs, "caller", caller.Hex())
			}
			logger.Info("api request", attrs...)
		}
	}
}
