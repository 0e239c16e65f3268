package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
)

// Recovery recovers from panics, logs the stack trace and answers with the
// standard error envelope. The panic value itself stays out of the response.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				stack := string(debug.Stack())

				requestID := GetRequestID(c)

				logger.Error(
					"panic recovered",
					slog.String("request_id", requestID),
					slog.String("method", c.Request.Method),
					slog.String("path", c.Request.URL.Path),
					slog.String("client_ip", c.ClientIP()),
					slog.Any("error", err),
					slog.String("stack", stack),
				)

				c.JSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"message": "Internal server error",
					"error":   gin.H{"request_id": requestID},
				})

				c.Abort()
			}
		}()

		c.Next()
	}
}
