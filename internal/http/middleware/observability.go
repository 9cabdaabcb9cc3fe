package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
)

// RequestLogger logs one structured line per request, including any errors
// handlers attached with c.Error
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		if status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"duration_ms", time.Since(start).Milliseconds(),
			"ip", c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			attrs = append(attrs, "errors", c.Errors.Errors())
		}
		logger.Log(c.Request.Context(), level, "http_request", attrs...)
	}
}

// Recovery turns a panic into a 500 and reports it to Sentry
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				sentry.WithScope(func(scope *sentry.Scope) {
					scope.SetExtra("panic", fmt.Sprint(rec))
					scope.SetExtra("stack", string(debug.Stack()))
					scope.SetTag("path", c.Request.URL.Path)
					sentry.CaptureMessage("panic in request")
				})

				logger.Error("panic_recovered",
					"path", c.Request.URL.Path,
					"method", c.Request.Method,
					"panic", fmt.Sprint(rec),
				)
				abort(c, http.StatusInternalServerError, "internal_error", "Internal server error")
			}
		}()

		c.Next()
	}
}
