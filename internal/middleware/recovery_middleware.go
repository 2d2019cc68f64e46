// internal/middleware/recovery_middleware.go
package middleware

import (
	"errors"
	"net/http"

	"showroom-service/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RecoveryMiddleware turns a handler panic into a 500 JSON error. A panic
// with http.ErrAbortHandler is passed on so net/http drops the connection,
// and nothing is written when the handler already started its response.
func RecoveryMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(rec)
			}

			fields := []zap.Field{
				zap.Any("panic", rec),
				zap.String("method", c.Request.Method),
				zap.String("path", c.Request.URL.Path),
				zap.Bool("response_started", c.Writer.Written()),
				zap.Stack("stack"),
			}
			if identity, ok := GetIdentity(c); ok {
				fields = append(fields, zap.String("username", identity.Username))
			}
			logger.Error("panic recovered", fields...)

			if c.Writer.Written() {
				c.Abort()
				return
			}
			response.Error(c, http.StatusInternalServerError, "internal server error")
		}()
		c.Next()
	}
}
