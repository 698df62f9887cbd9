package middleware

import (
	"log/slog"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"github.com/Santiago26009/blog-challenge/domain"
	"github.com/Santiago26009/blog-challenge/utils"
)

// Recovery turns a panic into a 500 in the standard error shape.
func Recovery(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error("panic recovered",
					"error", err,
					"path", c.Request.URL.Path,
					"method", c.Request.Method,
					"stack", string(debug.Stack()),
				)
				utils.AbortWithError(c, domain.Internal())
			}
		}()

		c.Next()
	}
}
