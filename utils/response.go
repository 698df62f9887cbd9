package utils

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/Santiago26009/blog-challenge/domain"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Type   string              `json:"type"`
	Errors []domain.FieldError `json:"errors"`
}

// AbortWithError renders err and stops the handler chain. Errors that are not
// a *domain.Error are logged and reported as a generic server error.
func AbortWithError(c *gin.Context, err error) {
	de := domain.As(err)
	if de == nil {
		slog.ErrorContext(c.Request.Context(), "request failed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"error", err,
		)
		de = domain.Internal()
	}
	c.AbortWithStatusJSON(de.StatusCode(), ErrorResponse{Type: de.Type(), Errors: de.Fields})
}
