package response

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/lighter/common/internal/shared/errors"
)

// Error writes err as a JSON error envelope and aborts the chain. Errors that
// are not AppErrors are classified by apperrors.From; internal causes are
// attached to the gin context for the logging middleware, never the body.
func Error(c *gin.Context, err error) {
	appErr := apperrors.From(err)
	if appErr == nil {
		return
	}
	if appErr.Err != nil {
		_ = c.Error(appErr.Err)
	}
	c.AbortWithStatusJSON(appErr.StatusCode, appErr.ToResponse())
}

// BadRequest writes a 400 response.
func BadRequest(c *gin.Context, message string) {
	Error(c, apperrors.BadRequest(message))
}

// NotFound writes a 404 response for resource.
func NotFound(c *gin.Context, resource string) {
	Error(c, apperrors.NotFound(resource))
}

// InternalError writes a 500 response.
func InternalError(c *gin.Context, err error) {
	Error(c, apperrors.Internal("internal error", err))
}
