package response

import (
	"errors"
	"net/http"

	"tigerlife/internal/pkg/apperr"
	"tigerlife/internal/workflow"

	"github.com/gin-gonic/gin"
)

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

// SuccessWithWarnings is used by workflows that finished in a degraded mode.
func SuccessWithWarnings(c *gin.Context, statusCode int, data interface{}, warnings []string) {
	if len(warnings) == 0 {
		Success(c, statusCode, data)
		return
	}
	c.JSON(statusCode, gin.H{
		"success":  true,
		"data":     data,
		"warnings": warnings,
	})
}

// Outcome writes a workflow's primary record. Failed side effects only show
// up as warnings when the workflow raised one.
func Outcome[T any](c *gin.Context, statusCode int, o *workflow.Outcome[T]) {
	SuccessWithWarnings(c, statusCode, o.Record, o.Warnings)
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error":   message,
		"code":    code,
	})
}

const internalMessage = "Internal server error"

// FromError writes err with the status matching its apperr kind. Errors
// without a kind are attached to the context for the request logger and
// the client only gets a generic message.
func FromError(c *gin.Context, err error) {
	code := apperr.Kind(err)
	if code == "INTERNAL" {
		_ = c.Error(err)
		Error(c, http.StatusInternalServerError, code, internalMessage)
		return
	}
	Error(c, StatusFor(err), code, err.Error())
}

func StatusFor(err error) int {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrAuthorization):
		return http.StatusForbidden
	case errors.Is(err, apperr.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrRemote):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
