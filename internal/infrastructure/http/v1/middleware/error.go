package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inventrack/internal/core/apperror"
	"inventrack/pkg/logger"
)

// ErrorHandler middleware transforms errors into consistent JSON responses.
// Hides internal errors from clients while logging full details.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		// If response already written by handler, do not override it.
		if c.Writer.Written() {
			return
		}

		if appErr, ok := apperror.AsAppError(err); ok {
			if appErr.Err != nil || appErr.HTTPStatus >= http.StatusInternalServerError {
				logger.Error(c.Request.Context(), "request error",
					"code", appErr.Code,
					"details", appErr.Details,
					"cause", appErr.Err,
				)
			}
			c.JSON(appErr.HTTPStatus, gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
				"details": publicDetails(appErr),
			})
			return
		}

		// Unknown error - log and return generic message
		logger.Error(c.Request.Context(), "unhandled error", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    apperror.CodeInternal,
			"message": "Internal server error",
			"details": map[string]any{
				"request_id": c.GetString("request_id"),
			},
		})
	}
}

// publicDetails drops the details of server-side failures; they may name
// tables or operations.
func publicDetails(e *apperror.AppError) map[string]any {
	if e.HTTPStatus < http.StatusInternalServerError {
		return e.Details
	}
	out := map[string]any{}
	if id, ok := e.Details["request_id"]; ok {
		out["request_id"] = id
	}
	return out
}
