package middleware

import (
	"errors"
	"net/http"

	"placementhub-backend/internal/delivery/http/response"
	"placementhub-backend/internal/domain"
	"placementhub-backend/pkg/apperror"
	"placementhub-backend/pkg/logger"

	"github.com/gin-gonic/gin"
)

func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Check if there are errors appended to the context
		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		requestID := c.GetString(RequestIDKey)

		var appErr *apperror.AppError
		switch {
		case errors.As(err, &appErr):
			if appErr.Code >= http.StatusInternalServerError {
				logger.Log.Error("Request failed",
					"request_id", requestID, "path", c.FullPath(), "status", appErr.Code, "error", errors.Unwrap(appErr))
			}
			response.Error(c, appErr.Code, appErr.Message, nil)
		case errors.Is(err, domain.ErrNotFound):
			response.Error(c, http.StatusNotFound, "Resource not found", nil)
		default:
			// SECURITY: Never expose internal error details to clients.
			logger.Log.Error("Internal Server Error", "request_id", requestID, "path", c.FullPath(), "error", err)
			response.Error(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", nil)
		}
	}
}
