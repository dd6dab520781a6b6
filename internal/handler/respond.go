package handler

import (
	"errors"
	"net/http"

	"taglayer/internal/apperror"
	"taglayer/internal/logging"
	"taglayer/internal/model"

	"github.com/gin-gonic/gin"
)

// respondError maps a service error onto the HTTP error envelope.
// Typed errors carry their own status; anything else is a 500 and the
// cause stays in the logs, not the response.
func respondError(c *gin.Context, err error) {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		c.JSON(appErr.Code.HTTPStatus(), model.ErrorResponse{
			Message: appErr.Message,
			Code:    string(appErr.Code),
			Details: appErr.Details,
		})
		return
	}

	logging.Logger.WithFields(map[string]any{
		"method": c.Request.Method,
		"path":   c.FullPath(),
	}).Errorf("unhandled error: %v", err)
	c.JSON(http.StatusInternalServerError, model.NewErrorResponse("Internal server error", ""))
}

// respondBinding reports a request body that failed binding.
func respondBinding(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, model.ErrorResponse{
		Message: "Invalid request body",
		Code:    string(apperror.CodeValidation),
		Details: err.Error(),
	})
}
