package response

import (
	"errors"
	"net/http"

	"dataset-billing/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// OK sends a 200 response with the payload as-is.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created sends a 201 response with the payload as-is.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// Error sends an error response with the body shape
// {"error": <kind>, "detail": <detail>} plus any kind-specific meta fields
// (e.g. required_tokens / current_balance / message for InsufficientTokens).
// Unknown errors map to 500.
func Error(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		body := gin.H{"error": appErr.Kind}
		if appErr.Detail != "" {
			body["detail"] = appErr.Detail
		}
		for k, v := range appErr.Meta {
			body[k] = v
		}
		c.JSON(appErr.HTTPStatus, body)
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"error":  "InternalError",
		"detail": "Internal server error",
	})
}
