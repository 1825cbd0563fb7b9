// Package api defines the JSON envelopes shared by every HTTP handler.
package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"fitness_backend/internal/shared/validation"
)

// ErrorResponse is the body of every non-validation error.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationErrorResponse is returned with 400 when input fails validation.
type ValidationErrorResponse struct {
	Error   string                  `json:"error"`
	Details []validation.FieldError `json:"details"`
}

// SuccessResponse acknowledges operations that return no resource, such as deletes.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// MessageUnauthorized is the body text for every 401.
const MessageUnauthorized = "Unauthorized"

// AbortUnauthorized stops the chain with 401 {"error":"Unauthorized"}.
func AbortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Error: MessageUnauthorized})
}

// BadRequest writes 400 for malformed bodies or query parameters.
func BadRequest(c *gin.Context, field string, err error) {
	c.JSON(http.StatusBadRequest, ValidationErrorResponse{
		Error:   "Validation failed",
		Details: []validation.FieldError{{Field: field, Message: err.Error()}},
	})
}

// WriteError maps a usecase error onto the response.
// Validation failures become 400 with field details; anything else is logged
// and surfaces as 500 carrying the action-specific message.
func WriteError(c *gin.Context, err error, message string) {
	if ve, ok := validation.AsError(err); ok {
		c.JSON(http.StatusBadRequest, ValidationErrorResponse{
			Error:   "Validation failed",
			Details: ve.Fields,
		})
		return
	}

	slog.Error(message,
		"error", err,
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"user_id", c.GetString("userID"),
	)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: message})
}
