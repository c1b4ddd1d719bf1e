// Package handlers implements the template, edit, and composer endpoints.
//
// Every failure is written as an ErrorResponse with a stable code; 5xx
// failures are also logged through the request-scoped logger. Validation
// failures carry one entry per failing field:
//
//	HTTP/1.1 422 Unprocessable Entity
//	{
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "code": "validation_failed",
//	  "message": "one or more fields are invalid",
//	  "fields": [{"field": "name", "message": "Please give this template a name."}]
//	}
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/moreply-backend/internal/http/middleware"
	"github.com/tbourn/moreply-backend/internal/services"
)

// ErrorResponse is the error body shared by all endpoints.
type ErrorResponse struct {
	// Echo of X-Request-ID
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Stable machine-readable code
	Code string `json:"code" example:"template_not_found"`
	// Display-safe message
	Message string `json:"message" example:"template not found"`
	// Per-field failures, only for validation_failed
	Fields []services.FieldError `json:"fields,omitempty"`
}

func envelope(c *gin.Context, code, msg string) ErrorResponse {
	return ErrorResponse{
		RequestID: c.Writer.Header().Get("X-Request-ID"),
		Code:      code,
		Message:   msg,
	}
}

// fail aborts the chain with an error envelope.
func fail(c *gin.Context, status int, code, msg string) {
	if status >= http.StatusInternalServerError {
		middleware.LoggerFrom(c).Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("request failed")
	}
	c.AbortWithStatusJSON(status, envelope(c, code, msg))
}

func failValidation(c *gin.Context, ve *services.ValidationError) {
	resp := envelope(c, ErrCodeValidation, "one or more fields are invalid")
	resp.Fields = ve.Fields
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, resp)
}

// Fail lets the router write NoRoute/NoMethod errors in the same shape.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

func ok(c *gin.Context, status int, body any) { c.JSON(status, body) }

func noContent(c *gin.Context) { c.Status(http.StatusNoContent) }
