// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// This file centralizes symbolic error code constants that are mapped to HTTP responses
// (via the `fail()` helper in this package) and the translation of service errors
// into those responses. Codes give clients a stable, machine-readable error taxonomy
// that supplements human-readable messages.
//
// Conventions:
//   - Codes are lowercase, snake_case, and domain-agnostic unless explicitly noted.
//   - Generic codes (e.g., bad_request, conflict) mirror common HTTP status semantics.
//   - Domain-specific codes (e.g., reply_not_generated) are reserved for business
//     rules that cannot be conveyed by status alone.
//
// Example response:
//   {
//     "request_id": "e1b9be03-4999-4289-9f03-999b042d65d6",
//     "code": "conflict",
//     "message": "another template is being edited"
//   }

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/moreply-backend/internal/services"
)

const (
	ErrCodeBadRequest  = "bad_request"
	ErrCodeNotFound    = "not_found"
	ErrCodeConflict    = "conflict"
	ErrCodeRateLimited = "too_many_requests"
	ErrCodeInternal    = "internal_error"
	ErrCodeUnavailable = "unavailable"
	ErrCodeValidation  = "validation_failed"
	ErrCodeUnsupported = "unsupported_format"

	// Domain-specific:
	ErrCodeReplyNotGenerated = "reply_not_generated"
	ErrCodeNothingToExport   = "nothing_to_export"
	ErrCodeMethodNotAllowed  = "method_not_allowed"
)

// failService maps a service error onto the envelope. Unknown errors are 500.
func failService(c *gin.Context, err error) {
	if ve, ok := services.AsValidation(err); ok {
		failValidation(c, ve)
		return
	}
	switch {
	case errors.Is(err, services.ErrTemplateNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "template not found")
	case errors.Is(err, services.ErrEditInProgress), errors.Is(err, services.ErrNotEditing):
		fail(c, http.StatusConflict, ErrCodeConflict, err.Error())
	case errors.Is(err, services.ErrReplyNotGenerated):
		fail(c, http.StatusConflict, ErrCodeReplyNotGenerated, "Please click 'Generate Reply' before saving.")
	case errors.Is(err, services.ErrNothingToExport):
		fail(c, http.StatusNotFound, ErrCodeNothingToExport, "There is no template data to download yet.")
	case errors.Is(err, services.ErrUnsupportedFormat):
		fail(c, http.StatusBadRequest, ErrCodeUnsupported, err.Error())
	case errors.Is(err, services.ErrNotInitialized):
		fail(c, http.StatusServiceUnavailable, ErrCodeUnavailable, "templates are still loading")
	default:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, err.Error())
	}
}
