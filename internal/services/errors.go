// Package services holds the template store, its edit overlay and the
// creation flow. This file centralizes service-level error values so that
// they can be consistently returned by service methods and checked by callers.
//
// Translation into user-facing messages or HTTP status codes is performed at
// the handler layer.
package services

import (
	"errors"
	"strings"
)

var (
	// ErrTemplateNotFound indicates that no template has the requested id.
	// Delete and ReplaceField callers treat it as a silent no-op.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrAlreadyInitialized is returned by a second TemplateStore.Initialize.
	ErrAlreadyInitialized = errors.New("template store already initialized")

	// ErrNotInitialized is returned by mutations issued before Initialize, so
	// an empty in-memory collection can never overwrite stored data.
	ErrNotInitialized = errors.New("template store not initialized")

	// ErrEditInProgress is returned when an edit is started while a different
	// template is already being edited.
	ErrEditInProgress = errors.New("another template is being edited")

	// ErrNotEditing is returned when a draft operation names a template that
	// is not the one currently being edited.
	ErrNotEditing = errors.New("template is not being edited")

	// ErrReplyNotGenerated is returned when saving a composed template before
	// a reply was generated.
	ErrReplyNotGenerated = errors.New("reply not generated")

	// ErrNothingToExport is returned when exporting an empty collection.
	ErrNothingToExport = errors.New("no template data to export")

	// ErrUnsupportedFormat is returned for an export format other than json or yaml.
	ErrUnsupportedFormat = errors.New("unsupported export format")
)

// FieldError is one failing input field with a user-facing message.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every failing field of an input, not just the first.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Has reports whether field is among the failures.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// fieldErrors accumulates failures in check order.
type fieldErrors []FieldError

func (fe *fieldErrors) add(field, msg string) {
	*fe = append(*fe, FieldError{Field: field, Message: msg})
}

// err returns a *ValidationError, or nil when nothing failed.
func (fe fieldErrors) err() error {
	if len(fe) == 0 {
		return nil
	}
	return &ValidationError{Fields: append([]FieldError(nil), fe...)}
}

// AsValidation unwraps a *ValidationError from err.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// User-facing validation messages.
const (
	msgNameRequired       = "Please give this template a name."
	msgPlatformRequired   = "Please choose a platform."
	msgToneRequired       = "Please choose a reply tone."
	msgExampleRequired    = "Please add an example review or comment."
	msgReplyRequired      = "Please click 'Generate Reply' before saving."
	msgReplyBlank         = "Reply text cannot be empty."
	msgToneBeforeGenerate = "Please pick a tone before generating."
	msgExampleForGenerate = "Please add something we are replying to."
)
