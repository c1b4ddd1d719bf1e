// Package handlers – wiring
//
// Handlers are transport-thin: they validate input, call application
// services, and translate results into HTTP responses. They depend on the
// narrow interfaces below rather than on concrete service types.
package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/moreply-backend/internal/domain"
	"github.com/tbourn/moreply-backend/internal/services"
	"github.com/tbourn/moreply-backend/internal/utils"
)

//
// Service contracts (context-aware)
//

// TemplateStore is the template collection consumed by HTTP handlers.
//
// Implementations must be safe for concurrent use.
type TemplateStore interface {
	// Snapshot returns a copy of the collection and its version.
	Snapshot() ([]domain.Template, uint64)
	// Loaded reports whether the initial load finished.
	Loaded() bool
	// Get returns one template or services.ErrTemplateNotFound.
	Get(id string) (*domain.Template, error)
	// CreateIdempotent creates a template, replaying an earlier result for a known key.
	CreateIdempotent(ctx context.Context, key string, in services.CreateInput) (*domain.Template, bool, error)
	// Delete removes a template or returns services.ErrTemplateNotFound.
	Delete(ctx context.Context, id string) error
}

// EditOverlay is the single-row edit state machine.
type EditOverlay interface {
	State() services.EditState
	Begin(ctx context.Context, id string) (services.Editing, error)
	Update(id string, p domain.Patch) (services.Editing, error)
	Save(ctx context.Context, id string) (*domain.Template, error)
	Cancel(id string) error
	Forget(id string)
}

// Composer is the create-template form.
type Composer interface {
	Snapshot() services.ComposerSnapshot
	SetForm(f services.Form) services.ComposerSnapshot
	Generate() (string, error)
	Save(ctx context.Context) (*domain.Template, error)
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for templates, editing, composing and
// reply synthesis.
type Handlers struct {
	store    TemplateStore
	edit     EditOverlay
	composer Composer
}

// New constructs and returns a Handlers instance bound to the given services.
func New(store TemplateStore, edit EditOverlay, composer Composer) *Handlers {
	return &Handlers{store: store, edit: edit, composer: composer}
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
}

// clampPagination parses and bounds page and page_size query params to sane
// defaults and limits, returning (page, pageSize).
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 50
		maxPageSize     = 200
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.AtoiDefault(c.Query("page_size"), defaultPageSize)
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return
}
