// Template HTTP handlers.
//
// This file exposes REST endpoints for template resources:
//   - GET    /templates             (filtered projection, paginated, ETag support)
//   - POST   /templates             (create, Idempotency-Key aware)
//   - GET    /templates/{id}        (fetch one)
//   - DELETE /templates/{id}        (delete, 204 even when already gone)
//   - GET    /templates/export      (download as an attachment)
//
// Idempotency:
// If the client supplies an Idempotency-Key header that already produced a
// template, POST /templates returns that template with 200 and sets
// `Idempotency-Replayed: true` instead of creating a duplicate.
package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/moreply-backend/internal/domain"
	"github.com/tbourn/moreply-backend/internal/http/middleware"
	"github.com/tbourn/moreply-backend/internal/search"
	"github.com/tbourn/moreply-backend/internal/services"
	"github.com/tbourn/moreply-backend/internal/utils"
)

//
// DTOs
//

// CreateTemplateRequest is the JSON payload for creating a template.
type CreateTemplateRequest struct {
	Name            string `json:"name" example:"Promo reply"`
	Platform        string `json:"platform" example:"Google" enums:"Google,Yelp,Instagram,Facebook,X,TikTok"`
	Tone            string `json:"tone" example:"Friendly" enums:"Friendly,Professional,Playful,Apologetic,Custom"`
	EmojiPreference string `json:"emojiPreference,omitempty" example:"😊"`
	ExampleText     string `json:"exampleText" example:"Great service!"`
	ReplyText       string `json:"replyText" example:"Thank you so much for your message!"`
	// IsActive defaults to true when omitted.
	IsActive *bool `json:"isActive,omitempty" example:"true"`
}

// ListTemplatesResponse wraps a page of the filtered projection.
type ListTemplatesResponse struct {
	Templates []domain.Template `json:"templates"`
	// Platform is the effective platform filter ("All" when unfiltered).
	Platform string `json:"platform" example:"All"`
	Query    string `json:"query,omitempty"`
	// StoreTotal counts every stored template regardless of filters.
	StoreTotal int `json:"store_total"`
	// NoResults is true when the filters matched nothing.
	NoResults bool `json:"no_results"`
	// Loaded is false until the store finished its initial load.
	Loaded     bool       `json:"loaded"`
	Pagination Pagination `json:"pagination"`
}

func filterFrom(c *gin.Context) search.Filter {
	return search.Filter{
		Platform: search.NormalizePlatform(c.Query("platform")),
		Query:    strings.TrimSpace(c.Query("q")),
	}
}

//
// Handlers
//

// ListTemplates godoc
// @ID          listTemplates
// @Summary     List templates (filtered, paginated)
// @Description Returns the templates matching the platform filter and optional search text, in creation order. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Templates
// @Produce     json
//
// @Param       If-None-Match  header  string  false "Return 304 if ETag matches"   example(W/\"templates-v3\")
// @Param       platform       query   string  false "Platform filter or All"        default(All)
// @Param       q              query   string  false "Case-insensitive search text"
// @Param       page           query   int     false "Page number"                   minimum(1) default(1)
// @Param       page_size      query   int     false "Items per page"                minimum(1) maximum(200) default(50)
//
// @Success     200  {object} handlers.ListTemplatesResponse
// @Header      200  {string} ETag  "Weak ETag of the store version"
// @Success     304  {string} string "Not Modified"
// @Router      /templates [get]
func (h *Handlers) ListTemplates(c *gin.Context) {
	all, version := h.store.Snapshot()

	etag := fmt.Sprintf(`W/"templates-v%d"`, version)
	c.Header("ETag", etag)
	if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
		c.Status(http.StatusNotModified)
		return
	}

	f := filterFrom(c)
	page, pageSize := clampPagination(c)
	proj := search.Project(all, f)

	matched := len(proj.Items)
	totalPages := utils.TotalPages(matched, pageSize)
	ok(c, http.StatusOK, ListTemplatesResponse{
		Templates:  utils.PageSlice(proj.Items, page, pageSize),
		Platform:   f.Platform,
		Query:      f.Query,
		StoreTotal: proj.Total,
		NoResults:  proj.NoResults,
		Loaded:     h.store.Loaded(),
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      matched,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	})
}

// CreateTemplate godoc
// @ID          createTemplate
// @Summary     Create a template
// @Description Validates every field and stores a new template. The channel is derived from the platform.
// @Description Supports idempotency via the Idempotency-Key header (same key → same template).
// @Tags        Templates
// @Accept      json
// @Produce     json
//
// @Param       Idempotency-Key  header  string  false "Idempotency key for safe retries"  example(7a8d9f4c-1b2a-4c3d-8e9f-0123456789ab)
// @Param       body             body    handlers.CreateTemplateRequest  true  "Template fields"
//
// @Success     201  {object}  domain.Template
// @Success     200  {object}  domain.Template  "Replayed result"
// @Header      200  {string}  Idempotency-Replayed  "true when served from a previous request"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     422  {object}  handlers.ErrorResponse  "Validation failed"
// @Router      /templates [post]
func (h *Handlers) CreateTemplate(c *gin.Context) {
	var req CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	key, _ := middleware.GetIdempotencyKey(c)
	t, replayed, err := h.store.CreateIdempotent(c.Request.Context(), key, services.CreateInput{
		Name:            req.Name,
		Platform:        domain.Platform(req.Platform),
		Tone:            domain.Tone(req.Tone),
		EmojiPreference: req.EmojiPreference,
		ExampleText:     req.ExampleText,
		ReplyText:       req.ReplyText,
		IsActive:        req.IsActive,
	})
	if err != nil {
		failService(c, err)
		return
	}
	if replayed {
		c.Header("Idempotency-Replayed", "true")
		ok(c, http.StatusOK, t)
		return
	}
	c.Header("Location", c.FullPath()+"/"+t.ID)
	ok(c, http.StatusCreated, t)
}

// GetTemplate godoc
// @ID          getTemplate
// @Summary     Get a template
// @Tags        Templates
// @Produce     json
// @Param       id   path  string  true  "Template ID"
// @Success     200  {object}  domain.Template
// @Failure     404  {object}  handlers.ErrorResponse  "Template not found"
// @Router      /templates/{id} [get]
func (h *Handlers) GetTemplate(c *gin.Context) {
	t, err := h.store.Get(c.Param("id"))
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, t)
}

// DeleteTemplate godoc
// @ID          deleteTemplate
// @Summary     Delete a template
// @Description Irreversibly removes a template. Deleting an id that no longer exists is a no-op. An open edit of the template is discarded.
// @Tags        Templates
// @Param       id   path  string  true  "Template ID"
// @Success     204  {string} string "No Content"
// @Failure     503  {object} handlers.ErrorResponse "Store not loaded yet"
// @Router      /templates/{id} [delete]
func (h *Handlers) DeleteTemplate(c *gin.Context) {
	id := c.Param("id")
	if err := h.store.Delete(c.Request.Context(), id); err != nil && !errors.Is(err, services.ErrTemplateNotFound) {
		failService(c, err)
		return
	}
	h.edit.Forget(id)
	noContent(c)
}

// ExportTemplates godoc
// @ID          exportTemplates
// @Summary     Download templates
// @Description Serializes the full collection (scope=all, default) or the filtered view (scope=visible) as a text attachment named moreply-templates.txt.
// @Tags        Templates
// @Produce     plain
// @Param       format    query  string  false "json or yaml"           default(json) enums(json,yaml)
// @Param       scope     query  string  false "all or visible"         default(all)  enums(all,visible)
// @Param       platform  query  string  false "Platform filter (visible scope)"
// @Param       q         query  string  false "Search text (visible scope)"
// @Success     200  {string}  string  "Pretty-printed templates"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad scope or format"
// @Failure     404  {object}  handlers.ErrorResponse  "Nothing to export"
// @Router      /templates/export [get]
func (h *Handlers) ExportTemplates(c *gin.Context) {
	all, _ := h.store.Snapshot()

	switch scope := strings.ToLower(strings.TrimSpace(c.DefaultQuery("scope", "all"))); scope {
	case "all":
	case "visible":
		all = search.Project(all, filterFrom(c)).Items
	default:
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "scope must be all or visible")
		return
	}

	body, err := services.Export(all, c.Query("format"))
	if err != nil {
		failService(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, services.ExportFilename))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", body)
}
