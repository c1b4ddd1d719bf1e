// Edit overlay HTTP handlers.
//
// At most one template is in edit at a time. The draft lives server-side
// until it is saved or cancelled:
//   - GET    /edit                       (current state)
//   - POST   /templates/{id}/edit        (begin)
//   - PATCH  /templates/{id}/edit        (update draft)
//   - POST   /templates/{id}/edit/save   (commit draft)
//   - DELETE /templates/{id}/edit        (cancel)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/moreply-backend/internal/domain"
	"github.com/tbourn/moreply-backend/internal/services"
)

// EditStateResponse describes the overlay. ID and Draft are set only while
// editing.
type EditStateResponse struct {
	State string        `json:"state" example:"editing" enums:"idle,editing"`
	ID    string        `json:"id,omitempty" example:"demo_1"`
	Draft *domain.Draft `json:"draft,omitempty"`
}

// UpdateDraftRequest patches the draft; omitted fields are left as they are.
type UpdateDraftRequest struct {
	Name      *string `json:"name,omitempty" example:"Friendly Google reply"`
	ReplyText *string `json:"replyText,omitempty" example:"Thanks a lot!"`
	IsActive  *bool   `json:"isActive,omitempty" example:"false"`
}

func editStateResponse(st services.EditState) EditStateResponse {
	if ed, ok := st.(services.Editing); ok {
		d := ed.Draft
		return EditStateResponse{State: "editing", ID: ed.ID, Draft: &d}
	}
	return EditStateResponse{State: "idle"}
}

// GetEditState godoc
// @ID          getEditState
// @Summary     Current edit state
// @Tags        Editing
// @Produce     json
// @Success     200  {object}  handlers.EditStateResponse
// @Router      /edit [get]
func (h *Handlers) GetEditState(c *gin.Context) {
	ok(c, http.StatusOK, editStateResponse(h.edit.State()))
}

// BeginEdit godoc
// @ID          beginEdit
// @Summary     Start editing a template
// @Description Seeds a draft from the committed template. Repeating the call for the template already in edit returns the current draft. Another template in edit yields 409.
// @Tags        Editing
// @Produce     json
// @Param       id   path  string  true  "Template ID"
// @Success     200  {object}  handlers.EditStateResponse
// @Failure     404  {object}  handlers.ErrorResponse  "Template not found"
// @Failure     409  {object}  handlers.ErrorResponse  "Another template is being edited"
// @Router      /templates/{id}/edit [post]
func (h *Handlers) BeginEdit(c *gin.Context) {
	ed, err := h.edit.Begin(c.Request.Context(), c.Param("id"))
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, editStateResponse(ed))
}

// UpdateDraft godoc
// @ID          updateDraft
// @Summary     Update the edit draft
// @Description Changes only the draft; the stored template is untouched until save.
// @Tags        Editing
// @Accept      json
// @Produce     json
// @Param       id    path  string  true  "Template ID"
// @Param       body  body  handlers.UpdateDraftRequest  true  "Draft fields"
// @Success     200  {object}  handlers.EditStateResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     409  {object}  handlers.ErrorResponse  "Template is not being edited"
// @Router      /templates/{id}/edit [patch]
func (h *Handlers) UpdateDraft(c *gin.Context) {
	var req UpdateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	ed, err := h.edit.Update(c.Param("id"), domain.Patch{
		Name:      req.Name,
		ReplyText: req.ReplyText,
		IsActive:  req.IsActive,
	})
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, editStateResponse(ed))
}

// SaveEdit godoc
// @ID          saveEdit
// @Summary     Save the edit draft
// @Description Commits the draft (trimmed) into the template and ends the edit. A blank name or reply keeps the edit open and returns 422. If the template was deleted meanwhile the edit ends and 204 is returned.
// @Tags        Editing
// @Produce     json
// @Param       id   path  string  true  "Template ID"
// @Success     200  {object}  domain.Template
// @Success     204  {string}  string  "Template no longer exists"
// @Failure     409  {object}  handlers.ErrorResponse  "Template is not being edited"
// @Failure     422  {object}  handlers.ErrorResponse  "Validation failed"
// @Router      /templates/{id}/edit/save [post]
func (h *Handlers) SaveEdit(c *gin.Context) {
	t, err := h.edit.Save(c.Request.Context(), c.Param("id"))
	if err != nil {
		failService(c, err)
		return
	}
	if t == nil {
		noContent(c)
		return
	}
	ok(c, http.StatusOK, t)
}

// CancelEdit godoc
// @ID          cancelEdit
// @Summary     Cancel the edit
// @Description Discards the draft. The stored template is unchanged.
// @Tags        Editing
// @Param       id   path  string  true  "Template ID"
// @Success     204  {string}  string  "No Content"
// @Failure     409  {object}  handlers.ErrorResponse  "A different template is being edited"
// @Router      /templates/{id}/edit [delete]
func (h *Handlers) CancelEdit(c *gin.Context) {
	if err := h.edit.Cancel(c.Param("id")); err != nil {
		failService(c, err)
		return
	}
	noContent(c)
}
