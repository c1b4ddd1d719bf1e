// Composer and reply HTTP handlers.
//
//   - GET  /composer            (form + generated reply)
//   - PUT  /composer            (replace form)
//   - POST /composer/generate   (synthesize reply from tone)
//   - POST /composer/save       (create template from form + reply)
//   - POST /replies             (stateless reply synthesis)
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/moreply-backend/internal/domain"
	"github.com/tbourn/moreply-backend/internal/reply"
	"github.com/tbourn/moreply-backend/internal/services"
)

// ComposerFormRequest is the PUT /composer body. An omitted isActive means
// active, as for CreateTemplateRequest.
type ComposerFormRequest struct {
	Name            string `json:"name" example:"Promo reply"`
	Platform        string `json:"platform" example:"Google"`
	Tone            string `json:"tone" example:"Friendly"`
	EmojiPreference string `json:"emojiPreference,omitempty"`
	ExampleText     string `json:"exampleText" example:"Great service!"`
	IsActive        *bool  `json:"isActive,omitempty"`
}

func (r ComposerFormRequest) form() services.Form {
	return services.Form{
		Name:            r.Name,
		Platform:        domain.Platform(strings.TrimSpace(r.Platform)),
		Tone:            domain.Tone(strings.TrimSpace(r.Tone)),
		EmojiPreference: r.EmojiPreference,
		ExampleText:     r.ExampleText,
		IsActive:        r.IsActive == nil || *r.IsActive,
	}
}

// ReplyRequest asks for the canned reply of a tone.
type ReplyRequest struct {
	Tone        string `json:"tone" example:"Friendly"`
	ExampleText string `json:"exampleText" example:"Great service!"`
}

// ReplyResponse carries a synthesized reply.
type ReplyResponse struct {
	Tone      domain.Tone `json:"tone" example:"Friendly"`
	ReplyText string      `json:"replyText"`
}

// GetComposer godoc
// @ID          getComposer
// @Summary     Current create form
// @Tags        Composer
// @Produce     json
// @Success     200  {object}  services.ComposerSnapshot
// @Router      /composer [get]
func (h *Handlers) GetComposer(c *gin.Context) {
	ok(c, http.StatusOK, h.composer.Snapshot())
}

// PutComposer godoc
// @ID          putComposer
// @Summary     Replace the create form
// @Description A previously generated reply is kept unless the tone changes.
// @Tags        Composer
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.ComposerFormRequest  true  "Form fields"
// @Success     200  {object}  services.ComposerSnapshot
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Router      /composer [put]
func (h *Handlers) PutComposer(c *gin.Context) {
	var req ComposerFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	ok(c, http.StatusOK, h.composer.SetForm(req.form()))
}

// GenerateReply godoc
// @ID          generateReply
// @Summary     Generate the reply for the form
// @Tags        Composer
// @Produce     json
// @Success     200  {object}  services.ComposerSnapshot
// @Failure     422  {object}  handlers.ErrorResponse  "Tone or example text missing"
// @Router      /composer/generate [post]
func (h *Handlers) GenerateReply(c *gin.Context) {
	if _, err := h.composer.Generate(); err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, h.composer.Snapshot())
}

// SaveComposer godoc
// @ID          saveComposer
// @Summary     Save the composed template
// @Description Requires a generated reply. On success name and example text are cleared; platform and tone are kept.
// @Tags        Composer
// @Produce     json
// @Success     201  {object}  domain.Template
// @Failure     409  {object}  handlers.ErrorResponse  "Reply not generated"
// @Failure     422  {object}  handlers.ErrorResponse  "Validation failed"
// @Router      /composer/save [post]
func (h *Handlers) SaveComposer(c *gin.Context) {
	t, err := h.composer.Save(c.Request.Context())
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusCreated, t)
}

// SynthesizeReply godoc
// @ID          synthesizeReply
// @Summary     Synthesize a reply
// @Description Returns the fixed reply text for a tone. The example text is required but does not change the reply.
// @Tags        Replies
// @Accept      json
// @Produce     json
// @Param       body  body  handlers.ReplyRequest  true  "Tone and example text"
// @Success     200  {object}  handlers.ReplyResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     422  {object}  handlers.ErrorResponse  "Validation failed"
// @Router      /replies [post]
func (h *Handlers) SynthesizeReply(c *gin.Context) {
	var req ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}

	tone := domain.Tone(strings.TrimSpace(req.Tone))
	if err := services.ValidateGenerate(tone, req.ExampleText); err != nil {
		failService(c, err)
		return
	}

	text, err := reply.Synthesize(tone)
	if err != nil {
		failService(c, err)
		return
	}
	ok(c, http.StatusOK, ReplyResponse{Tone: tone, ReplyText: text})
}
