// Package services – Composer
//
// Composer drives the create-template form: the user fills the form,
// generates a reply from the chosen tone, then saves. Generating and saving
// are separate ordered steps; Save refuses until a reply exists. After a
// successful save the name and example text are cleared while platform,
// tone and the active flag are kept for the next template.
package services

import (
	"context"
	"strings"
	"sync"

	"github.com/tbourn/moreply-backend/internal/domain"
	"github.com/tbourn/moreply-backend/internal/reply"
)

// Form is the create-template form.
type Form struct {
	Name            string          `json:"name"`
	Platform        domain.Platform `json:"platform"`
	Tone            domain.Tone     `json:"tone"`
	EmojiPreference string          `json:"emojiPreference,omitempty"`
	ExampleText     string          `json:"exampleText"`
	IsActive        bool            `json:"isActive"`
}

// DefaultForm is the form a fresh Composer starts with.
func DefaultForm() Form {
	return Form{Platform: domain.PlatformGoogle, IsActive: true}
}

// ComposerSnapshot is the form plus the generated reply, if any.
type ComposerSnapshot struct {
	Form      Form   `json:"form"`
	ReplyText string `json:"replyText"`
}

// Creator is the part of TemplateStore the Composer depends on.
type Creator interface {
	Create(ctx context.Context, in CreateInput) (*domain.Template, error)
}

// Composer holds one form. Safe for concurrent use.
type Composer struct {
	mu    sync.Mutex
	store Creator
	form  Form
	reply string
}

// NewComposer returns a Composer with DefaultForm.
func NewComposer(store Creator) *Composer {
	return &Composer{store: store, form: DefaultForm()}
}

// Snapshot returns the current form and reply.
func (c *Composer) Snapshot() ComposerSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// SetForm replaces the form. A generated reply survives unless the tone
// changed, since the reply is derived from the tone alone.
func (c *Composer) SetForm(f Form) ComposerSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	if f.Tone != c.form.Tone {
		c.reply = ""
	}
	c.form = f
	return c.snapshotLocked()
}

// Generate synthesizes the reply for the form's tone. It needs a tone and
// an example text; the example text itself does not shape the reply.
func (c *Composer) Generate() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := ValidateGenerate(c.form.Tone, c.form.ExampleText); err != nil {
		return "", err
	}

	text, err := reply.Synthesize(c.form.Tone)
	if err != nil {
		return "", err
	}
	c.reply = text
	return text, nil
}

// Save validates the whole form, requires a generated reply, and creates
// the template.
func (c *Composer) Save(ctx context.Context) (*domain.Template, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var fe fieldErrors
	if strings.TrimSpace(c.form.Name) == "" {
		fe.add("name", msgNameRequired)
	}
	if !c.form.Platform.Valid() {
		fe.add("platform", msgPlatformRequired)
	}
	if !c.form.Tone.Valid() {
		fe.add("tone", msgToneRequired)
	}
	if strings.TrimSpace(c.form.ExampleText) == "" {
		fe.add("exampleText", msgExampleRequired)
	}
	if err := fe.err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(c.reply) == "" {
		return nil, ErrReplyNotGenerated
	}

	active := c.form.IsActive
	t, err := c.store.Create(ctx, CreateInput{
		Name:            c.form.Name,
		Platform:        c.form.Platform,
		Tone:            c.form.Tone,
		EmojiPreference: c.form.EmojiPreference,
		ExampleText:     c.form.ExampleText,
		ReplyText:       c.reply,
		IsActive:        &active,
	})
	if err != nil {
		return nil, err
	}

	c.form.Name = ""
	c.form.ExampleText = ""
	c.reply = ""
	return t, nil
}

// ValidateGenerate checks the inputs reply generation needs: a chosen tone
// and a non-blank example text. Both failures are reported together.
func ValidateGenerate(tone domain.Tone, exampleText string) error {
	var fe fieldErrors
	if !tone.Valid() {
		fe.add("tone", msgToneBeforeGenerate)
	}
	if strings.TrimSpace(exampleText) == "" {
		fe.add("exampleText", msgExampleForGenerate)
	}
	return fe.err()
}

func (c *Composer) snapshotLocked() ComposerSnapshot {
	return ComposerSnapshot{Form: c.form, ReplyText: c.reply}
}
