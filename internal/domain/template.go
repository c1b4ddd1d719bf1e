// Package domain defines the auto-reply template model shared by the
// persistence, service, and HTTP layers. A Template pairs a platform and a
// tone with a reply string; the channel is derived from the platform.
package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// Channel groups platforms into review sites and social networks.
type Channel string

const (
	ChannelReview Channel = "Review"
	ChannelSocial Channel = "Social"
)

// Platform is the site a template replies on.
type Platform string

const (
	PlatformGoogle    Platform = "Google"
	PlatformYelp      Platform = "Yelp"
	PlatformInstagram Platform = "Instagram"
	PlatformFacebook  Platform = "Facebook"
	PlatformX         Platform = "X"
	PlatformTikTok    Platform = "TikTok"
)

// Platforms lists every supported platform in display order.
var Platforms = []Platform{
	PlatformGoogle, PlatformYelp, PlatformInstagram,
	PlatformFacebook, PlatformX, PlatformTikTok,
}

// Valid reports whether p is one of the supported platforms.
func (p Platform) Valid() bool {
	_, ok := channelByPlatform[p]
	return ok
}

// Tone is the voice of a reply. The zero value means "not chosen yet".
type Tone string

const (
	ToneUnset        Tone = ""
	ToneFriendly     Tone = "Friendly"
	ToneProfessional Tone = "Professional"
	TonePlayful      Tone = "Playful"
	ToneApologetic   Tone = "Apologetic"
	ToneCustom       Tone = "Custom"
)

// Tones lists every selectable tone.
var Tones = []Tone{ToneFriendly, ToneProfessional, TonePlayful, ToneApologetic, ToneCustom}

// Valid reports whether t is a selectable tone. ToneUnset is not valid.
func (t Tone) Valid() bool {
	switch t {
	case ToneFriendly, ToneProfessional, TonePlayful, ToneApologetic, ToneCustom:
		return true
	}
	return false
}

var channelByPlatform = map[Platform]Channel{
	PlatformGoogle:    ChannelReview,
	PlatformYelp:      ChannelReview,
	PlatformInstagram: ChannelSocial,
	PlatformFacebook:  ChannelSocial,
	PlatformX:         ChannelSocial,
	PlatformTikTok:    ChannelSocial,
}

// ChannelFor returns the channel a platform belongs to, or "" when the
// platform is unknown.
func ChannelFor(p Platform) Channel {
	return channelByPlatform[p]
}

// Template is a saved auto-reply.
//
// Fields:
//   - ID: opaque unique identifier, immutable.
//   - Name: trimmed, never empty once saved.
//   - Channel: derived from Platform at creation; read-only afterwards.
//   - Tone: may be unset on records written by older clients.
//   - EmojiPreference: optional decoration hint shown in listings.
//   - ExampleText: the review/comment the reply answers; omitted on legacy records.
//   - ReplyText: never empty once saved; editable independently of Tone.
//   - IsActive: user toggle, defaults to true.
//   - CreatedAt: UTC creation time, immutable.
type Template struct {
	ID              string    `json:"id"                        yaml:"id"`
	Name            string    `json:"name"                      yaml:"name"`
	Channel         Channel   `json:"channel"                   yaml:"channel"`
	Platform        Platform  `json:"platform"                  yaml:"platform"`
	Tone            Tone      `json:"tone"                      yaml:"tone"`
	EmojiPreference string    `json:"emojiPreference,omitempty" yaml:"emojiPreference,omitempty"`
	ExampleText     string    `json:"exampleText,omitempty"     yaml:"exampleText,omitempty"`
	ReplyText       string    `json:"replyText"                 yaml:"replyText"`
	IsActive        bool      `json:"isActive"                  yaml:"isActive"`
	CreatedAt       time.Time `json:"createdAt"                 yaml:"createdAt"`
}

// UnmarshalJSON tolerates records that predate some fields: a missing
// isActive defaults to true and a missing channel is derived from the platform.
func (t *Template) UnmarshalJSON(b []byte) error {
	type plain Template
	aux := struct {
		*plain
		IsActive *bool `json:"isActive"`
	}{plain: (*plain)(t)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	t.IsActive = aux.IsActive == nil || *aux.IsActive
	if t.Channel == "" {
		t.Channel = ChannelFor(t.Platform)
	}
	return nil
}

// Draft is the editable subset of a Template held while a row is in edit.
type Draft struct {
	Name      string `json:"name"`
	ReplyText string `json:"replyText"`
	IsActive  bool   `json:"isActive"`
}

// DraftOf copies the editable fields of t.
func DraftOf(t Template) Draft {
	return Draft{Name: t.Name, ReplyText: t.ReplyText, IsActive: t.IsActive}
}

// Patch is a partial update of the editable fields. Nil fields are left as is.
type Patch struct {
	Name      *string `json:"name,omitempty"`
	ReplyText *string `json:"replyText,omitempty"`
	IsActive  *bool   `json:"isActive,omitempty"`
}

// PatchOf returns a Patch that sets every field of d.
func PatchOf(d Draft) Patch {
	return Patch{Name: &d.Name, ReplyText: &d.ReplyText, IsActive: &d.IsActive}
}

// Empty reports whether the patch changes nothing.
func (p Patch) Empty() bool {
	return p.Name == nil && p.ReplyText == nil && p.IsActive == nil
}

// ApplyTo merges p into d and returns the result.
func (p Patch) ApplyTo(d Draft) Draft {
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.ReplyText != nil {
		d.ReplyText = *p.ReplyText
	}
	if p.IsActive != nil {
		d.IsActive = *p.IsActive
	}
	return d
}

// Apply merges p into t, trimming string fields, and returns the result.
// Fields outside the patch are never touched.
func (p Patch) Apply(t Template) Template {
	if p.Name != nil {
		t.Name = strings.TrimSpace(*p.Name)
	}
	if p.ReplyText != nil {
		t.ReplyText = strings.TrimSpace(*p.ReplyText)
	}
	if p.IsActive != nil {
		t.IsActive = *p.IsActive
	}
	return t
}
