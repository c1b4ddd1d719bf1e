package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestChannelFor_AllPlatforms(t *testing.T) {
	cases := map[Platform]Channel{
		PlatformGoogle:    ChannelReview,
		PlatformYelp:      ChannelReview,
		PlatformInstagram: ChannelSocial,
		PlatformFacebook:  ChannelSocial,
		PlatformX:         ChannelSocial,
		PlatformTikTok:    ChannelSocial,
		"MySpace":         "",
	}
	for p, want := range cases {
		if got := ChannelFor(p); got != want {
			t.Errorf("ChannelFor(%q) = %q; want %q", p, got, want)
		}
	}
	for _, p := range Platforms {
		if !p.Valid() {
			t.Errorf("%q should be valid", p)
		}
	}
}

func TestTone_Valid(t *testing.T) {
	for _, tone := range Tones {
		if !tone.Valid() {
			t.Errorf("%q should be valid", tone)
		}
	}
	if ToneUnset.Valid() {
		t.Fatalf("unset tone must not be valid")
	}
	if Tone("Sarcastic").Valid() {
		t.Fatalf("unknown tone must not be valid")
	}
}

func TestTemplate_UnmarshalJSON_DefaultsForLegacyRecords(t *testing.T) {
	raw := `{"id":"demo_1","name":"Friendly Google reply","platform":"Instagram","tone":"","replyText":"hi","createdAt":"2024-05-01T10:00:00.000Z"}`
	var tpl Template
	if err := json.Unmarshal([]byte(raw), &tpl); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !tpl.IsActive {
		t.Fatalf("missing isActive should default to true")
	}
	if tpl.Channel != ChannelSocial {
		t.Fatalf("missing channel should be derived, got %q", tpl.Channel)
	}
	if tpl.ExampleText != "" || tpl.Tone != ToneUnset {
		t.Fatalf("unexpected optional fields: %+v", tpl)
	}
	want := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	if !tpl.CreatedAt.Equal(want) {
		t.Fatalf("createdAt = %v; want %v", tpl.CreatedAt, want)
	}
}

func TestTemplate_UnmarshalJSON_ExplicitFalseAndChannelKept(t *testing.T) {
	raw := `{"id":"x","name":"n","channel":"Review","platform":"X","replyText":"r","isActive":false,"createdAt":"2024-05-01T10:00:00Z"}`
	var tpl Template
	if err := json.Unmarshal([]byte(raw), &tpl); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if tpl.IsActive {
		t.Fatalf("explicit isActive=false must be kept")
	}
	if tpl.Channel != ChannelReview {
		t.Fatalf("stored channel must not be re-derived, got %q", tpl.Channel)
	}
}

func TestTemplate_MarshalJSON_FieldNames(t *testing.T) {
	tpl := Template{ID: "a", Name: "n", Channel: ChannelReview, Platform: PlatformGoogle, Tone: ToneFriendly, ReplyText: "r", IsActive: true}
	b, err := json.Marshal(tpl)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal map: %v", err)
	}
	for _, k := range []string{"id", "name", "channel", "platform", "tone", "replyText", "isActive", "createdAt"} {
		if _, ok := m[k]; !ok {
			t.Errorf("missing key %q in %s", k, b)
		}
	}
	if _, ok := m["exampleText"]; ok {
		t.Errorf("empty exampleText should be omitted: %s", b)
	}
}

func TestPatch_ApplyTrimsAndLeavesOthersUntouched(t *testing.T) {
	created := time.Now().UTC()
	tpl := Template{ID: "a", Name: "old", Platform: PlatformYelp, Channel: ChannelReview, Tone: ToneApologetic, ReplyText: "old reply", IsActive: true, CreatedAt: created}

	name := "  new name  "
	off := false
	got := Patch{Name: &name, IsActive: &off}.Apply(tpl)

	if got.Name != "new name" || got.IsActive {
		t.Fatalf("patched fields wrong: %+v", got)
	}
	if got.ReplyText != "old reply" || got.ID != "a" || got.Tone != ToneApologetic || !got.CreatedAt.Equal(created) {
		t.Fatalf("unpatched fields changed: %+v", got)
	}
	if (Patch{}).Apply(tpl) != tpl {
		t.Fatalf("empty patch must be identity")
	}
}

func TestDraft_PatchRoundTrip(t *testing.T) {
	tpl := Template{Name: "n", ReplyText: "r", IsActive: true}
	d := DraftOf(tpl)
	if d != (Draft{Name: "n", ReplyText: "r", IsActive: true}) {
		t.Fatalf("DraftOf = %+v", d)
	}
	reply := "changed"
	d2 := Patch{ReplyText: &reply}.ApplyTo(d)
	if d2.ReplyText != "changed" || d2.Name != "n" || !d2.IsActive {
		t.Fatalf("ApplyTo = %+v", d2)
	}
	if !(Patch{}).Empty() || PatchOf(d).Empty() {
		t.Fatalf("Empty() mismatch")
	}
	if PatchOf(d2).Apply(tpl).ReplyText != "changed" {
		t.Fatalf("PatchOf should set every field")
	}
}
