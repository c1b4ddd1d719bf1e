package services

import (
	"context"
	"errors"
	"testing"

	"github.com/tbourn/moreply-backend/internal/domain"
	"github.com/tbourn/moreply-backend/internal/reply"
)

func TestComposer_PromoReplyScenario(t *testing.T) {
	s := newStore(t, &fakePersister{})
	c := NewComposer(s)

	c.SetForm(Form{
		Name:        "Promo reply",
		Platform:    domain.PlatformGoogle,
		Tone:        domain.ToneFriendly,
		ExampleText: "Great service!",
		IsActive:    true,
	})
	got, err := c.Generate()
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	want, _ := reply.Synthesize(domain.ToneFriendly)
	if got != want {
		t.Fatalf("reply = %q; want the Friendly text", got)
	}

	tpl, err := c.Save(context.Background())
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	all := items(s)
	if len(all) != 1 || all[0].Name != "Promo reply" {
		t.Fatalf("store should hold exactly the new template, got %+v", all)
	}
	if tpl.Channel != domain.ChannelReview || tpl.ReplyText != want {
		t.Fatalf("unexpected template: %+v", tpl)
	}
}

func TestComposer_SaveBeforeGenerate(t *testing.T) {
	s := newStore(t, &fakePersister{})
	c := NewComposer(s)
	c.SetForm(Form{Name: "n", Platform: domain.PlatformYelp, Tone: domain.ToneProfessional, ExampleText: "meh"})

	if _, err := c.Save(context.Background()); !errors.Is(err, ErrReplyNotGenerated) {
		t.Fatalf("want ErrReplyNotGenerated, got %v", err)
	}
	if len(items(s)) != 0 {
		t.Fatalf("nothing may be created without a reply")
	}
}

func TestComposer_SaveReportsAllFields(t *testing.T) {
	c := NewComposer(newStore(t, &fakePersister{}))
	_, err := c.Save(context.Background())
	ve, ok := AsValidation(err)
	if !ok {
		t.Fatalf("want *ValidationError, got %v", err)
	}
	for _, f := range []string{"name", "tone", "exampleText"} {
		if !ve.Has(f) {
			t.Errorf("missing %s failure", f)
		}
	}
	if ve.Has("platform") {
		t.Errorf("default platform should be valid")
	}
}

func TestComposer_GenerateNeedsToneAndExample(t *testing.T) {
	c := NewComposer(newStore(t, &fakePersister{}))
	_, err := c.Generate()
	ve, ok := AsValidation(err)
	if !ok || !ve.Has("tone") || !ve.Has("exampleText") {
		t.Fatalf("want tone+exampleText failures, got %v", err)
	}
	if ve.Fields[0].Message != msgToneBeforeGenerate {
		t.Fatalf("unexpected message %q", ve.Fields[0].Message)
	}
}

func TestComposer_ResetKeepsPlatformAndTone(t *testing.T) {
	c := NewComposer(newStore(t, &fakePersister{}))
	c.SetForm(Form{Name: "n", Platform: domain.PlatformInstagram, Tone: domain.TonePlayful, ExampleText: "wow", IsActive: false})
	if _, err := c.Generate(); err != nil {
		t.Fatalf("generate: %v", err)
	}
	tpl, err := c.Save(context.Background())
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if tpl.IsActive {
		t.Fatalf("isActive from the form must be honored")
	}

	snap := c.Snapshot()
	if snap.Form.Name != "" || snap.Form.ExampleText != "" || snap.ReplyText != "" {
		t.Fatalf("name, example and reply must reset: %+v", snap)
	}
	if snap.Form.Platform != domain.PlatformInstagram || snap.Form.Tone != domain.TonePlayful || snap.Form.IsActive {
		t.Fatalf("platform, tone and isActive must be kept: %+v", snap.Form)
	}
}

func TestComposer_ToneChangeClearsReply(t *testing.T) {
	c := NewComposer(newStore(t, &fakePersister{}))
	f := Form{Name: "n", Platform: domain.PlatformX, Tone: domain.ToneCustom, ExampleText: "hi"}
	c.SetForm(f)
	_, _ = c.Generate()

	f.Name = "renamed"
	if snap := c.SetForm(f); snap.ReplyText == "" {
		t.Fatalf("editing other fields must keep the reply")
	}
	f.Tone = domain.ToneApologetic
	if snap := c.SetForm(f); snap.ReplyText != "" {
		t.Fatalf("tone change must clear the reply")
	}
}

func TestValidateGenerate(t *testing.T) {
	cases := []struct {
		name    string
		tone    domain.Tone
		example string
		fields  []string
	}{
		{"ok", domain.ToneCustom, "hi", nil},
		{"no tone", domain.ToneUnset, "hi", []string{"tone"}},
		{"blank example", domain.TonePlayful, "  ", []string{"exampleText"}},
		{"both", domain.Tone("Grumpy"), "", []string{"tone", "exampleText"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateGenerate(tc.tone, tc.example)
			if tc.fields == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			ve, ok := AsValidation(err)
			if !ok || len(ve.Fields) != len(tc.fields) {
				t.Fatalf("want fields %v, got %v", tc.fields, err)
			}
			for i, f := range tc.fields {
				if ve.Fields[i].Field != f {
					t.Errorf("field %d = %q, want %q", i, ve.Fields[i].Field, f)
				}
			}
		})
	}
}
