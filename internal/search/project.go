// Package search derives the visible subset of templates for a listing.
// Projection is pure: it never mutates its input, preserves store order, and
// is recomputed on every read from the current collection and filter.
//
// Two predicates compose with logical AND:
//   - platform: "All" (or empty) passes everything, any other value passes
//     only templates on exactly that platform;
//   - query: optional case-insensitive substring match over the template's
//     name, platform, tone, example text, and reply text. Matching uses
//     Unicode case folding, so "STRASSE" finds "straße".
package search

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"

	"github.com/tbourn/moreply-backend/internal/domain"
)

// AllPlatforms is the platform filter value that disables platform filtering.
const AllPlatforms = "All"

// Filter selects templates for a view.
type Filter struct {
	Platform string
	Query    string
}

// Projection is the filtered view of a collection.
type Projection struct {
	// Items are the matching templates in store order. Never nil.
	Items []domain.Template
	// Total is the size of the unfiltered collection.
	Total int
	// NoResults is true when nothing matched, so callers can render an
	// explicit "no results" state.
	NoResults bool
}

// NormalizePlatform maps user input onto a filter value: blank or any casing
// of "all" becomes AllPlatforms, a known platform in any casing becomes its
// canonical spelling, and anything else is returned trimmed (and will match
// nothing).
func NormalizePlatform(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, AllPlatforms) {
		return AllPlatforms
	}
	for _, p := range domain.Platforms {
		if strings.EqualFold(s, string(p)) {
			return string(p)
		}
	}
	return s
}

// Project applies f to templates.
func Project(templates []domain.Template, f Filter) Projection {
	m := newMatcher(f)
	items := make([]domain.Template, 0, len(templates))
	for _, t := range templates {
		if m.match(t) {
			items = append(items, t)
		}
	}
	return Projection{
		Items:     items,
		Total:     len(templates),
		NoResults: len(items) == 0,
	}
}

type matcher struct {
	platform string
	query    string
	fold     cases.Caser
}

func newMatcher(f Filter) *matcher {
	m := &matcher{
		platform: NormalizePlatform(f.Platform),
		fold:     cases.Fold(),
	}
	if q := normalizeWhitespace(f.Query); q != "" {
		m.query = m.fold.String(q)
	}
	return m
}

func (m *matcher) match(t domain.Template) bool {
	if m.platform != AllPlatforms && string(t.Platform) != m.platform {
		return false
	}
	if m.query == "" {
		return true
	}
	hay := strings.Join([]string{
		t.Name, string(t.Platform), string(t.Tone), t.ExampleText, t.ReplyText,
	}, " ")
	return strings.Contains(m.fold.String(normalizeWhitespace(hay)), m.query)
}

var wsRE = regexp.MustCompile(`\s+`)

// normalizeWhitespace collapses runs of whitespace to one space and trims.
func normalizeWhitespace(s string) string {
	return strings.TrimSpace(wsRE.ReplaceAllString(s, " "))
}
