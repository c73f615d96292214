// Package tagger derives newsroom categories and practice-area tags for
// blog posts, using the same normalization and phrase matching as the hero
// selection.
package tagger

import (
	"cmp"
	"regexp"
	"slices"
	"strings"

	"github.com/crimson-sun/practicematch/internal/engine/catalog"
	"github.com/crimson-sun/practicematch/internal/engine/normalize"
)

// DefaultLimit is the number of practice-area tags PracticeAreaTags returns
// when limit <= 0.
const DefaultLimit = 3

// Post is the subset of a blog post the tagger reads.
type Post struct {
	Title      string   `json:"title"`
	Excerpt    string   `json:"excerpt"`
	Author     string   `json:"author"`
	Categories []string `json:"categories,omitempty"`
	Tags       []string `json:"tags,omitempty"`
	Body       []string `json:"body,omitempty"` // paragraph, heading, quote and list text
}

// Tagging is the derived metadata for one post.
type Tagging struct {
	Title    string   `json:"title"`
	Category string   `json:"category"`
	Areas    []string `json:"areas"`
	Tags     []string `json:"tags"`
}

// Words common to many area names; they alone say nothing about which area
// a post is about.
var stopwords = map[string]bool{
	"and": true, "law": true, "laws": true, "legal": true, "practice": true,
	"area": true, "areas": true, "business": true, "corporate": true,
	"litigation": true, "employment": true, "insurance": true, "real": true,
	"estate": true, "government": true, "health": true, "care": true,
}

type areaTerms struct {
	name   string
	byName *regexp.Regexp // nil when the phrase is too short to trust
	nameN  int
	byID   *regexp.Regexp
	idN    int
	tokens []*regexp.Regexp
	tokenN int
}

// Tagger is immutable after New and safe for concurrent use.
type Tagger struct {
	areas []areaTerms
}

// New builds a Tagger over the catalog's area names and identifiers.
func New(cat *catalog.Catalog) *Tagger {
	t := &Tagger{}
	for _, a := range cat.Areas() {
		name := strings.TrimSpace(a.Name)
		if name == "" || a.ID == "" {
			continue
		}
		at := areaTerms{name: name}

		namePhrase := normalize.Label(name)
		if len(namePhrase) >= 6 {
			at.byName = literal(namePhrase)
			at.nameN = len(namePhrase)
		}
		idPhrase := normalize.Label(strings.ReplaceAll(a.ID, "-", " "))
		if len(idPhrase) >= 6 {
			at.byID = literal(idPhrase)
			at.idN = len(idPhrase)
		}

		var kept []string
		for _, tok := range strings.Fields(namePhrase) {
			if len(tok) >= 5 && !stopwords[tok] {
				kept = append(kept, tok)
				at.tokens = append(at.tokens, literal(tok))
			}
		}
		at.tokenN = len(strings.Join(kept, " "))

		t.areas = append(t.areas, at)
	}
	return t
}

func literal(phrase string) *regexp.Regexp {
	return regexp.MustCompile(`\b` + regexp.QuoteMeta(phrase) + `\b`)
}

// haystack is the normalized searchable text of a post.
func haystack(p Post) string {
	parts := []string{p.Title, p.Excerpt, p.Author}
	parts = append(parts, p.Categories...)
	parts = append(parts, p.Tags...)
	parts = append(parts, p.Body...)
	return normalize.Text(parts...)
}

// PracticeAreaTags returns up to limit area names mentioned by the post,
// best first. A full name mention outranks an identifier mention, which
// outranks uncommon words from the name.
func (t *Tagger) PracticeAreaTags(p Post, limit int) []string {
	return t.areaTags(haystack(p), limit)
}

func (t *Tagger) areaTags(text string, limit int) []string {
	if limit <= 0 {
		limit = DefaultLimit
	}

	type scored struct {
		name  string
		score int
	}
	var hits []scored
	for _, a := range t.areas {
		switch {
		case a.byName != nil && a.byName.MatchString(text):
			hits = append(hits, scored{a.name, 100 + a.nameN})
		case a.byID != nil && a.byID.MatchString(text):
			hits = append(hits, scored{a.name, 80 + a.idN})
		case len(a.tokens) > 0:
			n := 0
			for _, re := range a.tokens {
				if re.MatchString(text) {
					n++
				}
			}
			if n > 0 {
				hits = append(hits, scored{a.name, 20 + n*5 + a.tokenN})
			}
		}
	}

	slices.SortStableFunc(hits, func(a, b scored) int { return cmp.Compare(b.score, a.score) })

	var out []string
	for _, h := range hits {
		if !slices.Contains(out, h.name) {
			out = append(out, h.name)
		}
		if len(out) >= limit {
			break
		}
	}
	return out
}

type rule struct {
	category string
	needles  []string
}

var titleRules = []rule{
	{"Legal Alert", []string{"alert", "injunction", "court vacates", "court issues", "update"}},
	{"Firm News", []string{"welcomes", "joins", "promoted", "retires", "appointed", "elected", "announces", "congratulations", "farewell"}},
	{"Awards & Recognition", []string{"best lawyers", "super lawyers", "best law firms", "recognized", "honored", "rankings", "award"}},
	{"Community", []string{"community", "trail", "cleanup", "angel tree", "mentor", "united way"}},
}

// " ai " is padded so it only matches the word; text is padded to match.
var aiNeedles = []string{" ai ", "artificial intelligence", "generative ai"}

// Category returns the single newsroom category for a post. Title rules are
// checked in order; AI coverage anywhere in the post comes next; everything
// else is an Insight.
func (t *Tagger) Category(p Post) string {
	return category(normalize.Label(p.Title), haystack(p))
}

func category(title, text string) string {
	for _, r := range titleRules {
		if containsAny(title, r.needles) {
			return r.category
		}
	}
	if containsAny(" "+text+" ", aiNeedles) {
		return "AI & Emerging Tech"
	}
	return "Insight"
}

var topicTags = []rule{
	{"AI", aiNeedles},
	{"COVID-19", []string{"covid", "pandemic"}},
	{"Noncompete", []string{"ftc", "noncompete", "non-compete"}},
	{"Bankruptcy", []string{"bankruptcy", "debtor", "creditor"}},
	{"Construction", []string{"construction", "lien", "subcontract"}},
}

// Tags returns the post's practice-area tags (up to four) followed by
// topical tags, without duplicates.
func (t *Tagger) Tags(p Post) []string {
	text := haystack(p)
	return tags(t.areaTags(text, 4), text)
}

func tags(areas []string, text string) []string {
	out := make([]string, 0, len(areas)+len(topicTags))
	out = append(out, areas...)
	padded := " " + text + " "
	for _, r := range topicTags {
		if containsAny(padded, r.needles) && !slices.Contains(out, r.category) {
			out = append(out, r.category)
		}
	}
	return out
}

// Tag derives every piece of newsroom metadata for a post at once.
func (t *Tagger) Tag(p Post) Tagging {
	text := haystack(p)
	areas := t.areaTags(text, DefaultLimit)
	all := tags(t.areaTags(text, 4), text)
	if areas == nil {
		areas = []string{}
	}
	return Tagging{
		Title:    p.Title,
		Category: category(normalize.Label(p.Title), text),
		Areas:    areas,
		Tags:     all,
	}
}

func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
