package catalog

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/crimson-sun/practicematch/internal/model"
)

// Hit records one pattern firing on one normalized label.
type Hit struct {
	Expr   string `json:"expr"`
	Label  string `json:"label"`
	Weight int    `json:"weight"`
}

type pattern struct {
	expr   string
	re     *regexp.Regexp
	weight int
}

type bonus struct {
	rule  model.BonusRule
	terms []*regexp.Regexp
}

// Entry is a compiled catalog area. Entries are read-only.
type Entry struct {
	area     model.Area
	patterns []pattern
	bonus    *bonus
}

// Catalog is the ordered, validated set of canonical practice areas.
// It is immutable after New and safe for concurrent use.
type Catalog struct {
	entries []*Entry
	byID    map[string]*Entry
}

// New validates the areas and compiles their patterns. Declaration order is
// kept: it is the last tie-break when ranking.
func New(areas []model.Area) (*Catalog, error) {
	if len(areas) == 0 {
		return nil, errors.New("catalog: no areas")
	}

	c := &Catalog{
		entries: make([]*Entry, 0, len(areas)),
		byID:    make(map[string]*Entry, len(areas)),
	}
	var errs []error
	for i, a := range areas {
		e, err := compile(a)
		if err != nil {
			errs = append(errs, fmt.Errorf("area[%d] %q: %w", i, a.ID, err))
			continue
		}
		if _, dup := c.byID[a.ID]; dup {
			errs = append(errs, fmt.Errorf("area[%d]: duplicate identifier %q", i, a.ID))
			continue
		}
		c.entries = append(c.entries, e)
		c.byID[a.ID] = e
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("catalog: %w", errors.Join(errs...))
	}
	return c, nil
}

// MustNew is like New but panics on an invalid catalog. Intended for
// package-level catalogs whose definitions are compiled into the binary.
func MustNew(areas []model.Area) *Catalog {
	c, err := New(areas)
	if err != nil {
		panic(err)
	}
	return c
}

// Entries returns the compiled entries in declaration order.
func (c *Catalog) Entries() []*Entry {
	return c.entries
}

// Len returns the number of areas.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Lookup returns the area with the given identifier.
func (c *Catalog) Lookup(id string) (model.Area, bool) {
	e, ok := c.byID[id]
	if !ok {
		return model.Area{}, false
	}
	return e.Area(), true
}

// Areas returns copies of every area definition in declaration order.
func (c *Catalog) Areas() []model.Area {
	out := make([]model.Area, len(c.entries))
	for i, e := range c.entries {
		out[i] = e.Area()
	}
	return out
}

// Area returns a copy of the entry's definition.
func (e *Entry) Area() model.Area {
	a := e.area
	a.Patterns = append([]model.Pattern(nil), e.area.Patterns...)
	if e.area.Bonus != nil {
		b := *e.area.Bonus
		b.Terms = append([]string(nil), e.area.Bonus.Terms...)
		a.Bonus = &b
	}
	return a
}

// ID returns the area identifier.
func (e *Entry) ID() string { return e.area.ID }

// Priority returns the static tie-break weight.
func (e *Entry) Priority() int { return e.area.Priority }

// Hits returns every pattern of this entry that fires on label, in pattern
// order. A label may fire several patterns.
func (e *Entry) Hits(label string) []Hit {
	var hits []Hit
	for _, p := range e.patterns {
		if p.re.MatchString(label) {
			hits = append(hits, Hit{Expr: p.expr, Label: label, Weight: p.weight})
		}
	}
	return hits
}

// Bonus evaluates the entry's bonus rule against the whole label set.
func (e *Entry) Bonus(labels []string) int {
	if e.bonus == nil {
		return 0
	}
	switch e.bonus.rule.Kind {
	case model.BonusCoOccurrence:
		for _, re := range e.bonus.terms {
			if !anyMatch(re, labels) {
				return 0
			}
		}
		return e.bonus.rule.Points
	case model.BonusBreadth:
		n := 0
		for _, l := range labels {
			for _, re := range e.bonus.terms {
				if re.MatchString(l) {
					n++
					break
				}
			}
		}
		if n >= e.bonus.rule.MinLabels {
			return e.bonus.rule.Points
		}
		return 0
	default:
		return 0
	}
}

func anyMatch(re *regexp.Regexp, labels []string) bool {
	for _, l := range labels {
		if re.MatchString(l) {
			return true
		}
	}
	return false
}

func compile(a model.Area) (*Entry, error) {
	if strings.TrimSpace(a.ID) == "" {
		return nil, errors.New("empty identifier")
	}
	if len(a.Patterns) == 0 {
		return nil, errors.New("no patterns")
	}

	e := &Entry{area: a, patterns: make([]pattern, 0, len(a.Patterns))}
	for i, p := range a.Patterns {
		if p.Weight <= 0 {
			return nil, fmt.Errorf("pattern[%d] %q: weight must be positive, got %d", i, p.Expr, p.Weight)
		}
		re, err := Phrase(p.Expr)
		if err != nil {
			return nil, fmt.Errorf("pattern[%d]: %w", i, err)
		}
		e.patterns = append(e.patterns, pattern{expr: p.Expr, re: re, weight: p.Weight})
	}

	if a.Bonus != nil && a.Bonus.Kind != model.BonusNone {
		b, err := compileBonus(*a.Bonus)
		if err != nil {
			return nil, fmt.Errorf("bonus: %w", err)
		}
		e.bonus = b
	}
	// Keep private copies so later mutation of the caller's slices is invisible.
	e.area = e.Area()
	return e, nil
}

func compileBonus(r model.BonusRule) (*bonus, error) {
	switch r.Kind {
	case model.BonusCoOccurrence, model.BonusBreadth:
	default:
		return nil, fmt.Errorf("unknown kind %d", r.Kind)
	}
	if len(r.Terms) == 0 {
		return nil, errors.New("no terms")
	}
	if r.Points <= 0 {
		return nil, fmt.Errorf("points must be positive, got %d", r.Points)
	}
	if r.Kind == model.BonusBreadth && r.MinLabels < 1 {
		return nil, fmt.Errorf("min_labels must be at least 1, got %d", r.MinLabels)
	}

	b := &bonus{rule: r, terms: make([]*regexp.Regexp, 0, len(r.Terms))}
	for _, t := range r.Terms {
		re, err := Phrase(t)
		if err != nil {
			return nil, err
		}
		b.terms = append(b.terms, re)
	}
	return b, nil
}

// Phrase compiles expr so it only matches on word boundaries of a
// normalized label: "lab" does not fire inside "labor".
func Phrase(expr string) (*regexp.Regexp, error) {
	if strings.TrimSpace(expr) == "" {
		return nil, errors.New("empty expression")
	}
	inner, err := regexp.Compile(`(?:` + expr + `)`)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", expr, err)
	}
	// An expression matching "" would fire at every word boundary.
	if inner.MatchString("") {
		return nil, fmt.Errorf("expression %q matches the empty string", expr)
	}
	re, err := regexp.Compile(`\b(?:` + expr + `)\b`)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", expr, err)
	}
	return re, nil
}
