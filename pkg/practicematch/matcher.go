package practicematch

import (
	"errors"
	"fmt"

	"github.com/crimson-sun/practicematch/internal/engine"
	"github.com/crimson-sun/practicematch/internal/engine/catalog"
	"github.com/crimson-sun/practicematch/internal/engine/classifier"
	"github.com/crimson-sun/practicematch/internal/imagery"
	"github.com/crimson-sun/practicematch/internal/model"
)

// DefaultThreshold is the winning score required when WithThreshold is not
// given.
const DefaultThreshold = catalog.DefaultThreshold

// Matcher selects primary practice areas. Safe for concurrent use.
type Matcher struct {
	engine *engine.Engine
}

// Explanation is the scoring trace behind a selection.
type Explanation struct {
	Labels    []string    `json:"labels"` // normalized, deduplicated
	Threshold int         `json:"threshold"`
	Area      string      `json:"area,omitempty"`
	Matched   bool        `json:"matched"`
	Score     int         `json:"score"`
	Ranking   []Candidate `json:"ranking"`
}

// Candidate is one area's standing for a label set.
type Candidate struct {
	Area     string `json:"area"`
	Score    int    `json:"score"`
	Priority int    `json:"priority"`
	Bonus    int    `json:"bonus,omitempty"`
	Hits     []Hit  `json:"hits,omitempty"`
}

// Hit is one pattern matching one label.
type Hit struct {
	Pattern string `json:"pattern"`
	Label   string `json:"label"`
	Weight  int    `json:"weight"`
}

// New creates a Matcher. Without WithAreas it uses the built-in catalog.
// Custom areas are validated and every problem is reported.
func New(opts ...Option) (*Matcher, error) {
	o := options{threshold: DefaultThreshold}
	for _, opt := range opts {
		opt(&o)
	}
	if o.threshold < 0 {
		return nil, fmt.Errorf("practicematch: threshold must not be negative, got %d", o.threshold)
	}

	cat := catalog.Default()
	if o.areas != nil {
		areas := make([]model.Area, 0, len(o.areas))
		var errs []error
		for _, a := range o.areas {
			ma, err := a.internal()
			if err != nil {
				errs = append(errs, err)
				continue
			}
			areas = append(areas, ma)
		}
		if err := errors.Join(errs...); err != nil {
			return nil, fmt.Errorf("practicematch: %w", err)
		}
		c, err := catalog.New(areas)
		if err != nil {
			return nil, fmt.Errorf("practicematch: %w", err)
		}
		cat = c
	}

	return &Matcher{engine: engine.New(cat, classifier.New(o.threshold))}, nil
}

// SelectPrimaryArea returns the identifier of the best-scoring area, or
// ok == false when no area reaches the threshold. It never fails: empty,
// duplicated or unrecognized labels simply produce no match.
func (m *Matcher) SelectPrimaryArea(labels []string) (id string, ok bool) {
	return m.engine.Select(labels)
}

// Explain runs the same selection as SelectPrimaryArea and returns the
// full ranking.
func (m *Matcher) Explain(labels []string) Explanation {
	ex := m.engine.Explain(labels)
	out := Explanation{
		Labels:    ex.Labels,
		Threshold: ex.Threshold,
		Area:      ex.Area,
		Matched:   ex.Matched,
		Score:     ex.Score,
		Ranking:   make([]Candidate, len(ex.Ranking)),
	}
	for i, s := range ex.Ranking {
		c := Candidate{Area: s.Area, Score: s.Score, Priority: s.Priority, Bonus: s.Bonus}
		for _, h := range s.Hits {
			c.Hits = append(c.Hits, Hit{Pattern: h.Expr, Label: h.Label, Weight: h.Weight})
		}
		out.Ranking[i] = c
	}
	return out
}

// Threshold returns the configured winning score.
func (m *Matcher) Threshold() int {
	return m.engine.Threshold()
}

// Areas returns a copy of the catalog in declaration order.
func (m *Matcher) Areas() []Area {
	areas := m.engine.Catalog().Areas()
	out := make([]Area, len(areas))
	for i, a := range areas {
		out[i] = areaFromModel(a)
	}
	return out
}

// HeroImage returns the hero image path for an area identifier, or the
// generic practice-areas image when id is empty or has no artwork.
func HeroImage(id string) string {
	return imagery.HeroImage(id)
}
