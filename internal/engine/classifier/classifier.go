package classifier

import (
	"cmp"
	"slices"

	"github.com/crimson-sun/practicematch/internal/engine/catalog"
)

// Score is one catalog area's total for a label set.
type Score struct {
	Area     string        `json:"area"`
	Score    int           `json:"score"`
	Priority int           `json:"priority"`
	Bonus    int           `json:"bonus,omitempty"`
	Hits     []catalog.Hit `json:"hits,omitempty"`
}

// Result holds the outcome of classifying one label set.
type Result struct {
	Area    string // empty when Matched is false
	Score   int    // top score, reported even when below threshold
	Matched bool
	Ranking []Score // every area, best first
}

// Classifier scores normalized labels against catalog areas.
type Classifier struct {
	Threshold int
}

// New creates a Classifier with the given confidence threshold.
func New(threshold int) *Classifier {
	return &Classifier{Threshold: threshold}
}

// Rank scores every area and orders them by score, then priority, then
// catalog declaration order.
func (c *Classifier) Rank(labels []string, cat *catalog.Catalog) []Score {
	entries := cat.Entries()
	ranking := make([]Score, 0, len(entries))
	for _, e := range entries {
		s := Score{Area: e.ID(), Priority: e.Priority()}
		for _, l := range labels {
			if l == "" {
				continue
			}
			for _, h := range e.Hits(l) {
				s.Score += h.Weight
				s.Hits = append(s.Hits, h)
			}
		}
		s.Bonus = e.Bonus(labels)
		s.Score += s.Bonus
		ranking = append(ranking, s)
	}

	slices.SortStableFunc(ranking, func(a, b Score) int {
		if n := cmp.Compare(b.Score, a.Score); n != 0 {
			return n
		}
		return cmp.Compare(b.Priority, a.Priority)
	})
	return ranking
}

// Classify returns the best area for the labels. Below threshold the result
// is unmatched rather than a weak guess.
func (c *Classifier) Classify(labels []string, cat *catalog.Catalog) Result {
	ranking := c.Rank(labels, cat)
	if len(ranking) == 0 {
		return Result{}
	}

	top := ranking[0]
	if top.Score < c.Threshold || top.Score <= 0 {
		return Result{Score: top.Score, Ranking: ranking}
	}
	return Result{Area: top.Area, Score: top.Score, Matched: true, Ranking: ranking}
}
