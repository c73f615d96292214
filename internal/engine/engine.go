package engine

import (
	"context"
	"log/slog"

	"github.com/crimson-sun/practicematch/internal/engine/catalog"
	"github.com/crimson-sun/practicematch/internal/engine/classifier"
	"github.com/crimson-sun/practicematch/internal/engine/dedup"
	"github.com/crimson-sun/practicematch/internal/engine/normalize"
	"github.com/crimson-sun/practicematch/internal/imagery"
	"github.com/crimson-sun/practicematch/internal/model"
)

// Explanation is the full scoring trace for one label list.
type Explanation struct {
	Labels    []string           `json:"labels"` // normalized label set
	Threshold int                `json:"threshold"`
	Area      string             `json:"area,omitempty"`
	Matched   bool               `json:"matched"`
	Score     int                `json:"score"`
	Ranking   []classifier.Score `json:"ranking"`
}

// Engine orchestrates the normalize → collapse → classify pipeline.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	catalog    *catalog.Catalog
	classifier *classifier.Classifier
}

// New creates an Engine with the provided components.
func New(cat *catalog.Catalog, cls *classifier.Classifier) *Engine {
	return &Engine{
		catalog:    cat,
		classifier: cls,
	}
}

// Catalog returns the catalog the engine scores against.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Threshold returns the classifier's confidence threshold.
func (e *Engine) Threshold() int {
	return e.classifier.Threshold
}

// LabelSet normalizes raw labels into the distinct, non-empty set used for
// scoring.
func LabelSet(raw []string) []string {
	return dedup.Unique(normalize.Labels(raw))
}

// Select returns the primary area for the raw labels, or ok=false when no
// area is confidently matched.
func (e *Engine) Select(raw []string) (area string, ok bool) {
	res := e.classifier.Classify(LabelSet(raw), e.catalog)
	return res.Area, res.Matched
}

// Explain runs the same selection and returns the full trace.
func (e *Engine) Explain(raw []string) Explanation {
	labels := LabelSet(raw)
	res := e.classifier.Classify(labels, e.catalog)
	if labels == nil {
		labels = []string{}
	}
	return Explanation{
		Labels:    labels,
		Threshold: e.classifier.Threshold,
		Area:      res.Area,
		Matched:   res.Matched,
		Score:     res.Score,
		Ranking:   res.Ranking,
	}
}

// Process selects the hero area for one attorney profile.
func (e *Engine) Process(p model.Profile) model.Selection {
	ex := e.Explain(p.Labels)

	if slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		slog.Debug("profile scored",
			"profile", p.ID,
			"labels", ex.Labels,
			"area", ex.Area,
			"score", ex.Score,
			"runner_up", runnerUp(ex.Ranking),
		)
	}

	return model.Selection{
		ProfileID: p.ID,
		Name:      p.Name,
		Area:      ex.Area,
		Matched:   ex.Matched,
		Score:     ex.Score,
		HeroImage: imagery.HeroImage(ex.Area),
	}
}

// ProcessBatch selects hero areas for a slice of profiles, in input order.
func (e *Engine) ProcessBatch(profiles []model.Profile) []model.Selection {
	out := make([]model.Selection, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, e.Process(p))
	}
	return out
}

func runnerUp(ranking []classifier.Score) string {
	if len(ranking) < 2 || ranking[1].Score == 0 {
		return ""
	}
	return ranking[1].Area
}
