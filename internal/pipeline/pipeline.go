package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/crimson-sun/practicematch/internal/model"
	"github.com/crimson-sun/practicematch/internal/output"
	"github.com/crimson-sun/practicematch/internal/source"
)

// Processor turns a profile into a selection. *engine.Engine satisfies it.
type Processor interface {
	Process(p model.Profile) model.Selection
}

// Summary counts the outcome of one run.
type Summary struct {
	Profiles  int            `json:"profiles"`
	Matched   int            `json:"matched"`
	Unmatched int            `json:"unmatched"`
	ByArea    map[string]int `json:"by_area"`
}

// Areas returns the identifiers in ByArea, most selected first.
func (s Summary) Areas() []string {
	ids := make([]string, 0, len(s.ByArea))
	for id := range s.ByArea {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		if s.ByArea[ids[i]] != s.ByArea[ids[j]] {
			return s.ByArea[ids[i]] > s.ByArea[ids[j]]
		}
		return ids[i] < ids[j]
	})
	return ids
}

// Pipeline connects a source, a processor and an output.
type Pipeline struct {
	source    source.Source
	processor Processor
	output    output.Output
}

// New creates a Pipeline from the given components.
func New(src source.Source, proc Processor, out output.Output) *Pipeline {
	return &Pipeline{
		source:    src,
		processor: proc,
		output:    out,
	}
}

// Run loads every profile from the source, selects a primary area for each
// and writes the selections in source order. It stops at the first output
// error or when ctx is cancelled.
func (p *Pipeline) Run(ctx context.Context, cfg source.Config) (Summary, error) {
	sum := Summary{ByArea: map[string]int{}}

	profiles, err := p.source.Profiles(ctx, cfg)
	if err != nil {
		return sum, fmt.Errorf("pipeline source: %w", err)
	}

	for _, prof := range profiles {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		sel := p.processor.Process(prof)
		if err := p.output.Write(ctx, sel); err != nil {
			return sum, fmt.Errorf("pipeline output: %s: %w", prof.ID, err)
		}
		sum.Profiles++
		if sel.Matched {
			sum.Matched++
			sum.ByArea[sel.Area]++
		} else {
			sum.Unmatched++
			slog.Debug("no confident practice area", "profile", prof.ID, "labels", prof.Labels)
		}
	}

	slog.Info("batch complete",
		"provider", cfg.Provider,
		"profiles", sum.Profiles,
		"matched", sum.Matched,
		"unmatched", sum.Unmatched,
	)
	return sum, nil
}

// Close shuts down the output.
func (p *Pipeline) Close() error {
	return p.output.Close()
}
