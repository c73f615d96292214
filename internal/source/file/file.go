// Package file loads attorney profiles from a local JSON roster.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/crimson-sun/practicematch/internal/model"
	"github.com/crimson-sun/practicematch/internal/source"
)

func init() {
	source.Register("file", func() source.Source {
		return &Source{}
	})
}

// Source reads a JSON array of attorney records from cfg.Path.
type Source struct{}

// record is one roster entry. Older rosters key attorneys by "id", newer
// ones by "slug".
type record struct {
	ID            string   `json:"id"`
	Slug          string   `json:"slug"`
	Name          string   `json:"name"`
	PracticeAreas []string `json:"practiceAreas"`
}

func (s *Source) Profiles(ctx context.Context, cfg source.Config) ([]model.Profile, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("file source: path is required")
	}
	data, err := os.ReadFile(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("file source: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes a roster document into profiles.
func Parse(data []byte) ([]model.Profile, error) {
	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("file source: decode roster: %w", err)
	}
	profiles := make([]model.Profile, 0, len(records))
	for i, r := range records {
		id := r.Slug
		if id == "" {
			id = r.ID
		}
		if id == "" {
			return nil, fmt.Errorf("file source: record %d has neither slug nor id", i)
		}
		profiles = append(profiles, model.Profile{
			ID:     id,
			Name:   r.Name,
			Labels: r.PracticeAreas,
			Source: "file",
		})
	}
	return profiles, nil
}
