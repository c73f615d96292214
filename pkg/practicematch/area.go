package practicematch

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/crimson-sun/practicematch/internal/model"
)

// Area is one canonical practice area. Use it with WithAreas to replace the
// built-in catalog.
type Area struct {
	ID       string    `json:"id" yaml:"id"`
	Name     string    `json:"name" yaml:"name"`
	Priority int       `json:"priority" yaml:"priority"` // higher wins ties
	Patterns []Pattern `json:"patterns" yaml:"patterns"`
	Bonus    *Bonus    `json:"bonus,omitempty" yaml:"bonus,omitempty"`
}

// Pattern is a regular expression fragment matched at word boundaries
// against each normalized label, and the points it adds when it matches.
type Pattern struct {
	Expr   string `json:"expr" yaml:"expr"`
	Weight int    `json:"weight" yaml:"weight"`
}

// Bonus adds Points when its condition holds over the whole label set.
//
// Kind "co-occurrence" requires every term to match some label.
// Kind "breadth" requires at least MinLabels labels to each match a term.
type Bonus struct {
	Kind      string   `json:"kind" yaml:"kind"`
	Terms     []string `json:"terms" yaml:"terms"`
	MinLabels int      `json:"min_labels,omitempty" yaml:"min_labels,omitempty"`
	Points    int      `json:"points" yaml:"points"`
}

// ParseAreas decodes a YAML (or JSON) list of areas.
func ParseAreas(data []byte) ([]Area, error) {
	var areas []Area
	if err := yaml.Unmarshal(data, &areas); err != nil {
		return nil, fmt.Errorf("practicematch: parse areas: %w", err)
	}
	return areas, nil
}

func (a Area) internal() (model.Area, error) {
	out := model.Area{
		ID:       a.ID,
		Name:     a.Name,
		Priority: a.Priority,
		Patterns: make([]model.Pattern, len(a.Patterns)),
	}
	for i, p := range a.Patterns {
		out.Patterns[i] = model.Pattern{Expr: p.Expr, Weight: p.Weight}
	}
	if a.Bonus != nil {
		var kind model.BonusKind
		if err := kind.UnmarshalText([]byte(a.Bonus.Kind)); err != nil {
			return model.Area{}, fmt.Errorf("area %q: %w", a.ID, err)
		}
		out.Bonus = &model.BonusRule{
			Kind:      kind,
			Terms:     append([]string(nil), a.Bonus.Terms...),
			MinLabels: a.Bonus.MinLabels,
			Points:    a.Bonus.Points,
		}
	}
	return out, nil
}

func areaFromModel(a model.Area) Area {
	out := Area{
		ID:       a.ID,
		Name:     a.Name,
		Priority: a.Priority,
		Patterns: make([]Pattern, len(a.Patterns)),
	}
	for i, p := range a.Patterns {
		out.Patterns[i] = Pattern{Expr: p.Expr, Weight: p.Weight}
	}
	if a.Bonus != nil {
		out.Bonus = &Bonus{
			Kind:      a.Bonus.Kind.String(),
			Terms:     append([]string(nil), a.Bonus.Terms...),
			MinLabels: a.Bonus.MinLabels,
			Points:    a.Bonus.Points,
		}
	}
	return out
}
