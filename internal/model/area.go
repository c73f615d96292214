package model

import "fmt"

// BonusKind selects how a BonusRule is evaluated against a label set.
type BonusKind int

const (
	BonusNone        BonusKind = iota
	BonusCoOccurrence           // every term matches somewhere in the label set
	BonusBreadth                // at least MinLabels distinct labels match one of the terms
)

// String returns the name used in catalog dumps and explanations.
func (k BonusKind) String() string {
	switch k {
	case BonusNone:
		return "none"
	case BonusCoOccurrence:
		return "co-occurrence"
	case BonusBreadth:
		return "breadth"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (k BonusKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *BonusKind) UnmarshalText(b []byte) error {
	switch string(b) {
	case "", "none":
		*k = BonusNone
	case "co-occurrence":
		*k = BonusCoOccurrence
	case "breadth":
		*k = BonusBreadth
	default:
		return fmt.Errorf("unknown bonus kind %q", b)
	}
	return nil
}

// Pattern is a whole-word or whole-phrase matcher with its score contribution.
// Expr is a regular expression fragment; it is anchored at word boundaries
// when the catalog compiles it.
type Pattern struct {
	Expr   string `json:"expr" yaml:"expr"`
	Weight int    `json:"weight" yaml:"weight"`
}

// BonusRule adds Points to an area's score when its combination condition
// holds across the whole normalized label set.
type BonusRule struct {
	Kind      BonusKind `json:"kind" yaml:"kind"`
	Terms     []string  `json:"terms,omitempty" yaml:"terms,omitempty"`
	MinLabels int       `json:"min_labels,omitempty" yaml:"min_labels,omitempty"`
	Points    int       `json:"points" yaml:"points"`
}

// Area is one canonical practice area in the catalog.
type Area struct {
	ID       string     `json:"id" yaml:"id"`     // e.g. "labor-employment"
	Name     string     `json:"name" yaml:"name"` // e.g. "Labor & Employment"
	Priority int        `json:"priority" yaml:"priority"`
	Patterns []Pattern  `json:"patterns" yaml:"patterns"`
	Bonus    *BonusRule `json:"bonus,omitempty" yaml:"bonus,omitempty"`
}
