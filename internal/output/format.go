package output

import (
	"fmt"
	"strings"

	"github.com/crimson-sun/practicematch/internal/model"
)

// Verbosity controls which selection fields reach an output.
type Verbosity int

const (
	// Standard keeps every field.
	Standard Verbosity = iota
	// Minimal keeps only the profile, its area and the matched flag.
	Minimal
)

func (v Verbosity) String() string {
	switch v {
	case Minimal:
		return "minimal"
	default:
		return "standard"
	}
}

// ParseVerbosity maps a config string to a Verbosity.
func ParseVerbosity(s string) (Verbosity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "standard":
		return Standard, nil
	case "minimal":
		return Minimal, nil
	}
	return Standard, fmt.Errorf("unknown verbosity %q", s)
}

// FormatSelection returns a copy of the selection with fields stripped
// according to verbosity. Zeroed fields are omitted from JSON.
func FormatSelection(s model.Selection, v Verbosity) model.Selection {
	if v == Minimal {
		s.Name = ""
		s.Score = 0
		s.HeroImage = ""
	}
	return s
}
