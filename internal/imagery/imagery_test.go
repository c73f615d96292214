package imagery

import (
	"strings"
	"testing"

	"github.com/crimson-sun/practicematch/internal/engine/catalog"
)

func TestHeroImage(t *testing.T) {
	tests := []struct {
		id   string
		want string
	}{
		{"construction", "/images/practice-areas/construction.webp"},
		{"labor-employment", "/images/practice-areas/employment-law-1024x284.webp"},
		{"", DefaultHero},
		{"philately", DefaultHero},
	}
	for _, tt := range tests {
		if got := HeroImage(tt.id); got != tt.want {
			t.Errorf("HeroImage(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestLookup(t *testing.T) {
	s, ok := Lookup("insurance")
	if !ok {
		t.Fatal("Lookup(insurance) not found")
	}
	if !strings.HasSuffix(s.AVIF, ".avif") || !strings.HasSuffix(s.JPG, ".jpg") || s.Fallback != s.JPG {
		t.Fatalf("unexpected image set: %+v", s)
	}
	if _, ok := Lookup("nope"); ok {
		t.Fatal("expected miss for unknown id")
	}
}

// Every built-in area must have artwork, otherwise a confident match still
// renders the generic hero.
func TestEveryDefaultAreaHasArtwork(t *testing.T) {
	for _, a := range catalog.Default().Areas() {
		if _, ok := Lookup(a.ID); !ok {
			t.Errorf("area %q has no hero image", a.ID)
		}
	}
	if len(IDs()) != catalog.Default().Len() {
		t.Errorf("image table has %d entries, catalog has %d", len(IDs()), catalog.Default().Len())
	}
}
