// Package imagery maps canonical practice-area identifiers to hero images.
package imagery

// DefaultHero is shown when no practice area was selected or the area has
// no artwork.
const DefaultHero = "/images/practice-areas/practice-areas-1.jpg"

// ImageSet holds one hero image in every encoded variant.
type ImageSet struct {
	AVIF     string `json:"avif"`
	WebP     string `json:"webp"`
	JPG      string `json:"jpg"`
	Fallback string `json:"fallback"`
}

func set(base, jpg string) ImageSet {
	return ImageSet{
		AVIF:     base + ".avif",
		WebP:     base + ".webp",
		JPG:      jpg,
		Fallback: jpg,
	}
}

var images = map[string]ImageSet{
	"bankruptcy-reorganization": set("/images/practice-areas/bankruptcy-1024x284", "/images/practice-areas/Bankruptcy-1024x284.jpg"),
	"business-law":              set("/images/practice-areas/bus-corp-law-1024x284", "/images/practice-areas/Bus-corp-law-1024x284.jpg"),
	"business-litigation":       set("/images/practice-areas/bus-lit-1024x284", "/images/practice-areas/Bus-Lit-1024x284.jpg"),
	"commercial-litigation":     set("/images/practice-areas/commercail-lit-1024x284", "/images/practice-areas/Commercail-lit-1024x284.jpg"),
	"construction":              set("/images/practice-areas/construction", "/images/practice-areas/Construction.jpg"),
	"employment-law":            set("/images/practice-areas/employment-law-1024x284", "/images/practice-areas/Employment-Law-1024x284.jpg"),
	"family-law":                set("/images/practice-areas/famil-law-1024x284", "/images/practice-areas/Famil-Law-1024x284.jpg"),
	"government-law":            set("/images/practice-areas/government-law-1024x284", "/images/practice-areas/Government-Law-1024x284.jpg"),
	"health-care":               set("/images/practice-areas/health-care-1024x284", "/images/practice-areas/Health-Care-1024x284.jpg"),
	"insurance":                 set("/images/practice-areas/insurance-1024x284", "/images/practice-areas/Insurance-1024x284.jpg"),
	// Shares the employment artwork.
	"labor-employment": set("/images/practice-areas/employment-law-1024x284", "/images/practice-areas/Employment-Law-1024x284.jpg"),
}

// Lookup returns the image set for an area identifier.
func Lookup(id string) (ImageSet, bool) {
	s, ok := images[id]
	return s, ok
}

// HeroImage returns the preferred hero image URL for an area, WebP first.
// Unknown or empty identifiers get DefaultHero.
func HeroImage(id string) string {
	s, ok := images[id]
	if !ok {
		return DefaultHero
	}
	switch {
	case s.WebP != "":
		return s.WebP
	case s.JPG != "":
		return s.JPG
	default:
		return s.Fallback
	}
}

// IDs returns every identifier that has artwork.
func IDs() []string {
	ids := make([]string, 0, len(images))
	for id := range images {
		ids = append(ids, id)
	}
	return ids
}
