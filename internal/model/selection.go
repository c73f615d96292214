package model

// Selection is the engine's output for one profile.
type Selection struct {
	ProfileID string `json:"profile_id"`
	Name      string `json:"name,omitempty"`
	Area      string `json:"area,omitempty"` // empty when Matched is false
	Matched   bool   `json:"matched"`
	Score     int    `json:"score,omitempty"`
	HeroImage string `json:"hero_image,omitempty"`
}
