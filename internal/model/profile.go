package model

// Profile is an attorney record as delivered by a content source.
type Profile struct {
	ID     string   `json:"id"`     // slug
	Name   string   `json:"name"`
	Labels []string `json:"labels"` // free-text practice-area labels
	Source string   `json:"source,omitempty"`
}
