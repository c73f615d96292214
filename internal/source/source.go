package source

import (
	"context"

	"github.com/crimson-sun/practicematch/internal/model"
)

// Source defines the interface all attorney profile sources must implement.
type Source interface {
	// Profiles returns every attorney profile the source knows about, in
	// the order the source lists them.
	Profiles(ctx context.Context, cfg Config) ([]model.Profile, error)
}

// Config holds provider-specific connection settings.
type Config struct {
	Provider    string
	Path        string
	Endpoint    string
	APIKey      string
	DatabaseURL string
	Extra       map[string]string
}
