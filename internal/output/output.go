package output

import (
	"context"

	"github.com/crimson-sun/practicematch/internal/model"
)

// Output defines the interface for selection destinations.
type Output interface {
	Write(ctx context.Context, sel model.Selection) error
	Close() error
}
