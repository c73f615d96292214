package multi

import (
	"context"
	"errors"

	"github.com/crimson-sun/practicematch/internal/model"
	"github.com/crimson-sun/practicematch/internal/output"
)

// Multi fans out selections to several outputs in order. A failing output
// does not stop delivery to the rest.
type Multi struct {
	outputs []output.Output
}

// New creates a Multi that fans out to the given outputs.
func New(outputs ...output.Output) *Multi {
	return &Multi{outputs: outputs}
}

// Write delivers sel to every wrapped output and joins their errors.
func (m *Multi) Write(ctx context.Context, sel model.Selection) error {
	var errs []error
	for _, o := range m.outputs {
		if err := o.Write(ctx, sel); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close closes every wrapped output, collecting errors.
func (m *Multi) Close() error {
	var errs []error
	for _, o := range m.outputs {
		if err := o.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Len returns the number of wrapped outputs.
func (m *Multi) Len() int {
	return len(m.outputs)
}
