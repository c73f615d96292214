package stdout

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/crimson-sun/practicematch/internal/model"
	"github.com/crimson-sun/practicematch/internal/output"
)

// Output writes JSON-encoded selections to stdout, one per line unless
// pretty-printing.
type Output struct {
	enc       *json.Encoder
	verbosity output.Verbosity
}

// New creates a stdout Output.
func New(verbosity output.Verbosity, pretty bool) *Output {
	return NewWriter(os.Stdout, verbosity, pretty)
}

// NewWriter is New with an explicit destination.
func NewWriter(w io.Writer, verbosity output.Verbosity, pretty bool) *Output {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return &Output{enc: enc, verbosity: verbosity}
}

func (o *Output) Write(_ context.Context, sel model.Selection) error {
	if err := o.enc.Encode(output.FormatSelection(sel, o.verbosity)); err != nil {
		return fmt.Errorf("stdout output: %w", err)
	}
	return nil
}

func (o *Output) Close() error {
	return nil
}
