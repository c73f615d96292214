package file

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/crimson-sun/practicematch/internal/model"
	"github.com/crimson-sun/practicematch/internal/output"
)

const defaultBufSize = 64 * 1024

// Option configures a file Output.
type Option func(*Output)

// WithTruncate replaces any existing file contents instead of appending.
func WithTruncate() Option {
	return func(o *Output) { o.flags = os.O_CREATE | os.O_WRONLY | os.O_TRUNC }
}

// WithBufSize sets the bufio.Writer buffer size. Default: 64KB.
func WithBufSize(bytes int) Option {
	return func(o *Output) {
		if bytes > 0 {
			o.bufSize = bytes
		}
	}
}

// Output writes NDJSON selections to a file through a buffered writer.
type Output struct {
	mu        sync.Mutex
	w         *bufio.Writer
	f         *os.File
	path      string
	flags     int
	bufSize   int
	verbosity output.Verbosity
	count     int
}

// New opens path for appending and returns an Output writing one selection
// per line.
func New(path string, verbosity output.Verbosity, opts ...Option) (*Output, error) {
	o := &Output{
		path:      path,
		flags:     os.O_CREATE | os.O_WRONLY | os.O_APPEND,
		bufSize:   defaultBufSize,
		verbosity: verbosity,
	}
	for _, opt := range opts {
		opt(o)
	}
	f, err := os.OpenFile(o.path, o.flags, 0o644)
	if err != nil {
		return nil, fmt.Errorf("file output: open %s: %w", o.path, err)
	}
	o.f = f
	o.w = bufio.NewWriterSize(f, o.bufSize)
	return o, nil
}

// Write appends the selection as a JSON line.
func (o *Output) Write(_ context.Context, sel model.Selection) error {
	data, err := json.Marshal(output.FormatSelection(sel, o.verbosity))
	if err != nil {
		return fmt.Errorf("file output: marshal: %w", err)
	}
	data = append(data, '\n')

	o.mu.Lock()
	defer o.mu.Unlock()
	if _, err := o.w.Write(data); err != nil {
		return fmt.Errorf("file output: write: %w", err)
	}
	o.count++
	return nil
}

// Count returns the number of selections written so far.
func (o *Output) Count() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.count
}

// Close flushes the buffer and closes the file.
func (o *Output) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if err := o.w.Flush(); err != nil {
		o.f.Close()
		return fmt.Errorf("file output: flush: %w", err)
	}
	return o.f.Close()
}
