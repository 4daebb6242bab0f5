// Package reporter renders the results of the deeplinks commands as styled
// text or JSON.
package reporter

import (
	"context"
	"fmt"
)

// Compile-time interface checks.
var (
	_ Reporter = (*TextReporter)(nil)
	_ Reporter = (*JSONReporter)(nil)
)

// Reporter writes command results.
type Reporter interface {
	Encode(ctx context.Context, report *EncodeReport) error
	Decode(ctx context.Context, report *DecodeReport) error
	Nodes(ctx context.Context, report *NodesReport) error
	Hash(ctx context.Context, report *HashReport) error
	Find(ctx context.Context, report *FindReport) error
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	defaults := DefaultOptions()
	if opts.Writer == nil {
		opts.Writer = defaults.Writer
	}
	if opts.ErrorWriter == nil {
		opts.ErrorWriter = defaults.ErrorWriter
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}
	if !format.IsValid() {
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	switch format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatText:
		return NewTextReporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// flush flushes w into err unless err is already set.
func flush(w interface{ Flush() error }, err *error) {
	if flushErr := w.Flush(); *err == nil {
		*err = flushErr
	}
}
