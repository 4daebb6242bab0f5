package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
)

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Encode implements Reporter.
func (r *JSONReporter) Encode(_ context.Context, report *EncodeReport) error {
	return r.write(report)
}

// Decode implements Reporter.
func (r *JSONReporter) Decode(_ context.Context, report *DecodeReport) error {
	return r.write(report)
}

// Nodes implements Reporter.
func (r *JSONReporter) Nodes(_ context.Context, report *NodesReport) error {
	return r.write(report)
}

// Hash implements Reporter.
func (r *JSONReporter) Hash(_ context.Context, report *HashReport) error {
	return r.write(report)
}

// Find implements Reporter.
func (r *JSONReporter) Find(_ context.Context, report *FindReport) error {
	return r.write(report)
}

func (r *JSONReporter) write(v any) (err error) {
	defer flush(r.bw, &err)

	encoder := json.NewEncoder(r.bw)
	encoder.SetEscapeHTML(false)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}
	return nil
}
