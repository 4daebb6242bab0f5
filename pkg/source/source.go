// Package source loads documents from disk and parses them with the parser
// that fits their format.
package source

import (
	"context"
	"fmt"

	"github.com/yaklabco/deeplinks/pkg/dom"
	"github.com/yaklabco/deeplinks/pkg/fsutil"
	"github.com/yaklabco/deeplinks/pkg/langdetect"
	"github.com/yaklabco/deeplinks/pkg/parser/goldmark"
	"github.com/yaklabco/deeplinks/pkg/parser/html"
)

// Options control how a document is parsed.
type Options struct {
	// Format is "html", "markdown", or "" / "auto" to detect it.
	Format string
	// Flavor is the Markdown flavor; see goldmark.New.
	Flavor string
}

// Parser is implemented by the format parsers.
type Parser interface {
	Parse(ctx context.Context, path string, content []byte) (*dom.Document, error)
}

// Load reads path and parses it.
func Load(ctx context.Context, path string, opts Options) (*dom.Document, error) {
	content, _, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}
	return Parse(ctx, path, content, opts)
}

// Parse parses content read from path. The path is only used for format
// detection and error messages.
func Parse(ctx context.Context, path string, content []byte, opts Options) (*dom.Document, error) {
	format := ResolveFormat(path, content, opts.Format)
	doc, err := ParserFor(format, opts.Flavor).Parse(ctx, path, content)
	if err != nil {
		return nil, fmt.Errorf("parse %s as %s: %w", path, format, err)
	}
	return doc, nil
}

// ResolveFormat returns the configured format, or the detected one when
// the configuration leaves it to detection.
func ResolveFormat(path string, content []byte, configured string) langdetect.Format {
	if f, ok := langdetect.ParseFormat(configured); ok {
		return f
	}
	return langdetect.Detect(path, content)
}

// ParserFor returns the parser for format.
//
//nolint:ireturn // callers only need Parse
func ParserFor(format langdetect.Format, flavor string) Parser {
	if format == langdetect.FormatHTML {
		return html.New()
	}
	return goldmark.New(flavor)
}
