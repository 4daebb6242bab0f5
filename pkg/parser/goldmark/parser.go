// Package goldmark builds content trees from Markdown using the goldmark
// library. The Markdown is rendered to HTML the way a site generator would
// and the HTML is parsed into a dom.Document, so the text nodes match the
// ones a browser builds for the rendered page.
package goldmark

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/yaklabco/deeplinks/pkg/dom"
	htmlparser "github.com/yaklabco/deeplinks/pkg/parser/html"
)

// Flavor identifies the Markdown flavor supported by the parser.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// Parser renders Markdown and parses the result into a dom.Document.
type Parser struct {
	flavor string
	md     goldmark.Markdown
}

// New creates a new goldmark-based parser for the given flavor.
// Supported flavors are "commonmark" and "gfm".
// Invalid flavors default to "commonmark".
func New(flavor string) *Parser {
	f := flavorOrDefault(flavor)
	return &Parser{
		flavor: f,
		md:     newGoldmarkInstance(f),
	}
}

// Flavor returns the configured Markdown flavor.
func (p *Parser) Flavor() string {
	return p.flavor
}

// Parse converts raw Markdown bytes into a dom.Document. The document keeps
// the Markdown source as its Content; its tree is the rendered page.
//
// Headings get generated ids, so a fragment naming a heading is an element
// id rather than a selection.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*dom.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	source := copyContent(content)
	var rendered bytes.Buffer
	if err := p.md.Convert(source, &rendered); err != nil {
		return nil, fmt.Errorf("render %s: %w", path, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	root, err := htmlparser.ParseReader(&rendered)
	if err != nil {
		return nil, fmt.Errorf("parse rendered %s: %w", path, err)
	}
	return dom.NewDocument(path, source, root), nil
}

// Render returns the HTML the parser builds its tree from.
func (p *Parser) Render(content []byte) ([]byte, error) {
	var rendered bytes.Buffer
	if err := p.md.Convert(content, &rendered); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return rendered.Bytes(), nil
}

// flavorOrDefault returns the flavor if valid, otherwise defaults to CommonMark.
func flavorOrDefault(flavor string) string {
	switch flavor {
	case FlavorCommonMark, FlavorGFM:
		return flavor
	default:
		return FlavorCommonMark
	}
}

// newGoldmarkInstance creates a configured goldmark.Markdown instance.
//
//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmarkInstance(flavor string) goldmark.Markdown {
	opts := []goldmark.Option{
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		// Raw HTML reaches the page as written.
		goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
	}

	// Configure extensions based on flavor.
	switch flavor {
	case FlavorGFM:
		opts = append(opts,
			goldmark.WithExtensions(
				extension.GFM,
			),
		)
	case FlavorCommonMark:
		// No extensions for pure CommonMark.
	}

	return goldmark.New(opts...)
}

// copyContent creates a copy of the content slice to ensure immutability.
func copyContent(content []byte) []byte {
	if content == nil {
		return nil
	}
	cp := make([]byte, len(content))
	copy(cp, content)
	return cp
}
