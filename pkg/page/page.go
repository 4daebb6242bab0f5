// Package page connects the fragment codec to a document being viewed: it
// applies the fragment of the URL a page was opened with, and computes the
// location to show as the selection changes.
package page

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/yaklabco/deeplinks/internal/logging"
	"github.com/yaklabco/deeplinks/pkg/dom"
	"github.com/yaklabco/deeplinks/pkg/fragment"
)

// Page is an open document plus its selection.
type Page struct {
	Doc       *dom.Document
	Selection *dom.Selection

	// Version is the fragment version Track writes. Zero means
	// fragment.DefaultVersion.
	Version int

	// Path is the location path, without fragment, of the page.
	Path string

	logger *log.Logger
}

// New creates a page for doc. A nil logger uses the default logger.
func New(doc *dom.Document, sel *dom.Selection, logger *log.Logger) *Page {
	if logger == nil {
		logger = logging.Default()
	}
	if sel == nil {
		sel = dom.NewSelection()
	}
	return &Page{Doc: doc, Selection: sel, logger: logger}
}

// Skip reasons reported by Open.
const (
	SkipNoFragment     = "no fragment"
	SkipElementID      = "fragment names an element"
	SkipUnknownVersion = "unknown fragment version"
)

// Outcome describes what Open did.
type Outcome struct {
	// Fragment is the fragment of the URL, without '#'.
	Fragment string
	// Skipped is non-empty when the fragment was left alone, and says why.
	Skipped string
	// Results holds one entry per descriptor of the fragment.
	Results []fragment.Result
	// Applied is the number of ranges the selection kept.
	Applied int
}

// Resolved counts the descriptors that matched the document.
func (o Outcome) Resolved() int {
	n := 0
	for _, r := range o.Results {
		if r.Resolved() {
			n++
		}
	}
	return n
}

// Open selects the text named by rawURL's fragment.
//
// A fragment that is empty, or that is the id of an element in the document,
// is left for ordinary navigation. A fragment with an unknown version digit
// is ignored. The only error is one wrapping fragment.ErrMultiRangeUnsupported,
// returned when the selection kept fewer ranges than the fragment names; the
// ranges it kept stay selected.
func (p *Page) Open(rawURL string) (Outcome, error) {
	location, frag, _ := strings.Cut(rawURL, "#")
	if location != "" {
		p.Path = pathOf(location)
	}
	out := Outcome{Fragment: frag}

	switch {
	case frag == "":
		out.Skipped = SkipNoFragment
	case p.Doc.ElementByID(frag) != nil:
		out.Skipped = SkipElementID
	}
	if out.Skipped != "" {
		p.logger.Debug("leaving fragment alone", logging.FieldFragment, frag, "reason", out.Skipped)
		return out, nil
	}

	results, err := fragment.Decode(p.Doc, frag)
	if errors.Is(err, fragment.ErrUnknownVersion) {
		out.Skipped = SkipUnknownVersion
		p.logger.Debug("leaving fragment alone", logging.FieldFragment, frag, "reason", out.Skipped)
		return out, nil
	}
	if err != nil {
		return out, fmt.Errorf("decode %q: %w", frag, err)
	}
	out.Results = results

	ranges := make([]*dom.Range, len(results))
	for i, r := range results {
		ranges[i] = r.Range
		if !r.Resolved() {
			p.logger.Debug("descriptor did not resolve", "descriptor", r.Text, logging.FieldError, r.Err)
		}
	}

	out.Applied, err = fragment.Apply(p.Selection, ranges)
	p.logger.Debug("applied fragment",
		logging.FieldFragment, frag,
		logging.FieldRanges, len(ranges),
		logging.FieldResolved, out.Resolved(),
		logging.FieldApplied, out.Applied,
	)
	if err != nil {
		p.logger.Debug("selection kept fewer ranges than the fragment names", logging.FieldError, err)
		return out, err
	}
	return out, nil
}

// MultiRangeAlert is the message shown to a reader when Open reports
// fragment.ErrMultiRangeUnsupported.
const MultiRangeAlert = "You opened a link that highlighted multiple selections of text, " +
	"but your browser does not support this; only the first selection is being shown."

// Track returns the location for the current selection: the page path
// followed by the selection's fragment, or the bare path when nothing is
// selected.
func (p *Page) Track() (string, error) {
	version := p.Version
	if version == 0 {
		version = fragment.DefaultVersion
	}
	frag, err := fragment.EncodeSelection(p.Doc, p.Selection, version)
	if err != nil {
		return "", err
	}
	return p.Path + frag, nil
}

// pathOf strips the scheme, host and query from a location.
func pathOf(location string) string {
	if i := strings.Index(location, "://"); i >= 0 {
		location = location[i+3:]
		if j := strings.IndexByte(location, '/'); j >= 0 {
			location = location[j:]
		} else {
			location = "/"
		}
	}
	location, _, _ = strings.Cut(location, "?")
	return location
}
