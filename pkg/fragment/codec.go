package fragment

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/yaklabco/deeplinks/pkg/dom"
)

// DefaultVersion is the version new fragments are written in.
const DefaultVersion = 2

// Codec is one fragment version: a grammar plus the normalisation used when
// encoding. Versions are only ever added; a fragment always decodes with the
// codec of its own version digit.
type Codec interface {
	// Version returns the leading digit of fragments this codec writes.
	Version() int

	// Encode writes the fragment for ranges, including the leading '#' and
	// version digit. It returns "" when no range survives normalisation.
	Encode(src Source, ranges []*dom.Range) string

	// Decode resolves the descriptors of body, the fragment text after the
	// version digit. It returns one result per descriptor, in order.
	Decode(src Source, body string) []Result
}

// Result is the outcome of resolving one descriptor.
type Result struct {
	// Text is the descriptor as it appeared in the fragment.
	Text string
	// Descriptor is the parsed descriptor; zero when parsing failed.
	Descriptor Descriptor
	// Range is the resolved range. Unresolved descriptors get a collapsed
	// range at the start of the document body.
	Range *dom.Range
	// Err is nil for a resolved descriptor. Otherwise it wraps
	// ErrMalformedDescriptor or ErrUnresolvedBoundary.
	Err error
}

// Resolved reports whether the descriptor matched the document.
func (r Result) Resolved() bool {
	return r.Err == nil
}

// codec implements Codec for any grammar that differs only in how numbers
// are spelled and how ranges are normalised.
type codec struct {
	version   int
	numbers   Numbering
	normalize Normalizer
}

func (c *codec) Version() int {
	return c.version
}

// boundaryPair is a normalised range with both boundary hashes computed.
type boundaryPair struct {
	start, end Boundary
	target     Target
}

func (c *codec) Encode(src Source, ranges []*dom.Range) string {
	pairs := make([]boundaryPair, 0, len(ranges))
	for _, r := range ranges {
		if r == nil || r.Collapsed() {
			continue
		}
		nr, err := c.normalize(r)
		if err != nil || nr.Collapsed() {
			continue
		}
		if !nr.StartContainer.IsText() || !nr.EndContainer.IsText() {
			continue
		}
		p := boundaryPair{
			start: Boundary{Hash: HashNode(nr.StartContainer), Offset: nr.StartOffset},
			end:   Boundary{Hash: HashNode(nr.EndContainer), Offset: nr.EndOffset},
		}
		p.target = Target{
			StartHash: p.start.Hash, EndHash: p.end.Hash,
			StartNode: nr.StartContainer, EndNode: nr.EndContainer,
		}
		pairs = append(pairs, p)
	}
	if len(pairs) == 0 {
		return ""
	}

	targets := make([]Target, len(pairs))
	for i, p := range pairs {
		targets[i] = p.target
	}
	scans := ScanTargets(src, targets)

	parts := make([]string, 0, len(pairs))
	for i, p := range pairs {
		scan := scans[i]
		// Boundaries outside the addressable text cannot be found again.
		if scan.StartIndex < 0 || scan.EndIndex < 0 {
			continue
		}
		d := Descriptor{Start: p.start, End: p.end}
		if scan.Ambiguous() {
			d.Dedupe = &Disambiguation{Tags: scan.Tags(), Start: scan.StartIndex, End: scan.EndIndex}
		}
		parts = append(parts, d.Format(c.numbers))
	}
	if len(parts) == 0 {
		return ""
	}
	return fmt.Sprintf("#%d%s", c.version, strings.Join(parts, ","))
}

func (c *codec) Decode(src Source, body string) []Result {
	body = strings.TrimPrefix(body, ".")
	texts := strings.Split(body, ",")
	results := make([]Result, len(texts))

	var targets []Target
	var pending []int
	for i, text := range texts {
		results[i].Text = text
		d, err := ParseDescriptor(text, c.numbers)
		if err != nil {
			results[i].Err = err
			continue
		}
		results[i].Descriptor = d
		targets = append(targets, Target{StartHash: d.Start.Hash, EndHash: d.End.Hash})
		pending = append(pending, i)
	}

	scans := ScanTargets(src, targets)
	for j, i := range pending {
		d := results[i].Descriptor
		start, end := scans[j].Resolve(d)
		results[i].Range, results[i].Err = buildRange(start, d.Start.Offset, end, d.End.Offset)
	}

	for i := range results {
		if results[i].Err != nil {
			results[i].Range = dom.NewRange(src.Body())
		}
	}
	return results
}

func buildRange(start *dom.Node, startOffset int, end *dom.Node, endOffset int) (*dom.Range, error) {
	if start == nil || end == nil {
		return nil, ErrUnresolvedBoundary
	}
	if startOffset > start.Length() {
		return nil, fmt.Errorf("start offset %d past node length %d: %w", startOffset, start.Length(), ErrUnresolvedBoundary)
	}
	if endOffset > end.Length() {
		return nil, fmt.Errorf("end offset %d past node length %d: %w", endOffset, end.Length(), ErrUnresolvedBoundary)
	}
	r := dom.NewRange(start)
	if err := r.SetStart(start, startOffset); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnresolvedBoundary, err)
	}
	if err := r.SetEnd(end, endOffset); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnresolvedBoundary, err)
	}
	return r, nil
}

// Registry maps version digits to codecs.
type Registry struct {
	mu     sync.RWMutex
	codecs map[int]Codec
}

// NewRegistry creates an empty codec registry.
func NewRegistry() *Registry {
	return &Registry{codecs: make(map[int]Codec)}
}

// Register adds a codec. A codec already registered for the same version
// is replaced.
func (r *Registry) Register(c Codec) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.codecs[c.Version()] = c
}

// Get returns the codec for version.
func (r *Registry) Get(version int) (Codec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.codecs[version]
	return c, ok
}

// Versions returns all registered versions in ascending order.
func (r *Registry) Versions() []int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]int, 0, len(r.codecs))
	for v := range r.codecs {
		result = append(result, v)
	}
	slices.Sort(result)
	return result
}

// Lookup returns the codec for fragment's version digit and the fragment
// text after it. A leading '#' is ignored.
func (r *Registry) Lookup(fragment string) (Codec, string, error) {
	fragment = strings.TrimPrefix(fragment, "#")
	if fragment == "" || fragment[0] < '0' || fragment[0] > '9' {
		return nil, "", fmt.Errorf("%q: %w", fragment, ErrUnknownVersion)
	}
	c, ok := r.Get(int(fragment[0] - '0'))
	if !ok {
		return nil, "", fmt.Errorf("version %c: %w", fragment[0], ErrUnknownVersion)
	}
	return c, fragment[1:], nil
}

// DefaultRegistry holds the built-in fragment versions.
// Versions register themselves during init().
//
//nolint:gochecknoglobals // Global registry is intentional for version registration
var DefaultRegistry = NewRegistry()
