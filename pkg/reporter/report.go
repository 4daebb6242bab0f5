package reporter

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/yaklabco/deeplinks/pkg/dom"
	"github.com/yaklabco/deeplinks/pkg/fragment"
	"github.com/yaklabco/deeplinks/pkg/page"
	"github.com/yaklabco/deeplinks/pkg/runner"
)

// Point is a range boundary expressed against the document's text nodes.
type Point struct {
	// Node is the index of the boundary's text node in document order, or -1
	// when the boundary is not inside a text node.
	Node   int `json:"node"`
	Offset int `json:"offset"`
}

// Span is a range with its selected text.
type Span struct {
	Start Point  `json:"start"`
	End   Point  `json:"end"`
	Text  string `json:"text"`
}

// EncodeReport is the result of building a fragment for a selection.
type EncodeReport struct {
	Path     string `json:"path"`
	Version  int    `json:"version"`
	Fragment string `json:"fragment"`
	// Location is the base location followed by the fragment, when a base
	// was given.
	Location string `json:"location,omitempty"`
	Ranges   []Span `json:"ranges"`
}

// DecodedRange is one descriptor of a decoded fragment.
type DecodedRange struct {
	Descriptor string `json:"descriptor"`
	Resolved   bool   `json:"resolved"`
	Error      string `json:"error,omitempty"`
	Span
}

// DecodeReport is the result of opening a fragment against a document.
type DecodeReport struct {
	Path     string         `json:"path"`
	Fragment string         `json:"fragment"`
	Version  int            `json:"version,omitempty"`
	Skipped  string         `json:"skipped,omitempty"`
	Ranges   []DecodedRange `json:"ranges"`
	Resolved int            `json:"resolved"`
	Applied  int            `json:"applied"`
	Warning  string         `json:"warning,omitempty"`
}

// NodeEntry is one addressable text node.
type NodeEntry struct {
	Index int    `json:"index"`
	Hash  string `json:"hash"`
	Count int    `json:"count"`
	// Length is in UTF-16 code units, the unit fragment offsets use.
	Length int    `json:"length"`
	Text   string `json:"text"`
}

// NodesReport lists the text nodes of a document.
type NodesReport struct {
	Path  string      `json:"path"`
	Nodes []NodeEntry `json:"nodes"`
	// Duplicates counts nodes whose hash is shared with another node.
	Duplicates int `json:"duplicates"`
}

// HashReport is the node hash of a literal string.
type HashReport struct {
	Text   string `json:"text"`
	Hash   string `json:"hash"`
	Length int    `json:"length"`
}

// nodeIndex maps the text nodes of doc to their document-order index.
func nodeIndex(doc *dom.Document) map[*dom.Node]int {
	nodes := doc.TextNodes()
	index := make(map[*dom.Node]int, len(nodes))
	for i, n := range nodes {
		index[n] = i
	}
	return index
}

func pointOf(index map[*dom.Node]int, n *dom.Node, offset int) Point {
	i, ok := index[n]
	if !ok {
		i = -1
	}
	return Point{Node: i, Offset: offset}
}

func spanOf(index map[*dom.Node]int, r *dom.Range) Span {
	if r == nil {
		return Span{Start: Point{Node: -1}, End: Point{Node: -1}}
	}
	return Span{
		Start: pointOf(index, r.StartContainer, r.StartOffset),
		End:   pointOf(index, r.EndContainer, r.EndOffset),
		Text:  r.String(),
	}
}

// NewEncodeReport describes the fragment built for ranges.
func NewEncodeReport(doc *dom.Document, path string, version int, frag string, ranges []*dom.Range) *EncodeReport {
	index := nodeIndex(doc)
	report := &EncodeReport{
		Path:     path,
		Version:  version,
		Fragment: frag,
		Ranges:   make([]Span, 0, len(ranges)),
	}
	for _, r := range ranges {
		report.Ranges = append(report.Ranges, spanOf(index, r))
	}
	return report
}

// NewDecodeReport describes what opening a fragment did. applyErr is the
// error returned by page.Open, if any.
func NewDecodeReport(doc *dom.Document, path string, out page.Outcome, applyErr error) *DecodeReport {
	index := nodeIndex(doc)
	report := &DecodeReport{
		Path:     path,
		Fragment: out.Fragment,
		Skipped:  out.Skipped,
		Ranges:   make([]DecodedRange, 0, len(out.Results)),
		Resolved: out.Resolved(),
		Applied:  out.Applied,
	}
	if out.Fragment != "" && out.Fragment[0] >= '0' && out.Fragment[0] <= '9' {
		report.Version = int(out.Fragment[0] - '0')
	}
	for _, res := range out.Results {
		entry := DecodedRange{Descriptor: res.Text, Resolved: res.Resolved()}
		if res.Err != nil {
			entry.Error = res.Err.Error()
			entry.Span = Span{Start: Point{Node: -1}, End: Point{Node: -1}}
		} else {
			entry.Span = spanOf(index, res.Range)
		}
		report.Ranges = append(report.Ranges, entry)
	}
	if errors.Is(applyErr, fragment.ErrMultiRangeUnsupported) {
		report.Warning = page.MultiRangeAlert
	}
	return report
}

// NewNodesReport lists every addressable text node of doc.
func NewNodesReport(doc *dom.Document, path string) *NodesReport {
	nodes := doc.TextNodes()
	hashes := make([]string, len(nodes))
	counts := make(map[string]int, len(nodes))
	for i, n := range nodes {
		hashes[i] = fragment.HashNode(n)
		counts[hashes[i]]++
	}

	report := &NodesReport{Path: path, Nodes: make([]NodeEntry, 0, len(nodes))}
	for i, n := range nodes {
		count := counts[hashes[i]]
		if count > 1 {
			report.Duplicates++
		}
		report.Nodes = append(report.Nodes, NodeEntry{
			Index:  i,
			Hash:   hashes[i],
			Count:  count,
			Length: n.Length(),
			Text:   n.Data,
		})
	}
	return report
}

// NewHashReport hashes text the way a text node holding it would be hashed.
func NewHashReport(text string) *HashReport {
	return &HashReport{
		Text:   text,
		Hash:   fragment.HashText(text),
		Length: dom.UTF16Length(text),
	}
}

// FindEntry is one searched document.
type FindEntry struct {
	Path     string         `json:"path"`
	Skipped  string         `json:"skipped,omitempty"`
	Ranges   []DecodedRange `json:"ranges,omitempty"`
	Resolved int            `json:"resolved"`
	Applied  int            `json:"applied"`
	Warning  string         `json:"warning,omitempty"`
	Error    string         `json:"error,omitempty"`
}

// FindStats summarizes a search.
type FindStats struct {
	Discovered int `json:"discovered"`
	Searched   int `json:"searched"`
	Errored    int `json:"errored"`
	Matched    int `json:"matched"`
	Resolved   int `json:"resolved"`
}

// FindReport is the result of opening one fragment against many documents.
type FindReport struct {
	Fragment string      `json:"fragment"`
	Files    []FindEntry `json:"files"`
	Stats    FindStats   `json:"stats"`
	// All includes documents without a match in the text output.
	All bool `json:"-"`
}

// NewFindReport describes a search. Paths are shown relative to base when
// base is set and the path lies under it.
func NewFindReport(result *runner.Result, base string) *FindReport {
	report := &FindReport{
		Files: make([]FindEntry, 0, len(result.Files)),
		Stats: FindStats{
			Discovered: result.Stats.FilesDiscovered,
			Searched:   result.Stats.FilesSearched,
			Errored:    result.Stats.FilesErrored,
			Matched:    result.Stats.FilesMatched,
			Resolved:   result.Stats.RangesResolved,
		},
	}

	for _, f := range result.Files {
		entry := FindEntry{Path: displayPath(f.Path, base)}
		if f.Error != nil {
			entry.Error = f.Error.Error()
			report.Files = append(report.Files, entry)
			continue
		}
		if report.Fragment == "" {
			report.Fragment = f.Outcome.Fragment
		}
		decoded := NewDecodeReport(f.Doc, entry.Path, f.Outcome, f.ApplyErr)
		entry.Skipped = decoded.Skipped
		entry.Ranges = decoded.Ranges
		entry.Resolved = decoded.Resolved
		entry.Applied = decoded.Applied
		entry.Warning = decoded.Warning
		report.Files = append(report.Files, entry)
	}
	return report
}

func displayPath(path, base string) string {
	if base == "" {
		return path
	}
	rel, err := filepath.Rel(base, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return filepath.ToSlash(rel)
}
