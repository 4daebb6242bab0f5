package runner

import (
	"github.com/yaklabco/deeplinks/pkg/dom"
	"github.com/yaklabco/deeplinks/pkg/page"
)

// FileOutcome is what opening the fragment did to one document.
type FileOutcome struct {
	// Path is the file path that was searched.
	Path string

	// Doc is the parsed document. Nil if Error is set.
	Doc *dom.Document

	// Outcome is the result of opening the fragment against Doc.
	Outcome page.Outcome

	// ApplyErr is the error page.Open returned, if any. The ranges the
	// selection kept are still in Outcome.
	ApplyErr error

	// Error is set if the file could not be read or parsed.
	Error error
}

// Matched reports whether at least one range of the fragment resolved.
func (o FileOutcome) Matched() bool {
	return o.Error == nil && o.Outcome.Resolved() > 0
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesSearched is the number of files parsed and searched.
	FilesSearched int

	// FilesErrored is the number of files that could not be read or parsed.
	FilesErrored int

	// FilesMatched is the number of files in which a range resolved.
	FilesMatched int

	// RangesResolved is the number of resolved ranges across all files.
	RangesResolved int
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each searched file, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// Matches returns the outcomes of the files in which a range resolved.
func (r *Result) Matches() []FileOutcome {
	if r == nil {
		return nil
	}
	var matches []FileOutcome
	for _, f := range r.Files {
		if f.Matched() {
			matches = append(matches, f)
		}
	}
	return matches
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesSearched++
	r.Stats.RangesResolved += outcome.Outcome.Resolved()
	if outcome.Matched() {
		r.Stats.FilesMatched++
	}
}
