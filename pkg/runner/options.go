// Package runner opens one fragment against many documents at once, to find
// the documents a link points into.
package runner

import "github.com/yaklabco/deeplinks/pkg/source"

// Options controls multi-file search behavior.
type Options struct {
	// Paths are the user-specified paths (files or directories) to search.
	// If empty, defaults to the current working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of file extensions (lowercase, with leading dot)
	// searched. Defaults to DefaultExtensions().
	Extensions []string

	// IncludeGlobs are glob patterns a file must match, relative to
	// WorkingDir. Empty means every file with a matching extension.
	IncludeGlobs []string

	// ExcludeGlobs are glob patterns used to skip files or directories.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int

	// Source controls how each document is parsed.
	Source source.Options

	// MaxRanges caps the ranges each document's selection keeps.
	// Zero means no limit.
	MaxRanges int
}

// DefaultExtensions returns the extensions of the documents the parsers read.
func DefaultExtensions() []string {
	return []string{".html", ".htm", ".xhtml", ".md", ".markdown"}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
