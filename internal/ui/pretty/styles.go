// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles holds the renderers for command output.
type Styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style
	Failure lipgloss.Style

	// Parts of a result line.
	FilePath lipgloss.Style
	Fragment lipgloss.Style
	Hash     lipgloss.Style
	Location lipgloss.Style
	Preview  lipgloss.Style

	// Node table.
	TableHeader    lipgloss.Style
	TableSeparator lipgloss.Style
	TableDuplicate lipgloss.Style

	Dim lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode. Without color
// every style renders text unchanged.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return &Styles{
			Error: plain, Warning: plain, Success: plain, Failure: plain,
			FilePath: plain, Fragment: plain, Hash: plain, Location: plain, Preview: plain,
			TableHeader: plain, TableSeparator: plain, TableDuplicate: plain,
			Dim: plain,
		}
	}

	fg := func(c string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}
	return &Styles{
		Error:   fg("9").Bold(true),
		Warning: fg("11").Bold(true),
		Success: fg("10").Bold(true),
		Failure: fg("9").Bold(true),

		FilePath: lipgloss.NewStyle().Bold(true).Underline(true),
		Fragment: fg("14"),
		Hash:     fg("13"),
		Location: fg("8"),
		Preview:  fg("7"),

		TableHeader:    fg("7").Bold(true),
		TableSeparator: fg("8"),
		TableDuplicate: fg("11"),

		Dim: fg("8"),
	}
}

// IsColorEnabled reports whether to color output written to writer.
// Mode is "always", "never" or "auto" (the default for any other value):
// in auto mode writer must be a terminal and NO_COLOR unset.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := writer.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
