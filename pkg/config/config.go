// Package config defines core configuration types for deeplinks.
// These types are pure data structures with no dependency on how they are loaded.
package config

// InputFormat selects how documents are parsed.
type InputFormat string

const (
	// InputAuto detects the format from the path and content.
	InputAuto     InputFormat = "auto"
	InputHTML     InputFormat = "html"
	InputMarkdown InputFormat = "markdown"
)

// IsValid returns true if the input format is known.
func (f InputFormat) IsValid() bool {
	switch f {
	case InputAuto, InputHTML, InputMarkdown:
		return true
	default:
		return false
	}
}

// Flavor specifies the Markdown flavor to use for parsing.
type Flavor string

const (
	FlavorCommonMark Flavor = "commonmark"
	FlavorGFM        Flavor = "gfm"
)

// IsValid returns true if the flavor is known.
func (f Flavor) IsValid() bool {
	return f == FlavorCommonMark || f == FlavorGFM
}

// OutputFormat specifies how results are printed.
type OutputFormat string

const (
	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
)

// IsValid returns true if the output format is known.
func (f OutputFormat) IsValid() bool {
	return f == OutputText || f == OutputJSON
}

// Log levels accepted by log_level.
const (
	LogDebug = "debug"
	LogInfo  = "info"
	LogWarn  = "warn"
	LogError = "error"
)

// DefaultVersion is the fragment version written when none is configured.
const DefaultVersion = 2

// Config is the root configuration structure for deeplinks.
type Config struct {
	// Version is the fragment version encode writes.
	Version int `yaml:"version"`

	// Format selects the document parser ("auto", "html" or "markdown").
	Format InputFormat `yaml:"format"`

	// Flavor specifies the Markdown flavor ("commonmark" or "gfm").
	Flavor Flavor `yaml:"flavor"`

	// Output specifies the output format ("text" or "json").
	Output OutputFormat `yaml:"output"`

	// LogLevel is the minimum level logged to stderr.
	LogLevel string `yaml:"log_level"`

	// Color controls colorized output ("auto", "always" or "never").
	Color string `yaml:"color"`

	// Exclude lists glob patterns find skips, matched against paths
	// relative to the working directory and against base names.
	Exclude []string `yaml:"exclude,omitempty"`

	// CLI-level options (not persisted to config files).

	// MaxRanges caps how many ranges decode keeps, modelling a host that
	// supports only that many. Zero means no limit.
	MaxRanges int `yaml:"-"`
}

// NewConfig returns a Config with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Version:  DefaultVersion,
		Format:   InputAuto,
		Flavor:   FlavorCommonMark,
		Output:   OutputText,
		LogLevel: LogWarn,
		Color:    "auto",
	}
}
