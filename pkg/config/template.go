package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full documents every option, including the accepted values.
	// If false, generates a minimal template.
	Full bool

	// Format is the output format: "yaml" or "json".
	Format string
}

// GenerateTemplate creates a configuration file template.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if opts.Format == "json" {
		return templateToJSON()
	}
	if opts.Full {
		return generateFullTemplate(), nil
	}
	return generateMinimalTemplate(), nil
}

// generateMinimalTemplate creates a minimal commented template.
func generateMinimalTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(DefaultTemplateHeader())
	buf.WriteString(`

# Fragment version written by encode: 1 or 2
version: ` + strconv.Itoa(DefaultVersion) + `

# Document format: auto, html, or markdown
# format: auto

# Markdown flavor: commonmark or gfm
# flavor: commonmark
`)
	return buf.Bytes()
}

// generateFullTemplate creates a template with every option documented.
func generateFullTemplate() []byte {
	var buf bytes.Buffer

	buf.WriteString(`# deeplinks configuration - Full Template
# See: https://github.com/yaklabco/deeplinks
#
# Every option is shown with its default value.
# Settings here are overridden by DEEPLINKS_* environment variables
# and command-line flags.

# Fragment version written by encode.
#   1: decimal offsets, descriptors anchor on the first or last text node
#   2: base-64 offsets, whitespace-only text nodes are skipped
# Fragments of either version are always readable.
version: ` + strconv.Itoa(DefaultVersion) + `

# Document format: auto, html, or markdown
# auto picks a parser from the file extension and content.
format: auto

# Markdown flavor: commonmark or gfm
flavor: commonmark

# Output format: text or json
output: text

# Log level: debug, info, warn, or error
log_level: warn

# Colorized output: auto, always, or never
color: auto

# Glob patterns find skips. "*" stays inside one directory, "**" does not,
# and patterns without a "/" also match base names.
# exclude:
#   - vendor/**
#   - "*.draft.html"
`)
	return buf.Bytes()
}

// templateToJSON renders the defaults as JSON.
func templateToJSON() ([]byte, error) {
	cfg := NewConfig()
	jsonBytes, err := json.MarshalIndent(map[string]any{
		"version":   cfg.Version,
		"format":    cfg.Format,
		"flavor":    cfg.Flavor,
		"output":    cfg.Output,
		"log_level": cfg.LogLevel,
		"color":     cfg.Color,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}
	return append(jsonBytes, '\n'), nil
}

// DefaultTemplateHeader returns the default header for generated configs.
func DefaultTemplateHeader() string {
	return `# deeplinks configuration
# See: https://github.com/yaklabco/deeplinks`
}
