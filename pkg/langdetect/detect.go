// Package langdetect decides whether a document is HTML or Markdown.
// It uses go-enry, trying the file name first and the content after.
package langdetect

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Format is a document format the loader can parse.
type Format string

// Supported formats.
const (
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
)

// enry language names for the supported formats.
const (
	enryHTML     = "HTML"
	enryMarkdown = "Markdown"
)

// ParseFormat maps a configured format name onto a Format. The empty
// string and "auto" report false, meaning the format is to be detected.
func ParseFormat(name string) (Format, bool) {
	switch strings.ToLower(name) {
	case "html", "htm":
		return FormatHTML, true
	case "markdown", "md":
		return FormatMarkdown, true
	default:
		return "", false
	}
}

// Detect returns the format of a document.
// Markdown is the fallback: any plain text is valid Markdown.
func Detect(path string, content []byte) Format {
	// Strategy 1: the file name. Extensions like ".md" are claimed by more
	// than one language, so any supported candidate wins.
	if path != "" {
		for _, lang := range enry.GetLanguagesByExtension(path, content, nil) {
			if f, ok := fromLanguage(lang); ok {
				return f
			}
		}
		if ext := strings.ToLower(filepath.Ext(path)); ext == ".xhtml" || ext == ".shtml" {
			return FormatHTML
		}
	}

	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return FormatMarkdown
	}

	// Strategy 2: markers that only a full HTML page carries.
	if looksLikeHTMLPage(trimmed) {
		return FormatHTML
	}

	// Strategy 3: the classifier, limited to the two candidates.
	if lang, safe := enry.GetLanguageByClassifier(content, []string{enryHTML, enryMarkdown}); safe {
		if f, ok := fromLanguage(lang); ok {
			return f
		}
	}

	return FormatMarkdown
}

func fromLanguage(lang string) (Format, bool) {
	switch lang {
	case enryHTML:
		return FormatHTML, true
	case enryMarkdown:
		return FormatMarkdown, true
	default:
		return "", false
	}
}

// looksLikeHTMLPage checks for the doctype or the document-level elements.
func looksLikeHTMLPage(trimmed []byte) bool {
	lower := bytes.ToLower(trimmed)
	return bytes.HasPrefix(lower, []byte("<!doctype html")) ||
		bytes.HasPrefix(lower, []byte("<html")) ||
		bytes.Contains(lower, []byte("<head>")) ||
		bytes.Contains(lower, []byte("<body"))
}
