package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rivo/uniseg"
)

// Table formatting constants.
const (
	tablePadding     = 2
	tableColumnCount = 5 // INDEX, HASH, COUNT, LEN, TEXT
	duplicateSymbol  = "*"
	minIndexWidth    = 5
	minHashWidth     = 9
	minCountWidth    = 5
	minLengthWidth   = 3
	minTextWidth     = 20
	heavySeparator   = "="
	defaultTermWidth = 100
	ellipsis         = "…"
)

// NodeRow is one text node in the node table.
type NodeRow struct {
	Index int
	Hash  string
	// Count is how many text nodes in the document share Hash.
	Count int
	// Length is the node length in UTF-16 code units.
	Length  int
	Preview string
}

// TableFormatter formats text nodes as a styled table.
type TableFormatter struct {
	styles       *Styles
	colorEnabled bool
	termWidth    int
}

// NewTableFormatter creates a new table formatter.
func NewTableFormatter(styles *Styles, colorEnabled bool, termWidth int) *TableFormatter {
	if termWidth <= 0 {
		termWidth = defaultTermWidth
	}
	return &TableFormatter{
		styles:       styles,
		colorEnabled: colorEnabled,
		termWidth:    termWidth,
	}
}

type columnWidths struct {
	index  int
	hash   int
	count  int
	length int
	text   int
}

// FormatNodes formats rows as a table. Rows whose hash is shared with
// another node are marked, since a fragment anchored on them needs the
// disambiguation suffix.
func (t *TableFormatter) FormatNodes(rows []NodeRow) string {
	if len(rows) == 0 {
		return ""
	}

	widths := t.calculateColumnWidths(rows)

	var builder strings.Builder
	builder.WriteString(t.formatHeader(widths))
	builder.WriteString("\n")
	builder.WriteString(t.formatSeparator(widths))
	builder.WriteString("\n")

	for _, row := range rows {
		builder.WriteString(t.formatRow(row, widths))
		builder.WriteString("\n")
	}

	builder.WriteString(t.formatSeparator(widths))
	builder.WriteString("\n")
	builder.WriteString(t.formatLegend())
	builder.WriteString("\n")

	return builder.String()
}

// calculateColumnWidths determines column widths based on content, then
// shrinks the text column to fit the terminal.
func (t *TableFormatter) calculateColumnWidths(rows []NodeRow) columnWidths {
	widths := columnWidths{
		index:  minIndexWidth,
		hash:   minHashWidth,
		count:  minCountWidth,
		length: minLengthWidth,
		text:   minTextWidth,
	}

	for _, row := range rows {
		widths.index = max(widths.index, len(strconv.Itoa(row.Index)))
		widths.hash = max(widths.hash, len(row.Hash))
		widths.count = max(widths.count, len(strconv.Itoa(row.Count))+len(duplicateSymbol))
		widths.length = max(widths.length, len(strconv.Itoa(row.Length)))
		widths.text = max(widths.text, uniseg.StringWidth(row.Preview))
	}

	if total := calculateTotalWidth(widths); total > t.termWidth {
		widths.text = max(minTextWidth, widths.text-(total-t.termWidth))
	}
	return widths
}

func calculateTotalWidth(widths columnWidths) int {
	return widths.index + widths.hash + widths.count + widths.length + widths.text +
		tablePadding*tableColumnCount
}

func (t *TableFormatter) formatHeader(widths columnWidths) string {
	header := fmt.Sprintf(" %*s  %-*s  %*s  %*s  %s",
		widths.index, "INDEX",
		widths.hash, "HASH",
		widths.count, "COUNT",
		widths.length, "LEN",
		"TEXT",
	)
	return t.styles.TableHeader.Render(header)
}

func (t *TableFormatter) formatSeparator(widths columnWidths) string {
	return t.styles.TableSeparator.Render(strings.Repeat(heavySeparator, calculateTotalWidth(widths)))
}

func (t *TableFormatter) formatRow(row NodeRow, widths columnWidths) string {
	count := strconv.Itoa(row.Count)
	if row.Count > 1 {
		count = duplicateSymbol + count
	}

	content := fmt.Sprintf(" %*d  %-*s  %*s  %*d  %s",
		widths.index, row.Index,
		widths.hash, row.Hash,
		widths.count, count,
		widths.length, row.Length,
		Truncate(row.Preview, widths.text),
	)

	if row.Count > 1 {
		return t.styles.TableDuplicate.Render(content)
	}
	return content
}

func (t *TableFormatter) formatLegend() string {
	if !t.colorEnabled {
		return " Legend: " + duplicateSymbol + " = hash shared with another node"
	}
	sample := t.styles.TableDuplicate.Render(" duplicate ")
	return t.styles.Dim.Render(fmt.Sprintf(" Legend: %s = hash shared with another node", sample))
}

// Truncate shortens s to at most width terminal cells, cutting between
// grapheme clusters and ending with an ellipsis when anything was cut.
func Truncate(s string, width int) string {
	if uniseg.StringWidth(s) <= width {
		return s
	}
	if width <= 0 {
		return ""
	}

	limit := width - uniseg.StringWidth(ellipsis)
	var builder strings.Builder
	used := 0
	state := -1
	rest := s
	for rest != "" {
		var cluster string
		var w int
		cluster, rest, w, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if used+w > limit {
			break
		}
		builder.WriteString(cluster)
		used += w
	}
	builder.WriteString(ellipsis)
	return builder.String()
}
