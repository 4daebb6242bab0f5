package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"

	"github.com/yaklabco/deeplinks/internal/ui/pretty"
)

// defaultTermWidth is used when terminal width cannot be determined.
const defaultTermWidth = 100

// previewEscapes makes whitespace visible in single-line previews.
var previewEscapes = strings.NewReplacer("\n", `\n`, "\r", `\r`, "\t", `\t`)

// Preview renders node text on one line.
func Preview(text string) string {
	return previewEscapes.Replace(text)
}

// TextReporter formats results as styled terminal output.
type TextReporter struct {
	opts      Options
	styles    *pretty.Styles
	formatter *pretty.TableFormatter
	width     int
	bw        *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(colorEnabled)

	width := opts.Width
	if width <= 0 {
		width = getTerminalWidth(opts.Writer)
	}

	return &TextReporter{
		opts:      opts,
		styles:    styles,
		formatter: pretty.NewTableFormatter(styles, colorEnabled, width),
		width:     width,
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Encode prints the fragment, or the location when there is one, alone on a
// line so it can be piped.
func (r *TextReporter) Encode(_ context.Context, report *EncodeReport) (err error) {
	defer flush(r.bw, &err)

	if report.Fragment == "" {
		fmt.Fprintln(r.bw, r.styles.Dim.Render("Nothing to anchor: no range covers addressable text."))
		return nil
	}
	out := report.Fragment
	if report.Location != "" {
		out = report.Location
	}
	fmt.Fprintln(r.bw, r.styles.Fragment.Render(out))
	return nil
}

// Decode prints one line per descriptor and a summary.
func (r *TextReporter) Decode(_ context.Context, report *DecodeReport) (err error) {
	defer flush(r.bw, &err)

	fmt.Fprintf(r.bw, "%s %s\n",
		r.styles.FilePath.Render(report.Path),
		r.styles.Fragment.Render("#"+report.Fragment),
	)

	if report.Skipped != "" {
		fmt.Fprintf(r.bw, "  %s\n", r.styles.Dim.Render("skipped: "+report.Skipped))
		return nil
	}

	for i, rng := range report.Ranges {
		r.writeRange(i, rng)
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatDecodeSummary(pretty.DecodeStats{
			Descriptors: len(report.Ranges),
			Resolved:    report.Resolved,
			Applied:     report.Applied,
		}))
	}

	if report.Warning != "" {
		w := r.opts.ErrorWriter
		if w == nil {
			w = r.bw
		}
		fmt.Fprintf(w, "%s %s\n", r.styles.Warning.Render("warning:"), report.Warning)
	}
	return nil
}

func (r *TextReporter) writeRange(i int, rng DecodedRange) {
	label := fmt.Sprintf("  [%d] %s", i, rng.Descriptor)
	if !rng.Resolved {
		fmt.Fprintf(r.bw, "%s  %s\n", label, r.styles.Error.Render(rng.Error))
		return
	}

	location := fmt.Sprintf("%d:%d-%d:%d", rng.Start.Node, rng.Start.Offset, rng.End.Node, rng.End.Offset)
	prefix := fmt.Sprintf("%s  %s  ", label, location)
	room := r.width - len(prefix) - 2
	fmt.Fprintf(r.bw, "%s  %s  %s\n",
		label,
		r.styles.Location.Render(location),
		r.styles.Preview.Render(quote(pretty.Truncate(Preview(rng.Text), room))),
	)
}

// Nodes prints the text node table.
func (r *TextReporter) Nodes(_ context.Context, report *NodesReport) (err error) {
	defer flush(r.bw, &err)

	fmt.Fprintln(r.bw, r.styles.FilePath.Render(report.Path))

	rows := make([]pretty.NodeRow, len(report.Nodes))
	for i, n := range report.Nodes {
		rows[i] = pretty.NodeRow{
			Index:   n.Index,
			Hash:    n.Hash,
			Count:   n.Count,
			Length:  n.Length,
			Preview: Preview(n.Text),
		}
	}
	fmt.Fprint(r.bw, r.formatter.FormatNodes(rows))

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatNodesSummary(len(report.Nodes), report.Duplicates))
	}
	return nil
}

// Hash prints the hash alone on a line.
func (r *TextReporter) Hash(_ context.Context, report *HashReport) (err error) {
	defer flush(r.bw, &err)

	fmt.Fprintln(r.bw, r.styles.Hash.Render(report.Hash))
	return nil
}

// Find prints each matching document with its ranges, then a summary.
// Documents without a match are listed only when report.All is set.
func (r *TextReporter) Find(_ context.Context, report *FindReport) (err error) {
	defer flush(r.bw, &err)

	for _, f := range report.Files {
		switch {
		case f.Error != "":
			fmt.Fprintf(r.bw, "%s  %s\n", r.styles.FilePath.Render(f.Path), r.styles.Error.Render(f.Error))
			continue
		case f.Resolved == 0 && !report.All:
			continue
		}

		fmt.Fprintln(r.bw, r.styles.FilePath.Render(f.Path))
		if f.Skipped != "" {
			fmt.Fprintf(r.bw, "  %s\n", r.styles.Dim.Render("skipped: "+f.Skipped))
			continue
		}
		for i, rng := range f.Ranges {
			r.writeRange(i, rng)
		}
		if f.Warning != "" {
			fmt.Fprintf(r.bw, "  %s %s\n", r.styles.Warning.Render("warning:"), f.Warning)
		}
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatFindSummary(pretty.FindStats{
			Searched: report.Stats.Searched,
			Matched:  report.Stats.Matched,
			Errored:  report.Stats.Errored,
			Resolved: report.Stats.Resolved,
		}))
	}
	return nil
}

func quote(s string) string {
	return `"` + s + `"`
}

func getTerminalWidth(writer io.Writer) int {
	if f, ok := writer.(interface{ Fd() uintptr }); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return defaultTermWidth
}
