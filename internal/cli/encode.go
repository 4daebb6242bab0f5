package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/deeplinks/internal/logging"
	"github.com/yaklabco/deeplinks/pkg/dom"
	"github.com/yaklabco/deeplinks/pkg/page"
	"github.com/yaklabco/deeplinks/pkg/reporter"
)

// encodeFlags holds the flags for the encode command.
type encodeFlags struct {
	documentFlags
	ranges  []string
	quotes  []string
	version int
	base    string
}

func newEncodeCommand() *cobra.Command {
	flags := &encodeFlags{}

	cmd := &cobra.Command{
		Use:   "encode FILE",
		Short: "Build the URL fragment for a selection of text",
		Long: `Build the URL fragment that selects text in FILE.

A selection is given either as ranges over the document's text nodes or as
quoted text. Text nodes are numbered in document order, as listed by
"deeplinks nodes"; offsets count UTF-16 code units. A quote selects its first
occurrence and may span several text nodes.`,
		Example: `  deeplinks encode page.html --range 0:3-0:5
  deeplinks encode page.html --range 0:3-2:4 --range 5:0-2
  deeplinks encode README.md --quote "fast enough"
  deeplinks encode page.html --quote intro --base https://example.com/page.html`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEncode(cmd, args[0], flags)
		},
	}

	addDocumentFlags(cmd, &flags.documentFlags)
	cmd.Flags().StringArrayVarP(&flags.ranges, "range", "r", nil,
		"range to select as NODE:OFFSET-NODE:OFFSET (repeatable)")
	cmd.Flags().StringArrayVarP(&flags.quotes, "quote", "q", nil,
		"select the first occurrence of this text (repeatable)")
	cmd.Flags().IntVar(&flags.version, "version", 0, "fragment version to write (default from config)")
	cmd.Flags().StringVar(&flags.base, "base", "", "location to prepend to the fragment")

	return cmd
}

func runEncode(cmd *cobra.Command, path string, flags *encodeFlags) error {
	if len(flags.ranges) == 0 && len(flags.quotes) == 0 {
		return usageErrorf("nothing selected; use --range or --quote")
	}

	cli := flags.cliConfig(cmd)
	if cmd.Flags().Changed("version") {
		cli.Version = flags.version
	}
	s, err := loadSettings(cmd, cli)
	if err != nil {
		return err
	}

	doc, err := s.loadDocument(cmd, path)
	if err != nil {
		return err
	}

	sel := dom.NewSelection()
	for _, spec := range flags.ranges {
		r, err := rangeFromSpec(doc, spec)
		if err != nil {
			return usageErrorf("%v", err)
		}
		sel.AddRange(r)
	}
	for _, quote := range flags.quotes {
		r, err := rangeFromQuote(doc, quote)
		if err != nil {
			return usageErrorf("%v", err)
		}
		sel.AddRange(r)
	}

	p := page.New(doc, sel, s.logger)
	p.Version = s.cfg.Version
	p.Path = flags.base
	location, err := p.Track()
	if err != nil {
		return err
	}

	frag := strings.TrimPrefix(location, flags.base)
	report := reporter.NewEncodeReport(doc, path, s.cfg.Version, frag, sel.Ranges())
	if flags.base != "" && frag != "" {
		report.Location = location
	}
	s.logger.Debug("encoded selection",
		logging.FieldRanges, sel.RangeCount(),
		logging.FieldVersion, s.cfg.Version,
		logging.FieldFragment, frag,
	)

	if err := s.reporter.Encode(cmd.Context(), report); err != nil {
		return err
	}
	if frag == "" {
		return ErrNothingToAnchor
	}
	return nil
}
