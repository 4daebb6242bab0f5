package cli

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/deeplinks/internal/logging"
	"github.com/yaklabco/deeplinks/pkg/dom"
	"github.com/yaklabco/deeplinks/pkg/fragment"
	"github.com/yaklabco/deeplinks/pkg/page"
	"github.com/yaklabco/deeplinks/pkg/reporter"
)

// decodeFlags holds the flags for the decode command.
type decodeFlags struct {
	documentFlags
	maxRanges int
}

func newDecodeCommand() *cobra.Command {
	flags := &decodeFlags{}

	cmd := &cobra.Command{
		Use:   "decode FILE FRAGMENT|URL",
		Short: "Restore the selection a URL fragment describes",
		Long: `Open FILE with a fragment, as a page would when loaded from a link, and
print every range the fragment resolves to together with its text.

The second argument is a fragment, with or without the leading '#', or a
full URL. Fragments naming an element id are left alone, as are fragments of
an unknown version. The exit status is 1 when no range resolved.`,
		Example: `  deeplinks decode page.html '#2BLkIVltu0:0:5'
  deeplinks decode page.html 'https://example.com/page.html#2BLkIVltu0:0:5'
  deeplinks decode page.html 2BLkIVltu0:0:5,TxIWFV5Nq:0:4 --max-ranges 1`,
		Args: exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDecode(cmd, args[0], args[1], flags)
		},
	}

	addDocumentFlags(cmd, &flags.documentFlags)
	cmd.Flags().IntVar(&flags.maxRanges, "max-ranges", 0,
		"keep at most N ranges, like a browser without multi-range selection (0 means no limit)")

	return cmd
}

func runDecode(cmd *cobra.Command, path, location string, flags *decodeFlags) error {
	cli := flags.cliConfig(cmd)
	if cmd.Flags().Changed("max-ranges") {
		if flags.maxRanges < 0 {
			return usageErrorf("--max-ranges must not be negative")
		}
		cli.MaxRanges = flags.maxRanges
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
	sel.MaxRanges = s.cfg.MaxRanges
	sel.OnScroll = func(n *dom.Node) {
		s.logger.Debug("scrolled into view", logging.FieldElement, n.Tag)
	}

	p := page.New(doc, sel, s.logger)
	out, applyErr := p.Open(asLocation(location))
	if applyErr != nil && !errors.Is(applyErr, fragment.ErrMultiRangeUnsupported) {
		return applyErr
	}

	if err := s.reporter.Decode(cmd.Context(), reporter.NewDecodeReport(doc, path, out, applyErr)); err != nil {
		return err
	}
	if out.Resolved() == 0 {
		return ErrNothingResolved
	}
	return nil
}

// asLocation turns a bare fragment into a location. Anything holding a '#'
// is taken as a location already.
func asLocation(arg string) string {
	if strings.Contains(arg, "#") {
		return arg
	}
	return "#" + arg
}
