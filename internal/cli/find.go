package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yaklabco/deeplinks/internal/logging"
	"github.com/yaklabco/deeplinks/pkg/reporter"
	"github.com/yaklabco/deeplinks/pkg/runner"
	"github.com/yaklabco/deeplinks/pkg/source"
)

// findFlags holds the flags for the find command.
type findFlags struct {
	documentFlags
	jobs           int
	include        []string
	exclude        []string
	extensions     []string
	followSymlinks bool
	maxRanges      int
	all            bool
}

func newFindCommand() *cobra.Command {
	flags := &findFlags{}

	cmd := &cobra.Command{
		Use:   "find FRAGMENT|URL [PATH...]",
		Short: "Find the documents a fragment points into",
		Long: `Open a fragment against every HTML and Markdown document under the given
paths, and list the documents in which at least one of its ranges resolves.

Directories are walked recursively, skipping hidden files and directories.
With no paths, the current directory is searched. The exit status is 1 when
no document matched.`,
		Example: `  deeplinks find '#2BLkIVltu0:0:5' site/
  deeplinks find 'https://example.com/guide.html#2TxIWFV5Nq:0:4' docs --exclude 'drafts/**'
  deeplinks find 2EdoNr3xj_:3:5 --include '**.md' -o json`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return usageErrorf("find requires a fragment or URL")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFind(cmd, args[0], args[1:], flags)
		},
	}

	addDocumentFlags(cmd, &flags.documentFlags)
	f := cmd.Flags()
	f.IntVarP(&flags.jobs, "jobs", "j", 0, "number of documents searched in parallel (0 means one per CPU)")
	f.StringArrayVar(&flags.include, "include", nil, "only search paths matching this glob (repeatable)")
	f.StringArrayVar(&flags.exclude, "exclude", nil, "skip paths matching this glob (repeatable)")
	f.StringSliceVar(&flags.extensions, "extensions", nil,
		"file extensions searched when walking directories (default .html,.htm,.xhtml,.md,.markdown)")
	f.BoolVar(&flags.followSymlinks, "follow-symlinks", false, "walk into symlinked directories")
	f.IntVar(&flags.maxRanges, "max-ranges", 0, "keep at most N ranges per document (0 means no limit)")
	f.BoolVar(&flags.all, "all", false, "also list documents without a match")

	return cmd
}

func runFind(cmd *cobra.Command, location string, paths []string, flags *findFlags) error {
	cli := flags.cliConfig(cmd)
	if cmd.Flags().Changed("max-ranges") {
		if flags.maxRanges < 0 {
			return usageErrorf("--max-ranges must not be negative")
		}
		cli.MaxRanges = flags.maxRanges
	}
	if flags.jobs < 0 {
		return usageErrorf("--jobs must not be negative")
	}
	s, err := loadSettings(cmd, cli)
	if err != nil {
		return err
	}

	workDir, err := os.Getwd()
	if err != nil {
		return err
	}

	opts := runner.Options{
		Paths:          paths,
		WorkingDir:     workDir,
		Extensions:     normalizeExtensions(flags.extensions),
		IncludeGlobs:   flags.include,
		ExcludeGlobs:   append(append([]string(nil), s.cfg.Exclude...), flags.exclude...),
		FollowSymlinks: flags.followSymlinks,
		Jobs:           flags.jobs,
		Source: source.Options{
			Format: string(s.cfg.Format),
			Flavor: string(s.cfg.Flavor),
		},
		MaxRanges: s.cfg.MaxRanges,
	}

	ctx := logging.WithLogger(cmd.Context(), s.logger)
	result, err := runner.New(nil).Find(ctx, asLocation(location), opts)
	if errors.Is(err, runner.ErrInvalidGlob) {
		return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	}
	if err != nil {
		return err
	}
	s.logger.Debug("search finished",
		"discovered", result.Stats.FilesDiscovered,
		"matched", result.Stats.FilesMatched,
		logging.FieldResolved, result.Stats.RangesResolved,
	)

	report := reporter.NewFindReport(result, workDir)
	report.All = flags.all
	if err := s.reporter.Find(cmd.Context(), report); err != nil {
		return err
	}
	if result.Stats.FilesMatched == 0 {
		return ErrNothingResolved
	}
	return nil
}

// normalizeExtensions lowercases extensions and adds the leading dot.
func normalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, e := range exts {
		if e == "" {
			continue
		}
		if e[0] != '.' {
			e = "." + e
		}
		out = append(out, strings.ToLower(e))
	}
	return out
}
