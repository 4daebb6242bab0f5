package cli

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/deeplinks/internal/configloader"
	"github.com/yaklabco/deeplinks/internal/logging"
	"github.com/yaklabco/deeplinks/pkg/config"
	"github.com/yaklabco/deeplinks/pkg/dom"
	"github.com/yaklabco/deeplinks/pkg/reporter"
	"github.com/yaklabco/deeplinks/pkg/source"
)

// documentFlags are shared by the commands that read a document.
type documentFlags struct {
	format string
	flavor string
	output string
}

func addDocumentFlags(cmd *cobra.Command, flags *documentFlags) {
	cmd.Flags().StringVar(&flags.format, "format", "auto", "document format: auto, html, markdown")
	cmd.Flags().StringVar(&flags.flavor, "flavor", "commonmark", "Markdown flavor: commonmark, gfm")
	addOutputFlag(cmd, &flags.output)
}

func addOutputFlag(cmd *cobra.Command, output *string) {
	cmd.Flags().StringVarP(output, "output", "o", "text", "output format: text, json")
}

// cliConfig collects the flags the user actually set, so that unset flags
// leave file and environment settings alone.
func (f *documentFlags) cliConfig(cmd *cobra.Command) *config.Config {
	cfg := outputConfig(cmd, f.output)
	if cmd.Flags().Changed("format") {
		cfg.Format = config.InputFormat(f.format)
	}
	if cmd.Flags().Changed("flavor") {
		cfg.Flavor = config.Flavor(f.flavor)
	}
	return cfg
}

func outputConfig(cmd *cobra.Command, output string) *config.Config {
	cfg := &config.Config{}
	if cmd.Flags().Changed("output") {
		cfg.Output = config.OutputFormat(output)
	}
	return cfg
}

// settings is the resolved environment of one command run.
type settings struct {
	cfg      *config.Config
	logger   *log.Logger
	reporter reporter.Reporter
}

// loadSettings resolves configuration from files, environment and cli, then
// builds the logger and reporter the command writes through.
func loadSettings(cmd *cobra.Command, cli *config.Config) (*settings, error) {
	flags := cmd.Flags()
	configPath, _ := flags.GetString("config")
	if flags.Changed("color") {
		cli.Color, _ = flags.GetString("color")
	}
	if flags.Changed("log-level") {
		cli.LogLevel, _ = flags.GetString("log-level")
	}

	result, err := configloader.Load(cmd.Context(), configloader.LoadOptions{
		ExplicitPath: configPath,
		CLIConfig:    cli,
	})
	if err != nil {
		return nil, errors.Join(ErrConfigLoad, err)
	}
	cfg := result.Config

	level := cfg.LogLevel
	if debug, _ := flags.GetBool("debug"); debug {
		level = config.LogDebug
	}
	logger := logging.NewWriter(cmd.ErrOrStderr(), level)
	for _, path := range result.LoadedFrom {
		logger.Debug("loaded configuration", logging.FieldConfig, path)
	}
	for _, warning := range result.Warnings {
		logger.Warn(warning)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      reporter.Format(cfg.Output),
		Color:       cfg.Color,
		ShowSummary: true,
	})
	if err != nil {
		return nil, fmt.Errorf("create reporter: %w", err)
	}

	return &settings{cfg: cfg, logger: logger, reporter: rep}, nil
}

// loadDocument parses path with the configured format and flavor.
func (s *settings) loadDocument(cmd *cobra.Command, path string) (*dom.Document, error) {
	doc, err := source.Load(cmd.Context(), path, source.Options{
		Format: string(s.cfg.Format),
		Flavor: string(s.cfg.Flavor),
	})
	if err != nil {
		return nil, err
	}
	s.logger.Debug("loaded document",
		logging.FieldPath, path,
		logging.FieldFormat, source.ResolveFormat(path, doc.Content, string(s.cfg.Format)),
		logging.FieldTextNodes, len(doc.TextNodes()),
	)
	return doc, nil
}
