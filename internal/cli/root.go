// Package cli provides the Cobra command structure for deeplinks.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root deeplinks command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var color string

	rootCmd := &cobra.Command{
		Use:   "deeplinks",
		Short: "Encode text selections as URL fragments and restore them",
		Long: `deeplinks turns a selection of text in an HTML or Markdown document into a
compact URL fragment, and turns such a fragment back into the selection.

Fragments anchor each range boundary on the hash of the text node it falls
in, so they survive edits elsewhere in the document. A node whose hash is
shared with other nodes is told apart by the text of its neighbours.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().String("config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", ErrInvalidUsage, err)
	})

	// Add subcommands.
	rootCmd.AddCommand(newEncodeCommand())
	rootCmd.AddCommand(newDecodeCommand())
	rootCmd.AddCommand(newFindCommand())
	rootCmd.AddCommand(newNodesCommand())
	rootCmd.AddCommand(newHashCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
