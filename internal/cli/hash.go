package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/deeplinks/pkg/reporter"
)

func newHashCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "hash TEXT",
		Short: "Print the hash a text node holding TEXT would have",
		Long: `Print the hash fragments use to anchor on a text node whose content is
exactly TEXT. Whitespace counts.`,
		Example: `  deeplinks hash "identical text nodes"
  deeplinks hash 'uh oh'`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd, outputConfig(cmd, output))
			if err != nil {
				return err
			}
			return s.reporter.Hash(cmd.Context(), reporter.NewHashReport(args[0]))
		},
	}

	addOutputFlag(cmd, &output)

	return cmd
}
