package cli

import (
	"github.com/spf13/cobra"

	"github.com/yaklabco/deeplinks/pkg/reporter"
)

func newNodesCommand() *cobra.Command {
	flags := &documentFlags{}

	cmd := &cobra.Command{
		Use:   "nodes FILE",
		Short: "List the text nodes fragments can address",
		Long: `List the text nodes of FILE in document order with their index, hash,
length in UTF-16 code units and a preview of their text.

Nodes whose hash is shared by other nodes are marked; fragments anchored in
them carry the hashes of neighbouring nodes as well.`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd, flags.cliConfig(cmd))
			if err != nil {
				return err
			}
			doc, err := s.loadDocument(cmd, args[0])
			if err != nil {
				return err
			}
			return s.reporter.Nodes(cmd.Context(), reporter.NewNodesReport(doc, args[0]))
		},
	}

	addDocumentFlags(cmd, flags)

	return cmd
}
