package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/deeplinks/internal/configloader"
	"github.com/yaklabco/deeplinks/internal/logging"
	"github.com/yaklabco/deeplinks/pkg/config"
	"github.com/yaklabco/deeplinks/pkg/fsutil"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	user   bool
	format string
	file   string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new deeplinks configuration file",
		Long: `Create a new .deeplinks.yml configuration file in the current directory
with the default settings.

An existing file is only replaced after confirmation, or with --force, in
which case a backup is kept next to it.`,
		Example: `  deeplinks init                   Create minimal .deeplinks.yml
  deeplinks init --full            Create full config with every option documented
  deeplinks init --format json     Create .deeplinks.json instead
  deeplinks init --user            Write the user configuration file
  deeplinks init --file custom.yml Write to a custom file path`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Generate full template with every option documented")
	cmd.Flags().BoolVar(&flags.user, "user", false, "Write the user configuration file instead")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "File format: yaml or json")
	cmd.Flags().StringVar(&flags.file, "file", "", "Output file path (default: .deeplinks.yml or .deeplinks.json)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	ctx := cmd.Context()
	logger := logging.NewWriter(cmd.ErrOrStderr(), config.LogInfo)

	if flags.format != "yaml" && flags.format != "json" {
		return usageErrorf("invalid format %q: must be yaml or json", flags.format)
	}

	outputPath, err := initPath(flags)
	if err != nil {
		return err
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if fsutil.Exists(absPath) {
		if !flags.force {
			if !configloader.IsInteractive() {
				return usageErrorf("file %q already exists; use --force to overwrite", outputPath)
			}
			ok, err := configloader.Confirm(cmd.InOrStdin(), cmd.ErrOrStderr(),
				fmt.Sprintf("%s already exists. Overwrite?", outputPath))
			if err != nil {
				return err
			}
			if !ok {
				logger.Info("left existing file alone", logging.FieldPath, outputPath)
				return nil
			}
		}
		backedUp, err := fsutil.CreateBackup(ctx, absPath)
		if err != nil {
			return err
		}
		if backedUp {
			logger.Info("saved backup", logging.FieldPath, fsutil.BackupPath(absPath))
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Full:   flags.full,
		Format: flags.format,
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	changed, err := fsutil.WriteAtomicIfChanged(ctx, absPath, content, fsutil.DefaultFileMode)
	if err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	if !changed {
		logger.Info("configuration file already up to date", logging.FieldPath, outputPath)
		return nil
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	if flags.full {
		logger.Info("full template documents every option")
	}
	logger.Info("run 'deeplinks nodes FILE' to see what fragments can address")

	return nil
}

// initPath picks the file init writes.
func initPath(flags *initFlags) (string, error) {
	switch {
	case flags.file != "":
		return flags.file, nil
	case flags.user:
		dir := configloader.UserConfigDir()
		if dir == "" {
			return "", errors.New("cannot determine user config directory")
		}
		if flags.format == "json" {
			return filepath.Join(dir, "config.json"), nil
		}
		return filepath.Join(dir, "config.yaml"), nil
	case flags.format == "json":
		return configloader.ProjectConfigJSONName, nil
	default:
		return configloader.ProjectConfigName, nil
	}
}
