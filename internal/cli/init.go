package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdtmpl/internal/configloader"
	"github.com/yaklabco/mdtmpl/internal/logging"
	"github.com/yaklabco/mdtmpl/pkg/config"
	"github.com/yaklabco/mdtmpl/pkg/fsutil"
)

const configHeader = `# mdtmpl configuration.
#
# src and dest are resolved relative to this file. Every key may be
# overridden with an MDTMPL_* environment variable or a command-line flag.`

type initFlags struct {
	force  bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a .mdtmpl.yml configuration file",
		Long: `Create a .mdtmpl.yml configuration file in the current directory holding
the default settings.

Examples:
  mdtmpl init                      # Create .mdtmpl.yml
  mdtmpl init --output docs.yml    # Write to a custom path
  mdtmpl init --force              # Overwrite an existing file`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", configloader.ProjectConfigName, "output file path")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	ctx := commandContext(cmd)
	logger := logging.Default()

	absPath, err := filepath.Abs(flags.output)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	_, err = fsutil.ReadFile(ctx, absPath)
	switch {
	case err == nil && !flags.force:
		return usageError(fmt.Errorf("file %q already exists; use --force to overwrite", flags.output))
	case err == nil:
		logger.Warn("overwriting existing file", logging.FieldPath, flags.output)
	}

	content, err := config.NewConfig().ToYAMLWithHeader(configHeader)
	if err != nil {
		return fmt.Errorf("generate config: %w", err)
	}

	if err := fsutil.WriteAtomic(ctx, absPath, content, fsutil.DefaultFileMode); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, flags.output)
	return nil
}
