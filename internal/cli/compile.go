package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdtmpl/internal/logging"
	"github.com/yaklabco/mdtmpl/pkg/compiler"
	"github.com/yaklabco/mdtmpl/pkg/config"
	"github.com/yaklabco/mdtmpl/pkg/fsutil"
)

func newCompileCommand() *cobra.Command {
	flags := &sourceFlags{}

	cmd := &cobra.Command{
		Use:   "compile FILE",
		Short: "Compile a single page to standard output",
		Long: `Compile one Markdown page and print the component template to standard
output. Diagnostics are printed to standard error. Nothing is written to disk.

Examples:
  mdtmpl compile content/first-steps.md
  mdtmpl compile --strict content/techniques/caching.md`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(cmd, flags, args[0])
		},
	}

	addCompileFlags(cmd, flags)

	return cmd
}

func runCompile(cmd *cobra.Command, flags *sourceFlags, path string) error {
	ctx := logging.WithLogger(commandContext(cmd), logging.Default())

	cliCfg := &config.Config{}
	flags.apply(cmd, cliCfg)

	cfg, err := loadConfig(ctx, cmd, cliCfg)
	if err != nil {
		return err
	}

	source, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return err
	}

	result, err := newCompiler(cfg).Compile(ctx, source)

	if result != nil {
		styles := stylesFor(cmd)
		for _, diag := range result.Diagnostics {
			_, _ = fmt.Fprint(cmd.ErrOrStderr(), styles.FormatDiagnostic(path, diag))
		}
	}

	switch {
	case errors.Is(err, compiler.ErrMalformedDirectives):
		return ErrBuildFailed
	case err != nil:
		return fmt.Errorf("compile %s: %w", path, err)
	}

	_, err = cmd.OutOrStdout().Write(result.HTML)
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
