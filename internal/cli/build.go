package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdtmpl/internal/logging"
	"github.com/yaklabco/mdtmpl/pkg/config"
	"github.com/yaklabco/mdtmpl/pkg/reporter"
	"github.com/yaklabco/mdtmpl/pkg/runner"
)

type buildFlags struct {
	sourceFlags
	jobs    int
	format  string
	summary bool
	compact bool
	check   bool
	diff    bool
}

func newBuildCommand(info BuildInfo) *cobra.Command {
	flags := &buildFlags{}

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Compile every Markdown page once",
		Long: `Compile every Markdown page under the content root into a component
template under the output root, then report diagnostics and a summary.

Templates whose content did not change are left untouched.

Examples:
  mdtmpl build                              # Use .mdtmpl.yml or defaults
  mdtmpl build --src content --dest pages   # Explicit roots
  mdtmpl build --strict                     # Fail on malformed directives
  mdtmpl build --format sarif > build.sarif # Machine-readable report for CI
  mdtmpl build --check --diff               # Verify committed templates are current`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd, flags, info)
		},
	}

	addSourceFlags(cmd, &flags.sourceFlags)
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringVar(&flags.format, "format", "text", "report format: text, json, sarif")
	cmd.Flags().BoolVar(&flags.summary, "summary", false, "print a summary block instead of one line (text only)")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "minify json and sarif reports")
	cmd.Flags().BoolVar(&flags.check, "check", false, "report stale templates instead of writing them")
	cmd.Flags().BoolVar(&flags.diff, "diff", false, "with --check, print a diff of every stale template")

	return cmd
}

func runBuild(cmd *cobra.Command, flags *buildFlags, info BuildInfo) error {
	ctx := logging.WithLogger(commandContext(cmd), logging.Default())

	format, err := reporter.ParseFormat(flags.format)
	if err != nil {
		return usageError(err)
	}
	if flags.diff && !flags.check {
		return usageError(errors.New("--diff requires --check"))
	}

	cliCfg := &config.Config{}
	flags.apply(cmd, cliCfg)
	if cmd.Flags().Changed("jobs") {
		cliCfg.Jobs = flags.jobs
	}

	cfg, err := loadConfig(ctx, cmd, cliCfg)
	if err != nil {
		return err
	}

	pipeline := newPipeline(cfg)
	pipeline.Check = flags.check

	started := time.Now()
	result, err := runner.New(pipeline).Run(ctx, runnerOptions(cfg))
	if err != nil {
		return fmt.Errorf("build: %w", err)
	}

	workDir, _ := os.Getwd()
	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      format,
		Color:       colorMode(cmd),
		Summary:     flags.summary,
		ShowDiff:    flags.diff,
		Elapsed:     time.Since(started),
		Compact:     flags.compact,
		ToolVersion: info.Version,
		WorkingDir:  workDir,
	})
	if err != nil {
		return err
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report: %w", err)
	}

	if ExitCodeFromResult(result) != ExitSuccess {
		return ErrBuildFailed
	}
	return nil
}
