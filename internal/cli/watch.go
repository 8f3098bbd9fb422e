package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/mdtmpl/internal/logging"
	"github.com/yaklabco/mdtmpl/pkg/config"
	"github.com/yaklabco/mdtmpl/pkg/reporter"
	"github.com/yaklabco/mdtmpl/pkg/runner"
	"github.com/yaklabco/mdtmpl/pkg/watch"
)

type watchFlags struct {
	sourceFlags
	initialBuild bool
}

func newWatchCommand() *cobra.Command {
	flags := &watchFlags{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Recompile pages as they change",
		Long: `Watch the content root and recompile each Markdown page whenever it is
created or modified. Deleting or renaming a page removes its template.
Directories created while watching are picked up automatically.

Press Ctrl+C to stop.

Examples:
  mdtmpl watch                     # Watch using .mdtmpl.yml or defaults
  mdtmpl watch --initial-build     # Compile everything first`,
		Args: exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWatch(cmd, flags)
		},
	}

	addSourceFlags(cmd, &flags.sourceFlags)
	cmd.Flags().BoolVar(&flags.initialBuild, "initial-build", false, "compile every page before watching")

	return cmd
}

func runWatch(cmd *cobra.Command, flags *watchFlags) error {
	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logging.NewLongRunning(logging.Default().GetLevel().String())
	ctx = logging.WithLogger(ctx, logger)

	cliCfg := &config.Config{}
	flags.apply(cmd, cliCfg)
	if cmd.Flags().Changed("initial-build") {
		initial := flags.initialBuild
		cliCfg.InitialBuild = &initial
	}

	cfg, err := loadConfig(ctx, cmd, cliCfg)
	if err != nil {
		return err
	}

	pipeline := newPipeline(cfg)
	opts := runnerOptions(cfg)

	if cfg.WantsInitialBuild() {
		if err := initialBuild(ctx, cmd, pipeline, opts); err != nil {
			return err
		}
	}

	watcher, err := watch.New(opts.Filter(), pipeline)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}

	if term.IsTerminal(int(os.Stdin.Fd())) {
		logger.Info("press Ctrl+C to stop")
	}

	if err := watcher.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("watch: %w", err)
	}

	logger.Info("stopped watching")
	return nil
}

// initialBuild compiles the whole tree once. Failed files are reported but
// do not stop the watcher from starting.
func initialBuild(ctx context.Context, cmd *cobra.Command, pipeline *runner.Pipeline, opts runner.Options) error {
	started := time.Now()

	result, err := runner.New(pipeline).Run(ctx, opts)
	if err != nil {
		return fmt.Errorf("initial build: %w", err)
	}

	rep := reporter.NewTextReporter(reporter.Options{
		Writer:  cmd.OutOrStdout(),
		Color:   colorMode(cmd),
		Elapsed: time.Since(started),
	})
	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report: %w", err)
	}

	return nil
}
