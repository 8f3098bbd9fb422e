package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdtmpl/internal/configloader"
	"github.com/yaklabco/mdtmpl/internal/logging"
	"github.com/yaklabco/mdtmpl/internal/ui/pretty"
	"github.com/yaklabco/mdtmpl/pkg/compiler"
	"github.com/yaklabco/mdtmpl/pkg/config"
	"github.com/yaklabco/mdtmpl/pkg/highlight"
	"github.com/yaklabco/mdtmpl/pkg/runner"
)

// sourceFlags are the flags shared by commands that read a content tree.
type sourceFlags struct {
	src    string
	dest   string
	ignore []string
	flavor string
	strict bool
}

func addSourceFlags(cmd *cobra.Command, flags *sourceFlags) {
	cmd.Flags().StringVar(&flags.src, "src", "", "content root holding the Markdown sources")
	cmd.Flags().StringVar(&flags.dest, "dest", "", "output root for generated templates")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore, relative to --src")
	addCompileFlags(cmd, flags)
}

func addCompileFlags(cmd *cobra.Command, flags *sourceFlags) {
	cmd.Flags().StringVar(&flags.flavor, "flavor", string(config.FlavorGFM), "Markdown flavor: commonmark, gfm")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "fail files with malformed directives")
}

// apply copies the flags the user actually set onto cfg.
func (f *sourceFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed

	if changed("src") {
		cfg.Src = f.src
	}
	if changed("dest") {
		cfg.Dest = f.dest
	}
	if changed("ignore") {
		cfg.Ignore = f.ignore
	}
	if changed("flavor") {
		cfg.Flavor = config.Flavor(f.flavor)
	}
	if changed("strict") {
		strict := f.strict
		cfg.Strict = &strict
	}
}

// loadConfig resolves the configuration for cmd with cliCfg on top.
func loadConfig(ctx context.Context, cmd *cobra.Command, cliCfg *config.Config) (*config.Config, error) {
	logger := logging.FromContext(ctx)

	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("get config flag: %w", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: configPath,
		CLIConfig:    cliCfg,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfig, err)
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}

	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration from", logging.FieldFiles, loadResult.LoadedFrom)
	}

	cfg := loadResult.Config
	logger.Debug("configuration loaded",
		logging.FieldSource, cfg.Src,
		logging.FieldDest, cfg.Dest,
		logging.FieldFlavor, cfg.Flavor,
		logging.FieldStrict, cfg.IsStrict(),
		logging.FieldJobs, cfg.Jobs,
	)

	return cfg, nil
}

func newCompiler(cfg *config.Config) *compiler.Compiler {
	return compiler.New(compiler.Options{
		Flavor: string(cfg.Flavor),
		Highlighter: highlight.NewChroma(highlight.Options{
			Style:   cfg.Highlight.Style,
			Classes: cfg.Highlight.UsesClasses(),
		}),
		DetectLanguage:  cfg.Highlight.Detects(),
		DefaultLanguage: cfg.Highlight.DefaultLanguage,
		Container:       compiler.Container{Class: cfg.Container.Class, Ref: cfg.Container.Ref},
		Strict:          cfg.IsStrict(),
	})
}

func newPipeline(cfg *config.Config) *runner.Pipeline {
	return runner.NewPipeline(newCompiler(cfg), compiler.Layout{
		SourceRoot: cfg.Src,
		DestRoot:   cfg.Dest,
		Suffix:     cfg.ComponentSuffix,
	})
}

func runnerOptions(cfg *config.Config) runner.Options {
	return runner.Options{
		SourceRoot: cfg.Src,
		Extensions: cfg.Extensions,
		Ignore:     cfg.Ignore,
		Jobs:       cfg.Jobs,
	}
}

func colorMode(cmd *cobra.Command) string {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		return "auto"
	}
	return mode
}

func stylesFor(cmd *cobra.Command) *pretty.Styles {
	return pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), cmd.ErrOrStderr()))
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
