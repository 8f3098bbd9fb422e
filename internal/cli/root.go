// Package cli provides the Cobra command structure for mdtmpl.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdtmpl/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root mdtmpl command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "mdtmpl",
		Short: "Compile Markdown documentation into Angular component templates",
		Long: `mdtmpl compiles a tree of Markdown pages into Angular component templates.

Code fences understand two directives: @@filename(name) labels a block and
adds a TypeScript/JavaScript tab switcher, and @@switch separates the
TypeScript variant of a sample from its JavaScript variant. Headings get an
anchor directive, internal links become router links, and template braces in
code are escaped so Angular does not interpolate them.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	// Add subcommands.
	rootCmd.AddCommand(newBuildCommand(info))
	rootCmd.AddCommand(newWatchCommand())
	rootCmd.AddCommand(newCompileCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
