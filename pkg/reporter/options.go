package reporter

import (
	"io"
	"os"
	"path/filepath"
	"time"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// Format specifies the output format.
	Format Format

	// Color controls colorized text output.
	// Values: "auto" (default), "always", "never"
	Color string

	// Summary prints a summary block instead of a one-line summary (text only).
	Summary bool

	// ShowDiff prints the diff of every stale template (text only).
	ShowDiff bool

	// Elapsed is the build duration shown in the text summary.
	Elapsed time.Duration

	// Compact uses minified output where applicable.
	Compact bool

	// ToolVersion is recorded in machine-readable reports.
	ToolVersion string

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is.
	WorkingDir string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		Format:      FormatText,
		Color:       "auto",
		ToolVersion: "dev",
	}
}

// displayPath returns path relative to WorkingDir, in slash form.
func (o Options) displayPath(path string) string {
	if o.WorkingDir == "" || path == "" {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(o.WorkingDir, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
