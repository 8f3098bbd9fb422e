// Package runner compiles a whole content tree: discovery of Markdown
// sources, the per-file read/compile/write pipeline, and a bounded worker
// pool around it.
package runner

// Options controls a build run.
type Options struct {
	// SourceRoot is the content directory to compile.
	SourceRoot string

	// Extensions is the set of file extensions (lowercase, with leading dot)
	// considered Markdown. Defaults to DefaultExtensions().
	Extensions []string

	// Ignore are doublestar patterns, relative to SourceRoot, for files or
	// directories to skip.
	Ignore []string

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means "auto" (runtime.NumCPU()).
	Jobs int
}

// DefaultExtensions returns the default set of Markdown file extensions.
func DefaultExtensions() []string {
	return []string{".md"}
}

// Filter returns the source filter described by the options.
func (o Options) Filter() Filter {
	return Filter{Root: o.SourceRoot, Extensions: o.Extensions, Ignore: o.Ignore}
}
