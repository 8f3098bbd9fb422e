package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/yaklabco/mdtmpl/internal/logging"
	"github.com/yaklabco/mdtmpl/pkg/compiler"
	"github.com/yaklabco/mdtmpl/pkg/fsutil"
)

// diffContextLines is the number of unchanged lines around each diff hunk.
const diffContextLines = 3

// Status is the outcome of processing one source file.
type Status string

const (
	// StatusWritten means a new or changed template was written.
	StatusWritten Status = "written"

	// StatusUnchanged means the template on disk already had this content.
	StatusUnchanged Status = "unchanged"

	// StatusFailed means nothing was written; see FileOutcome.Error.
	StatusFailed Status = "failed"

	// StatusRemoved means the template of a deleted source was removed.
	StatusRemoved Status = "removed"

	// StatusStale means, in check mode, that the template on disk is
	// missing or differs from the compiled output.
	StatusStale Status = "stale"
)

// Pipeline compiles one source file into its template.
type Pipeline struct {
	Compiler *compiler.Compiler
	Layout   compiler.Layout

	// FileMode of written templates. 0 means fsutil.DefaultFileMode.
	FileMode os.FileMode

	// Check compares compiled output with the templates on disk instead of
	// writing them.
	Check bool
}

// NewPipeline creates a Pipeline.
func NewPipeline(c *compiler.Compiler, layout compiler.Layout) *Pipeline {
	return &Pipeline{Compiler: c, Layout: layout}
}

// Process compiles the source at path and writes its template. Failures
// are reported in the outcome, never as a panic or partial write.
func (p *Pipeline) Process(ctx context.Context, path string) FileOutcome {
	logger := logging.FromContext(ctx).With(logging.FieldSource, path)
	outcome := FileOutcome{Path: path, Status: StatusFailed}

	dest, err := p.Layout.Destination(path)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Destination = dest

	source, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		outcome.Error = fmt.Errorf("read source: %w", err)
		return outcome
	}

	result, err := p.Compiler.Compile(ctx, source)
	if result != nil {
		outcome.Diagnostics = result.Diagnostics
	}
	if err != nil {
		outcome.Error = fmt.Errorf("compile %s: %w", path, err)
		return outcome
	}

	if p.Check {
		return p.check(ctx, outcome, result.HTML)
	}

	written, err := fsutil.WriteAtomicIfChanged(ctx, dest, result.HTML, p.FileMode)
	if err != nil {
		outcome.Error = fmt.Errorf("write template: %w", err)
		return outcome
	}

	outcome.Status = StatusUnchanged
	if written {
		outcome.Status = StatusWritten
	}

	logger.Debug("compiled",
		logging.FieldDest, dest,
		logging.FieldStatus, outcome.Status,
		logging.FieldDiagnostics, len(outcome.Diagnostics),
	)
	return outcome
}

// Remove deletes the template generated from the source at path.
func (p *Pipeline) Remove(ctx context.Context, path string) FileOutcome {
	outcome := FileOutcome{Path: path, Status: StatusFailed}

	dest, err := p.Layout.Destination(path)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Destination = dest

	removed, err := fsutil.RemoveIfExists(ctx, dest)
	if err != nil {
		outcome.Error = fmt.Errorf("remove template: %w", err)
		return outcome
	}

	outcome.Status = StatusUnchanged
	if removed {
		outcome.Status = StatusRemoved
	}
	return outcome
}

// check fills in the outcome for compiled content without touching disk.
func (p *Pipeline) check(ctx context.Context, outcome FileOutcome, compiled []byte) FileOutcome {
	current, err := fsutil.ReadFile(ctx, outcome.Destination)
	switch {
	case errors.Is(err, fsutil.ErrNotFound):
		current = nil
	case err != nil:
		outcome.Error = fmt.Errorf("read template: %w", err)
		return outcome
	}

	if bytes.Equal(current, compiled) {
		outcome.Status = StatusUnchanged
		return outcome
	}

	outcome.Status = StatusStale
	outcome.Diff, err = unifiedDiff(outcome.Destination, current, compiled)
	if err != nil {
		outcome.Error = err
		outcome.Status = StatusFailed
	}
	return outcome
}

// unifiedDiff renders the change from current to compiled for path.
func unifiedDiff(path string, current, compiled []byte) (string, error) {
	from := "a/" + filepath.ToSlash(path)
	if current == nil {
		from = "/dev/null"
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(current)),
		B:        difflib.SplitLines(string(compiled)),
		FromFile: from,
		ToFile:   "b/" + filepath.ToSlash(path),
		Context:  diffContextLines,
	})
	if err != nil {
		return "", fmt.Errorf("diff %s: %w", path, err)
	}
	return diff, nil
}
