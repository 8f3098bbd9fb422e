package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/mdtmpl/internal/ui/pretty"
	"github.com/yaklabco/mdtmpl/pkg/runner"
)

// TextReporter prints per-file diagnostics followed by a summary.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		result = &runner.Result{}
	}

	for _, outcome := range result.Files {
		outcome.Path = r.opts.displayPath(outcome.Path)
		text := r.styles.FormatOutcome(outcome)
		if r.opts.ShowDiff && outcome.Diff != "" {
			text += outcome.Diff
		}
		if _, err := bw.WriteString(text); err != nil {
			return 0, fmt.Errorf("write outcome: %w", err)
		}
	}

	summary := r.styles.FormatSummaryOneLine(result.Stats, r.opts.Elapsed)
	if r.opts.Summary {
		summary = r.styles.FormatSummary(result.Stats)
	}
	if _, err := bw.WriteString(summary); err != nil {
		return 0, fmt.Errorf("write summary: %w", err)
	}

	return result.Stats.DiagnosticsTotal, nil
}
