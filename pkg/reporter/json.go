package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/samber/lo"

	"github.com/yaklabco/mdtmpl/pkg/render"
	"github.com/yaklabco/mdtmpl/pkg/runner"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's results.
type JSONFileResult struct {
	Path        string           `json:"path"`
	Destination string           `json:"destination,omitempty"`
	Status      string           `json:"status"`
	Diagnostics []JSONDiagnostic `json:"diagnostics"`
	Error       string           `json:"error,omitempty"`
	Diff        string           `json:"diff,omitempty"`
}

// JSONDiagnostic represents a single diagnostic.
type JSONDiagnostic struct {
	Code     string `json:"code,omitempty"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
	Line     int    `json:"line,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesDiscovered  int            `json:"filesDiscovered"`
	FilesWritten     int            `json:"filesWritten"`
	FilesUnchanged   int            `json:"filesUnchanged"`
	FilesFailed      int            `json:"filesFailed"`
	FilesStale       int            `json:"filesStale"`
	FilesWithIssues  int            `json:"filesWithIssues"`
	DiagnosticsTotal int            `json:"diagnosticsTotal"`
	BySeverity       map[string]int `json:"bySeverity"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{opts: opts}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}

	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}

	return output.Summary.DiagnosticsTotal, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: "1.0.0",
		Files:   make([]JSONFileResult, 0),
		Summary: JSONSummary{BySeverity: make(map[string]int)},
	}

	if result == nil {
		return output
	}

	stats := result.Stats
	output.Summary = JSONSummary{
		FilesDiscovered:  stats.FilesDiscovered,
		FilesWritten:     stats.FilesWritten,
		FilesUnchanged:   stats.FilesUnchanged,
		FilesFailed:      stats.FilesFailed,
		FilesStale:       stats.FilesStale,
		FilesWithIssues:  stats.FilesWithIssues,
		DiagnosticsTotal: stats.DiagnosticsTotal,
		BySeverity: lo.MapKeys(stats.DiagnosticsBySeverity, func(_ int, sev render.Severity) string {
			return string(sev)
		}),
	}

	output.Files = lo.Map(result.Files, func(file runner.FileOutcome, _ int) JSONFileResult {
		fileResult := JSONFileResult{
			Path:        r.opts.displayPath(file.Path),
			Destination: r.opts.displayPath(file.Destination),
			Status:      string(file.Status),
			Diff:        file.Diff,
			Diagnostics: lo.Map(file.Diagnostics, func(diag render.Diagnostic, _ int) JSONDiagnostic {
				return JSONDiagnostic{
					Code:     diag.Code,
					Severity: string(diag.Severity),
					Message:  diag.Message,
					Line:     diag.Line,
				}
			}),
		}
		if file.Error != nil {
			fileResult.Error = file.Error.Error()
		}
		return fileResult
	})

	return output
}
