package runner

import (
	"github.com/samber/lo"

	"github.com/yaklabco/mdtmpl/pkg/render"
)

// FileOutcome is the result of processing one source file.
type FileOutcome struct {
	// Path is the source file.
	Path string

	// Destination is the template path, empty if it could not be derived.
	Destination string

	Status Status

	// Diagnostics are the constructs rendered as written.
	Diagnostics []render.Diagnostic

	// Error is set when Status is StatusFailed.
	Error error

	// Diff is the unified diff from the template on disk to the compiled
	// output. Only set for StatusStale.
	Diff string
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	FilesWritten   int
	FilesUnchanged int
	FilesFailed    int

	// FilesStale counts templates that are out of date in check mode.
	FilesStale int

	// FilesWithIssues is the number of files with at least one diagnostic.
	FilesWithIssues int

	// DiagnosticsTotal is the total number of diagnostics across all files.
	DiagnosticsTotal int

	// DiagnosticsBySeverity maps severity levels to counts.
	DiagnosticsBySeverity map[render.Severity]int
}

// Result is the overall runner result.
type Result struct {
	// Files are ordered by path.
	Files []FileOutcome

	Stats Stats
}

// HasFailures reports whether any file failed or is stale, or any error
// diagnostic was produced.
func (r *Result) HasFailures() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesFailed > 0 || r.Stats.FilesStale > 0 ||
		r.Stats.DiagnosticsBySeverity[render.SeverityError] > 0
}

// Failed returns the outcomes of files that could not be compiled.
func (r *Result) Failed() []FileOutcome {
	return lo.Filter(r.Files, func(o FileOutcome, _ int) bool {
		return o.Status == StatusFailed
	})
}

// Errors returns the error-severity diagnostics of the outcome.
func (o FileOutcome) Errors() []render.Diagnostic {
	return lo.Filter(o.Diagnostics, func(d render.Diagnostic, _ int) bool {
		return d.Severity == render.SeverityError
	})
}

func newResult(files []FileOutcome) *Result {
	result := &Result{Files: files}

	result.Stats = Stats{
		FilesDiscovered: len(files),
		FilesWritten:    countStatus(files, StatusWritten),
		FilesUnchanged:  countStatus(files, StatusUnchanged),
		FilesFailed:     countStatus(files, StatusFailed),
		FilesStale:      countStatus(files, StatusStale),
		FilesWithIssues: lo.CountBy(files, func(o FileOutcome) bool {
			return len(o.Diagnostics) > 0
		}),
	}

	diagnostics := lo.FlatMap(files, func(o FileOutcome, _ int) []render.Diagnostic {
		return o.Diagnostics
	})
	result.Stats.DiagnosticsTotal = len(diagnostics)
	result.Stats.DiagnosticsBySeverity = lo.CountValuesBy(diagnostics, func(d render.Diagnostic) render.Severity {
		return d.Severity
	})

	return result
}

func countStatus(files []FileOutcome, status Status) int {
	return lo.CountBy(files, func(o FileOutcome) bool {
		return o.Status == status
	})
}
