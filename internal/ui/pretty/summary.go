package pretty

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/yaklabco/mdtmpl/pkg/render"
	"github.com/yaklabco/mdtmpl/pkg/runner"
)

const (
	summaryDividerWidth = 40
	wordFile            = "file"
	wordFiles           = "files"
)

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

// FormatSummaryOneLine formats build statistics as a single line.
// Example: "12 files compiled (3 written, 9 unchanged) in 120ms, 2 warnings".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats, elapsed time.Duration) string {
	compiled := stats.FilesWritten + stats.FilesUnchanged + stats.FilesStale

	line := fmt.Sprintf("%d %s compiled (%d written, %d unchanged) in %s",
		compiled, plural(compiled, wordFile, wordFiles),
		stats.FilesWritten, stats.FilesUnchanged,
		elapsed.Round(time.Millisecond),
	)

	var parts []string
	if stats.FilesFailed > 0 {
		parts = append(parts, s.Failure.Render(fmt.Sprintf("%d %s failed", stats.FilesFailed, plural(stats.FilesFailed, wordFile, wordFiles))))
	}
	if stats.FilesStale > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d %s stale", stats.FilesStale, plural(stats.FilesStale, wordFile, wordFiles))))
	}
	if errs := stats.DiagnosticsBySeverity[render.SeverityError]; errs > 0 {
		parts = append(parts, s.Error.Render(fmt.Sprintf("%d %s", errs, plural(errs, "error", "errors"))))
	}
	if warnings := stats.DiagnosticsBySeverity[render.SeverityWarning]; warnings > 0 {
		parts = append(parts, s.Warning.Render(fmt.Sprintf("%d %s", warnings, plural(warnings, "warning", "warnings"))))
	}

	if len(parts) == 0 {
		return s.Success.Render(line) + "\n"
	}
	return line + ", " + strings.Join(parts, ", ") + "\n"
}

// FormatSummary formats build statistics as a summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var builder strings.Builder

	builder.WriteString("\n")
	builder.WriteString(s.SummaryTitle.Render("Summary"))
	builder.WriteString("\n")
	builder.WriteString(strings.Repeat("-", summaryDividerWidth))
	builder.WriteString("\n")

	builder.WriteString("  Files found:       " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesDiscovered)) + "\n")
	builder.WriteString("  Written:           " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesWritten)) + "\n")
	builder.WriteString("  Unchanged:         " +
		s.SummaryValue.Render(strconv.Itoa(stats.FilesUnchanged)) + "\n")

	if stats.FilesStale > 0 {
		builder.WriteString("  Stale:             " +
			s.Warning.Render(strconv.Itoa(stats.FilesStale)) + "\n")
	}
	if stats.FilesFailed > 0 {
		builder.WriteString("  Failed:            " +
			s.Failure.Render(strconv.Itoa(stats.FilesFailed)) + "\n")
	}

	if stats.DiagnosticsTotal > 0 {
		builder.WriteString("\n")
		builder.WriteString("  Diagnostics:       " +
			s.SummaryValue.Render(strconv.Itoa(stats.DiagnosticsTotal)) + "\n")

		if errs := stats.DiagnosticsBySeverity[render.SeverityError]; errs > 0 {
			builder.WriteString("    Errors:          " + s.Error.Render(strconv.Itoa(errs)) + "\n")
		}
		if warnings := stats.DiagnosticsBySeverity[render.SeverityWarning]; warnings > 0 {
			builder.WriteString("    Warnings:        " + s.Warning.Render(strconv.Itoa(warnings)) + "\n")
		}
	}

	builder.WriteString("\n")

	switch {
	case stats.FilesFailed > 0 || stats.DiagnosticsBySeverity[render.SeverityError] > 0:
		builder.WriteString(s.Failure.Render("Build finished with errors"))
	case stats.FilesStale > 0:
		builder.WriteString(s.Failure.Render("Templates are out of date"))
	case stats.DiagnosticsBySeverity[render.SeverityWarning] > 0:
		builder.WriteString(s.Warning.Render("Build finished with warnings"))
	default:
		builder.WriteString(s.Success.Render("Build succeeded"))
	}
	builder.WriteString("\n")

	return builder.String()
}
