package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdtmpl/pkg/render"
	"github.com/yaklabco/mdtmpl/pkg/runner"
)

// FormatOutcome formats the diagnostics and failure of one file, or
// returns "" when there is nothing to report.
func (s *Styles) FormatOutcome(outcome runner.FileOutcome) string {
	stale := outcome.Status == runner.StatusStale
	if len(outcome.Diagnostics) == 0 && outcome.Error == nil && !stale {
		return ""
	}

	var builder strings.Builder
	builder.WriteString(s.FormatFileHeader(outcome.Path, len(outcome.Diagnostics)))
	builder.WriteString("\n")

	for _, diag := range outcome.Diagnostics {
		builder.WriteString(s.FormatDiagnostic(outcome.Path, diag))
	}

	if stale {
		builder.WriteString("  " + s.Warning.Render("stale") + "  " +
			s.Message.Render(outcome.Destination+" is out of date") + "\n")
	}

	if outcome.Error != nil {
		builder.WriteString("  " + s.Failure.Render("failed") + "  " + s.Message.Render(outcome.Error.Error()) + "\n")
	}

	return builder.String()
}

// FormatDiagnostic formats a single diagnostic for terminal output.
func (s *Styles) FormatDiagnostic(path string, diag render.Diagnostic) string {
	location := s.FilePath.Render(path)
	if diag.Line > 0 {
		location += s.Location.Render(fmt.Sprintf(":%d", diag.Line))
	}

	return fmt.Sprintf("  %s  %s  %s\n",
		location,
		s.FormatSeverity(diag.Severity),
		s.Message.Render(diag.Message),
	)
}

// FormatSeverity returns a styled severity string.
func (s *Styles) FormatSeverity(sev render.Severity) string {
	switch sev {
	case render.SeverityError:
		return s.Error.Render("error")
	case render.SeverityWarning:
		return s.Warning.Render("warning")
	default:
		return string(sev)
	}
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	if issueCount > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%d %s)", issueCount, plural(issueCount, "issue", "issues")))
	}
	return header
}
