// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError  = "error"
	FieldPath   = "path"
	FieldSource = "source"
	FieldDest   = "dest"
	FieldFiles  = "files"
	FieldEvent  = "event"
	FieldStatus = "status"
	FieldLine   = "line"

	// Configuration fields.
	FieldFlavor = "flavor"
	FieldJobs   = "jobs"
	FieldStrict = "strict"
	FieldConfig = "config"

	// Statistics fields.
	FieldFilesDiscovered  = "files_discovered"
	FieldFilesWritten     = "files_written"
	FieldFilesUnchanged   = "files_unchanged"
	FieldFilesFailed      = "files_failed"
	FieldDiagnostics      = "diagnostics"
	FieldDiagnosticsTotal = "diagnostics_total"
	FieldDuration         = "duration"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
