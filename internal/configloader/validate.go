package configloader

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/alecthomas/chroma/v2/styles"
	"github.com/bmatcuk/doublestar/v4"

	"github.com/yaklabco/mdtmpl/pkg/config"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "highlight.style").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string

	// Line is the line number in the config file (if known).
	Line int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		if e.Line > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", e.FilePath, e.Line))
		} else {
			parts = append(parts, e.FilePath)
		}
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown fields).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// knownFlavors lists valid flavor values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownFlavors = map[config.Flavor]bool{
	config.FlavorCommonMark: true,
	config.FlavorGFM:        true,
}

// templateRef matches an Angular template reference variable name.
var templateRef = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// Validate checks a resolved configuration for errors and warnings.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	validateValues(cfg, result)

	if cfg.Src == "" {
		result.Errors = append(result.Errors, ValidationError{Field: "src", Message: "content root must be set"})
	}
	if cfg.Dest == "" {
		result.Errors = append(result.Errors, ValidationError{Field: "dest", Message: "output root must be set"})
	}
	if cfg.Src != "" && cfg.Src == cfg.Dest {
		result.Warnings = append(result.Warnings, ValidationError{
			Field:   "dest",
			Value:   cfg.Dest,
			Message: "output root is the content root; templates are written next to their sources",
		})
	}

	return result
}

// ValidateWithFile validates the values set in one config file and
// includes the file path in every finding.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}

	validateValues(cfg, result)

	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}

	return result
}

// validateValues checks the fields that are set, without requiring any.
func validateValues(cfg *config.Config, result *ValidationResult) {
	if cfg.Flavor != "" && !knownFlavors[cfg.Flavor] {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "flavor",
			Value:   cfg.Flavor,
			Message: fmt.Sprintf("invalid flavor %q; must be one of: commonmark, gfm", cfg.Flavor),
		})
	}

	if cfg.Jobs < 0 {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "jobs",
			Value:   cfg.Jobs,
			Message: "jobs must be >= 0 (0 means auto)",
		})
	}

	for i, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("extensions[%d]", i),
				Value:   ext,
				Message: fmt.Sprintf("invalid extension %q; must start with a dot", ext),
			})
		}
	}

	if cfg.Container.Ref != "" && !templateRef.MatchString(cfg.Container.Ref) {
		result.Errors = append(result.Errors, ValidationError{
			Field:   "container.ref",
			Value:   cfg.Container.Ref,
			Message: fmt.Sprintf("invalid template reference %q", cfg.Container.Ref),
		})
	}

	if style := cfg.Highlight.Style; style != "" {
		if _, ok := styles.Registry[style]; !ok {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   "highlight.style",
				Value:   style,
				Message: fmt.Sprintf("unknown style %q; the fallback style is used", style),
			})
		}
	}

	validateIgnorePatterns(cfg, result)
}

// validateIgnorePatterns checks that ignore patterns are valid globs.
func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if !doublestar.ValidatePattern(pattern) {
			result.Errors = append(result.Errors, ValidationError{
				Field:   fmt.Sprintf("ignore[%d]", i),
				Value:   pattern,
				Message: fmt.Sprintf("invalid glob pattern %q", pattern),
			})
		}
	}
}

// IsValidFlavor returns true if the flavor is valid.
func IsValidFlavor(f config.Flavor) bool {
	return knownFlavors[f]
}
