package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdtmpl/pkg/fsutil"
	"github.com/yaklabco/mdtmpl/pkg/runner"
)

// Exit codes for mdtmpl.
const (
	// ExitSuccess indicates successful execution.
	ExitSuccess = 0

	// ExitBuildErrors indicates files failed or produced error diagnostics.
	ExitBuildErrors = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates file I/O errors.
	ExitIOError = 74
)

// Sentinel errors mapped to exit codes by ExitCode.
var (
	// ErrBuildFailed is returned when a build finished with failures. The
	// failures have already been reported.
	ErrBuildFailed = errors.New("build failed")

	// ErrUsage wraps command-line usage errors.
	ErrUsage = errors.New("invalid usage")

	// ErrConfig wraps configuration errors.
	ErrConfig = errors.New("invalid configuration")
)

// ExitCode maps an error returned by the root command to a process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrBuildFailed):
		return ExitBuildErrors
	case errors.Is(err, ErrUsage):
		return ExitInvalidUsage
	case errors.Is(err, ErrConfig):
		return ExitConfigError
	case errors.Is(err, fsutil.ErrNotFound), errors.Is(err, fsutil.ErrPermissionDenied), errors.Is(err, fsutil.ErrIsDirectory):
		return ExitIOError
	default:
		return ExitInternalError
	}
}

// ExitCodeFromResult determines the exit code of a build.
func ExitCodeFromResult(result *runner.Result) int {
	if result.HasFailures() {
		return ExitBuildErrors
	}
	return ExitSuccess
}

func usageError(err error) error {
	return fmt.Errorf("%w: %w", ErrUsage, err)
}

// exactArgs is cobra.ExactArgs with the error tagged as a usage error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return usageError(err)
		}
		return nil
	}
}
