package cli

import (
	"errors"

	"github.com/yaklabco/markuplint/internal/configloader"
	"github.com/yaklabco/markuplint/pkg/lint"
	"github.com/yaklabco/markuplint/pkg/runner"
)

// Exit codes for markuplint.
const (
	// ExitSuccess indicates successful execution with no issues.
	ExitSuccess = 0

	// ExitLintErrors indicates lint completed but found errors.
	ExitLintErrors = 1

	// ExitLintWarnings indicates lint found only warnings in strict mode.
	ExitLintWarnings = 2

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInternalError indicates an internal error.
	ExitInternalError = 70

	// ExitIOError indicates files that could not be read or written.
	ExitIOError = 74
)

var (
	// ErrLintIssuesFound is returned when lint found error-severity issues.
	ErrLintIssuesFound = errors.New("lint issues found")

	// ErrLintWarningsFound is returned in strict mode when only warnings were found.
	ErrLintWarningsFound = errors.New("lint warnings found")

	// ErrFilesFailed is returned when one or more files could not be processed.
	ErrFilesFailed = errors.New("some files could not be processed")
)

// ExitCodeFromResult determines the exit code based on result and strict mode.
func ExitCodeFromResult(result *runner.Result, strict bool) int {
	if result == nil {
		return ExitSuccess
	}

	switch stats := result.Stats; {
	case stats.Errors > 0:
		return ExitLintErrors
	case stats.Failed > 0:
		return ExitIOError
	case strict && stats.Warnings > 0:
		return ExitLintWarnings
	default:
		return ExitSuccess
	}
}

// errorForExitCode maps a result exit code to the error returned by RunE.
func errorForExitCode(code int) error {
	switch code {
	case ExitLintErrors:
		return ErrLintIssuesFound
	case ExitLintWarnings:
		return ErrLintWarningsFound
	case ExitIOError:
		return ErrFilesFailed
	default:
		return nil
	}
}

// ExitCode maps an error returned by a command to a process exit code.
func ExitCode(err error) int {
	var validationErr *configloader.ValidationError

	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrLintIssuesFound):
		return ExitLintErrors
	case errors.Is(err, ErrLintWarningsFound):
		return ExitLintWarnings
	case errors.Is(err, ErrFilesFailed):
		return ExitIOError
	case errors.As(err, &validationErr), errors.Is(err, lint.ErrUnknownRule):
		return ExitConfigError
	default:
		return ExitInternalError
	}
}

// IsLintSignal reports whether err only signals lint findings, which the
// reporter has already printed.
func IsLintSignal(err error) bool {
	return errors.Is(err, ErrLintIssuesFound) || errors.Is(err, ErrLintWarningsFound)
}
