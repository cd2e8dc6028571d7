package exitcode

import (
	"os"
	"strings"

	"github.com/felixgeelhaar/chief/internal/errors"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates a failed precondition: bad arguments, not in a
	// repository, or a referenced worktree or artifact that does not exist
	UsageError = 2

	// DataError indicates malformed persisted task or configuration data
	DataError = 3

	// Interrupted indicates the user cancelled the operation
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	if err == nil {
		Exit(Success)
		return
	}

	Exit(DetermineExitCode(err))
}

// DetermineExitCode analyzes an error and returns the appropriate exit code
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}

	switch errors.CodeOf(err).Category() {
	case errors.CategoryPrecondition:
		return UsageError
	case errors.CategoryParse:
		return DataError
	}

	// cobra reports argument problems as plain errors
	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "unknown command") || strings.Contains(errMsg, "unknown flag") {
		return UsageError
	}
	if strings.Contains(errMsg, "accepts") && strings.Contains(errMsg, "arg(s)") {
		return UsageError
	}

	return GeneralError
}

// GetExitCodeDescription returns a human-readable description of an exit code
func GetExitCodeDescription(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case UsageError:
		return "Usage error (invalid arguments or missing prerequisite)"
	case DataError:
		return "Malformed data"
	case Interrupted:
		return "Interrupted"
	default:
		return "Unknown error"
	}
}
