package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// Precondition errors: the invocation cannot proceed as requested.
	ErrCodeNotGitRepo        ErrorCode = "GIT-001"
	ErrCodeMissingArgument   ErrorCode = "ARG-001"
	ErrCodeWorkspaceNotFound ErrorCode = "WORKSPACE-001"
	ErrCodeNoCurrentWorktree ErrorCode = "WORKSPACE-002"
	ErrCodeArtifactNotFound  ErrorCode = "ARTIFACT-001"

	// Parse errors: persisted data could not be decoded.
	ErrCodeTasksParse  ErrorCode = "TASKS-001"
	ErrCodeConfigParse ErrorCode = "STATE-001"

	// Validation errors (only raised by explicit validation commands)
	ErrCodeTasksInvalid ErrorCode = "TASKS-002"

	// File I/O errors
	ErrCodeFileReadFailed  ErrorCode = "IO-001"
	ErrCodeFileWriteFailed ErrorCode = "IO-002"
	ErrCodeDirectoryFailed ErrorCode = "IO-003"

	// Version control errors
	ErrCodeGitCommandFailed ErrorCode = "GIT-002"
)

// Category groups error codes by how the command layer reacts to them.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryPrecondition
	CategoryParse
	CategoryIO
)

// Category reports the category of the code.
func (c ErrorCode) Category() Category {
	switch c {
	case ErrCodeNotGitRepo, ErrCodeMissingArgument, ErrCodeWorkspaceNotFound,
		ErrCodeNoCurrentWorktree, ErrCodeArtifactNotFound:
		return CategoryPrecondition
	case ErrCodeTasksParse, ErrCodeConfigParse, ErrCodeTasksInvalid:
		return CategoryParse
	case ErrCodeFileReadFailed, ErrCodeFileWriteFailed, ErrCodeDirectoryFailed:
		return CategoryIO
	default:
		return CategoryUnknown
	}
}

// ChiefError represents an error with a code, recovery suggestions and an optional cause
type ChiefError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	Cause       error
}

// Error implements the error interface. Suggestions are not part of the
// message; see SuggestionsOf.
func (e *ChiefError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *ChiefError) Unwrap() error {
	return e.Cause
}

// Is matches another *ChiefError with the same code.
func (e *ChiefError) Is(target error) bool {
	t, ok := target.(*ChiefError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// New creates a new ChiefError
func New(code ErrorCode, message string) *ChiefError {
	return &ChiefError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new ChiefError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *ChiefError {
	return &ChiefError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *ChiefError) WithSuggestion(suggestion string) *ChiefError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *ChiefError) WithSuggestions(suggestions ...string) *ChiefError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// CodeOf returns the code of the first ChiefError in err's chain, or "" if none.
func CodeOf(err error) ErrorCode {
	var ce *ChiefError
	if errors.As(err, &ce) {
		return ce.Code
	}
	return ""
}

// SuggestionsOf collects the suggestions of every ChiefError in err's chain,
// outermost first, without duplicates.
func SuggestionsOf(err error) []string {
	var out []string
	seen := map[string]bool{}
	for err != nil {
		if ce, ok := err.(*ChiefError); ok {
			for _, s := range ce.Suggestions {
				if !seen[s] {
					seen[s] = true
					out = append(out, s)
				}
			}
		}
		err = errors.Unwrap(err)
	}
	return out
}

// HasCode reports whether err's chain contains a ChiefError with the given code.
func HasCode(err error, code ErrorCode) bool {
	return errors.Is(err, &ChiefError{Code: code})
}

// NewNotGitRepoError is returned when a command runs outside a repository.
func NewNotGitRepoError() *ChiefError {
	return New(ErrCodeNotGitRepo, "not in a git repository").
		WithSuggestion("Run chief from within a git repository")
}

// NewMissingArgumentError reports a required positional argument that was not given.
func NewMissingArgumentError(name, usage string) *ChiefError {
	return New(ErrCodeMissingArgument, fmt.Sprintf("missing argument: %s", name)).
		WithSuggestion(fmt.Sprintf("Usage: %s", usage))
}

// NewWorkspaceNotFoundError reports an unknown workspace name.
func NewWorkspaceNotFoundError(name string) *ChiefError {
	return New(ErrCodeWorkspaceNotFound, fmt.Sprintf("worktree not found: %s", name)).
		WithSuggestion("Run 'chief worktrees' to see available worktrees")
}

// NewNoCurrentWorktreeError reports that no usable current workspace is set.
func NewNoCurrentWorktreeError() *ChiefError {
	return New(ErrCodeNoCurrentWorktree, "no current worktree").
		WithSuggestion("Run 'chief new <task-set>' to create one").
		WithSuggestion("Run 'chief use <name>' to select an existing one")
}

// NewArtifactNotFoundError reports a plan or task set that could not be resolved.
func NewArtifactNotFoundError(kind, fragment, listCommand string) *ChiefError {
	return New(ErrCodeArtifactNotFound, fmt.Sprintf("%s not found: %s", kind, fragment)).
		WithSuggestion(fmt.Sprintf("Run '%s' to see available files", listCommand))
}

// NewFileUnmarshalError creates a parse error for a persisted file.
func NewFileUnmarshalError(code ErrorCode, path string, cause error) *ChiefError {
	return Wrap(code, fmt.Sprintf("failed to parse %s", path), cause).
		WithSuggestion("Check the file syntax; chief does not repair malformed files")
}
