package ux

import (
	"errors"
	"fmt"
	"strings"

	chieferrors "github.com/felixgeelhaar/chief/internal/errors"
)

// ErrorWithSuggestion wraps an error with helpful recovery suggestions
type ErrorWithSuggestion struct {
	Err        error
	Suggestion string
}

// Error implements the error interface
func (e *ErrorWithSuggestion) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%v\n\nSuggestion: %s", e.Err, e.Suggestion)
	}
	return e.Err.Error()
}

// Unwrap provides access to the underlying error
func (e *ErrorWithSuggestion) Unwrap() error {
	return e.Err
}

// NewErrorWithSuggestion creates a new error with a suggestion
func NewErrorWithSuggestion(err error, suggestion string) error {
	if err == nil {
		return nil
	}
	return &ErrorWithSuggestion{
		Err:        err,
		Suggestion: suggestion,
	}
}

// EnhanceError adds a suggestion to uncoded errors whose message is
// recognizable. Coded errors already carry their own suggestions.
func EnhanceError(err error) error {
	if err == nil {
		return nil
	}
	if chieferrors.CodeOf(err) != "" {
		return err
	}

	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "executable file not found") && strings.Contains(errMsg, "git"):
		return NewErrorWithSuggestion(err, "Install git and make sure it is on your PATH")
	case strings.Contains(errMsg, "already exists") && strings.Contains(errMsg, "worktree"):
		return NewErrorWithSuggestion(err, "Run 'chief worktrees' to find the existing worktree, or 'chief clean <name>' to remove it")
	case strings.Contains(errMsg, "is already checked out"):
		return NewErrorWithSuggestion(err, "The branch is in use by another worktree; pick a different branch prefix or clean the old worktree")
	case strings.Contains(errMsg, "permission denied"):
		return NewErrorWithSuggestion(err, "Check file permissions on the .chief directory")
	case strings.Contains(errMsg, "unknown format"):
		return NewErrorWithSuggestion(err, "Use --format text, json or yaml")
	}

	return err
}

// RenderError formats err for the terminal: the code and message on the
// first line, then any suggestions.
func RenderError(err error, styles Styles) string {
	if err == nil {
		return ""
	}

	var b strings.Builder
	var ce *chieferrors.ChiefError
	var ws *ErrorWithSuggestion

	switch {
	case errors.As(err, &ce):
		msg := ce.Message
		if ce.Cause != nil {
			msg += ": " + ce.Cause.Error()
		}
		b.WriteString(styles.Error.Render("Error:"))
		b.WriteString(" ")
		b.WriteString(styles.Muted.Render("[" + string(ce.Code) + "]"))
		b.WriteString(" ")
		b.WriteString(msg)
		for _, s := range chieferrors.SuggestionsOf(err) {
			b.WriteString("\n  ")
			b.WriteString(styles.Muted.Render("→ " + s))
		}
	case errors.As(err, &ws):
		b.WriteString(styles.Error.Render("Error:"))
		b.WriteString(" ")
		b.WriteString(ws.Err.Error())
		b.WriteString("\n  ")
		b.WriteString(styles.Muted.Render("→ " + ws.Suggestion))
	default:
		b.WriteString(styles.Error.Render("Error:"))
		b.WriteString(" ")
		b.WriteString(err.Error())
	}
	return b.String()
}
