package ux

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
)

// ErrAborted is returned when the user cancels a prompt.
var ErrAborted = errors.New("prompt aborted")

// Prompter asks the user questions. Commands take a Prompter so tests can
// script the answers.
type Prompter interface {
	Confirm(message string, defaultYes bool) (bool, error)
	Select(message string, options []string) (string, error)
	Input(message, placeholder string) (string, error)
	Text(message, initial string) (string, error)
}

// HuhPrompter renders prompts with huh.
type HuhPrompter struct{}

// Confirm displays a yes/no confirmation prompt
func (HuhPrompter) Confirm(message string, defaultYes bool) (bool, error) {
	confirmed := defaultYes

	confirm := huh.NewConfirm().
		Title(message).
		Value(&confirmed)

	if err := run(huh.NewForm(huh.NewGroup(confirm))); err != nil {
		return false, err
	}
	return confirmed, nil
}

// Select displays a selection prompt with multiple options
func (HuhPrompter) Select(message string, options []string) (string, error) {
	if len(options) == 0 {
		return "", fmt.Errorf("no options provided")
	}

	huhOptions := make([]huh.Option[string], len(options))
	for i, opt := range options {
		huhOptions[i] = huh.NewOption(opt, opt)
	}

	var selected string
	selectField := huh.NewSelect[string]().
		Title(message).
		Options(huhOptions...).
		Value(&selected)

	if err := run(huh.NewForm(huh.NewGroup(selectField))); err != nil {
		return "", err
	}
	return selected, nil
}

// Input displays a single-line text prompt
func (HuhPrompter) Input(message, placeholder string) (string, error) {
	var value string

	input := huh.NewInput().
		Title(message).
		Placeholder(placeholder).
		Value(&value)

	if err := run(huh.NewForm(huh.NewGroup(input))); err != nil {
		return "", err
	}
	return value, nil
}

// Text displays a multi-line editor prefilled with initial
func (HuhPrompter) Text(message, initial string) (string, error) {
	value := initial

	text := huh.NewText().
		Title(message).
		Value(&value)

	if err := run(huh.NewForm(huh.NewGroup(text))); err != nil {
		return "", err
	}
	return value, nil
}

func run(form *huh.Form) error {
	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrAborted
		}
		return fmt.Errorf("prompt failed: %w", err)
	}
	return nil
}

// IsInteractive returns true if stdin is a terminal (not piped)
func IsInteractive() bool {
	fileInfo, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// ShouldPrompt returns true if prompts should be shown based on environment
// Prompts are disabled in CI environments or when stdin is not a terminal
func ShouldPrompt() bool {
	ciEnvVars := []string{
		"CI",
		"GITHUB_ACTIONS",
		"GITLAB_CI",
		"JENKINS_URL",
		"TRAVIS",
		"CIRCLECI",
		"BUILDKITE",
	}

	for _, envVar := range ciEnvVars {
		if os.Getenv(envVar) != "" {
			return false
		}
	}

	return IsInteractive()
}

var _ Prompter = HuhPrompter{}
