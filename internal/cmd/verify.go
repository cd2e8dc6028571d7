package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/chief/internal/errors"
	"github.com/felixgeelhaar/chief/internal/state"
	"github.com/felixgeelhaar/chief/internal/ux"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Show the repository's verification steps",
	Long: `Verification steps are free text describing how to check that a task is really
done (for example "run make test and make lint"). They are stored once per
repository in .chief/verification.txt.

Examples:
  chief verify
  chief verify set "go test ./... && golangci-lint run"
  chief verify set            # opens an editor prompt`,
	Args: cobra.NoArgs,
	RunE: repoCommand(func(a *app, _ context.Context, _ []string) error {
		return a.showVerification()
	}),
}

var verifySetCmd = &cobra.Command{
	Use:   "set [text...]",
	Short: "Store the repository's verification steps",
	RunE: repoCommand(func(a *app, _ context.Context, args []string) error {
		return a.setVerification(strings.Join(args, " "))
	}),
}

func init() {
	verifyCmd.AddCommand(verifySetCmd)
	rootCmd.AddCommand(verifyCmd)
}

// VerificationReport is the output of `chief verify`.
type VerificationReport struct {
	Set   bool   `json:"set" yaml:"set"`
	Steps string `json:"steps,omitempty" yaml:"steps,omitempty"`
}

// RenderText implements ux.TextRenderer.
func (r VerificationReport) RenderText(w io.Writer, s ux.Styles) error {
	if !r.Set {
		fmt.Fprintln(w, "No verification steps set.")
		hint(w, s, "Run `chief verify set` to add them.")
		return nil
	}
	fmt.Fprintln(w, s.Title.Render("Verification steps:"))
	fmt.Fprintln(w)
	fmt.Fprintln(w, r.Steps)
	return nil
}

func (a *app) showVerification() error {
	steps, ok, err := state.GetVerificationSteps(a.paths.ControlDir)
	if err != nil {
		return err
	}
	return a.render(VerificationReport{Set: ok, Steps: steps})
}

func (a *app) setVerification(text string) error {
	if strings.TrimSpace(text) == "" {
		if !a.interactive {
			return errors.NewMissingArgumentError("text", `chief verify set "<steps>"`)
		}

		current, _, err := state.GetVerificationSteps(a.paths.ControlDir)
		if err != nil {
			return err
		}
		text, err = a.prompter.Text("How should finished tasks be verified?", current)
		if err != nil {
			return err
		}
	}

	if err := state.SetVerificationSteps(a.paths.ControlDir, text); err != nil {
		return err
	}
	return a.render(FileResult{Path: a.paths.Verification()})
}
