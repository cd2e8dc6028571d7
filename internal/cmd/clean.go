package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/chief/internal/errors"
	"github.com/felixgeelhaar/chief/internal/ux"
	"github.com/felixgeelhaar/chief/internal/workspace"
)

var cleanCmd = &cobra.Command{
	Use:   "clean [name]",
	Short: "Remove a worktree",
	Long: `Remove a worktree and its directory. Without a name the current worktree is
removed. If the removed worktree was current, no worktree is current afterwards.

chief asks for confirmation first, and warns when the worktree's branch has
commits that were never pushed.

Examples:
  chief clean
  chief clean login-1a2b3c4d --yes
  chief clean --push`,
	Args: cobra.MaximumNArgs(1),
	RunE: repoCommand(func(a *app, ctx context.Context, args []string) error {
		name := ""
		if len(args) > 0 {
			name = args[0]
		}
		return a.clean(ctx, name, cleanOpts)
	}),
}

type cleanOptions struct {
	yes  bool
	push bool
}

var cleanOpts cleanOptions

func init() {
	cleanCmd.Flags().BoolVarP(&cleanOpts.yes, "yes", "y", false, "skip the confirmation prompt")
	cleanCmd.Flags().BoolVar(&cleanOpts.push, "push", false, "push unpushed commits before removing")

	rootCmd.AddCommand(cleanCmd)
}

// CleanResult is the output of `chief clean`.
type CleanResult struct {
	Name       string `json:"name" yaml:"name"`
	Path       string `json:"path" yaml:"path"`
	Branch     string `json:"branch,omitempty" yaml:"branch,omitempty"`
	Removed    bool   `json:"removed" yaml:"removed"`
	WasCurrent bool   `json:"wasCurrent" yaml:"wasCurrent"`
	Pushed     bool   `json:"pushed" yaml:"pushed"`
}

// RenderText implements ux.TextRenderer.
func (r CleanResult) RenderText(w io.Writer, s ux.Styles) error {
	if !r.Removed {
		fmt.Fprintln(w, "Cancelled.")
		return nil
	}
	if r.Pushed {
		if r.Branch != "" {
			fmt.Fprintf(w, "Pushed branch %s before removal.\n", r.Branch)
		} else {
			fmt.Fprintf(w, "Pushed %s before removal.\n", r.Name)
		}
	}
	fmt.Fprintf(w, "%s Worktree %q cleaned up successfully.\n", s.Success.Render(ux.GlyphPass), r.Name)
	hint(w, s, "Start another with `chief new <task-set>`.")
	return nil
}

func (a *app) clean(ctx context.Context, name string, opts cleanOptions) error {
	ws, err := a.cleanTarget(ctx, name)
	if err != nil {
		return err
	}

	result := CleanResult{Name: ws.Name, Path: ws.Path, WasCurrent: ws.Current}
	if branch, err := a.git.CurrentBranch(ctx, ws.Path); err == nil {
		result.Branch = branch
	} else {
		a.logger.DebugContext(ctx, "branch unknown", "worktree", ws.Name, "error", err)
	}

	unpushed := a.git.HasUnpushedCommits(ctx, ws.Path)
	if unpushed && opts.push {
		if err := a.git.Push(ctx, ws.Path); err != nil {
			return errors.Wrap(errors.ErrCodeGitCommandFailed, "failed to push worktree branch", err).
				WithSuggestion("Re-run without --push to remove the worktree anyway")
		}
		result.Pushed = true
		unpushed = false
	}

	if !opts.yes {
		if !a.interactive {
			return errors.New(errors.ErrCodeMissingArgument, "refusing to remove a worktree without confirmation").
				WithSuggestion("Re-run with --yes")
		}
		subject := fmt.Sprintf("worktree %q", ws.Name)
		if result.Branch != "" {
			subject = fmt.Sprintf("worktree %q (branch %s)", ws.Name, result.Branch)
		}
		question := fmt.Sprintf("Delete %s?", subject)
		if unpushed {
			question = fmt.Sprintf("The %s may have unpushed commits. Delete anyway?", subject)
		}
		ok, err := a.prompter.Confirm(question, false)
		if err != nil {
			return err
		}
		if !ok {
			return a.render(result)
		}
	}

	if err := a.registry.Remove(ctx, ws); err != nil {
		return err
	}
	result.Removed = true
	return a.render(result)
}

// cleanTarget resolves the named worktree, or the current one.
func (a *app) cleanTarget(ctx context.Context, name string) (workspace.Workspace, error) {
	if name != "" {
		return a.registry.Lookup(name)
	}

	ws, err := a.registry.Resolve(ctx)
	if errors.HasCode(err, errors.ErrCodeNoCurrentWorktree) {
		return workspace.Workspace{}, errors.NewNoCurrentWorktreeError().
			WithSuggestion("Specify a worktree name: chief clean <name>")
	}
	return ws, err
}
