package cmd

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/chief/internal/artifact"
	"github.com/felixgeelhaar/chief/internal/ux"
	"github.com/felixgeelhaar/chief/internal/workspace"
)

var newCmd = &cobra.Command{
	Use:   "new [task-set]",
	Short: "Create a worktree for a task set",
	Long: `Create a git worktree under .chief/worktrees for a task set from .chief/tasks,
copy the task set into it, and make it the current worktree.

The task set may be named by its full filename, its name without suffix, or
just its feature slug; when several files share a slug the newest wins.

Examples:
  chief new login
  chief new 2025-01-15-login
  chief new login --branch feature/login`,
	Args: cobra.MaximumNArgs(1),
	RunE: repoCommand(func(a *app, ctx context.Context, args []string) error {
		fragment := ""
		if len(args) > 0 {
			fragment = args[0]
		}
		return a.newWorktree(ctx, fragment, newBranch)
	}),
}

var newBranch string

func init() {
	newCmd.Flags().StringVarP(&newBranch, "branch", "b", "", "branch to check out (default <branch_prefix><feature>)")

	rootCmd.AddCommand(newCmd)
}

// NewResult is the output of `chief new`.
type NewResult struct {
	Worktree workspace.Workspace `json:"worktree" yaml:"worktree"`
	Branch   string              `json:"branch" yaml:"branch"`
	TaskSet  string              `json:"taskSet" yaml:"taskSet"`
}

// RenderText implements ux.TextRenderer.
func (r NewResult) RenderText(w io.Writer, s ux.Styles) error {
	fmt.Fprintf(w, "%s Created worktree: %s\n", s.Success.Render(ux.GlyphPass), s.Current.Render(r.Worktree.Name))
	fmt.Fprintf(w, "  Branch:   %s\n", r.Branch)
	fmt.Fprintf(w, "  Task set: %s\n", r.TaskSet)
	fmt.Fprintf(w, "  Path:     %s\n", r.Worktree.Path)
	if r.Worktree.TaskProgress != nil {
		fmt.Fprintf(w, "  Tasks:    %s\n", progressLine(*r.Worktree.TaskProgress))
	}
	hint(w, s, "It is now the current worktree. Run `chief list` to see its tasks.")
	return nil
}

func (a *app) newWorktree(ctx context.Context, fragment, branch string) error {
	source, err := a.pickArtifact(artifact.KindTaskSet, fragment, "chief new <task-set>")
	if err != nil {
		return err
	}

	file := filepath.Base(source)
	feature := artifact.FeatureName(artifact.BaseName(file, artifact.KindTaskSet))
	slug := artifact.Slugify(feature)
	if branch == "" {
		branch = a.cc.Settings.Branch(slug)
	}

	ws, err := a.registry.Create(ctx, workspace.CreateOptions{
		Slug:    slug,
		Branch:  branch,
		TaskSet: source,
		Now:     a.now,
	})
	if err != nil {
		return err
	}

	return a.render(NewResult{Worktree: ws, Branch: branch, TaskSet: file})
}
