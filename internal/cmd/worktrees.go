package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/chief/internal/ux"
	"github.com/felixgeelhaar/chief/internal/workspace"
)

var worktreesCmd = &cobra.Command{
	Use:     "worktrees",
	Aliases: []string{"wt"},
	Short:   "List worktrees and their task progress",
	Long: `List every worktree under .chief/worktrees with its creation date and task
progress. The current worktree is marked [current].

Examples:
  chief worktrees
  chief worktrees --format json`,
	Args: cobra.NoArgs,
	RunE: repoCommand(func(a *app, ctx context.Context, _ []string) error {
		return a.worktrees(ctx)
	}),
}

func init() {
	rootCmd.AddCommand(worktreesCmd)
}

// WorktreesReport is the output of `chief worktrees`.
type WorktreesReport struct {
	Worktrees []workspace.Workspace `json:"worktrees" yaml:"worktrees"`
}

// RenderText implements ux.TextRenderer.
func (r WorktreesReport) RenderText(w io.Writer, s ux.Styles) error {
	if len(r.Worktrees) == 0 {
		fmt.Fprintln(w, "No worktrees found.")
		hint(w, s, "Run `chief new <task-set>` to create one.")
		return nil
	}

	fmt.Fprintln(w, s.Title.Render("Worktrees:"))
	fmt.Fprintln(w)
	rule(w, s)
	for _, ws := range r.Worktrees {
		name := ws.Name
		if ws.Current {
			name = s.Current.Render(ws.Name + " [current]")
		}
		fmt.Fprintln(w, name)

		line := "  Created: " + ws.CreatedAt.Local().Format("2006-01-02")
		if ws.TaskProgress != nil {
			line += fmt.Sprintf("  Tasks: %d/%d", ws.TaskProgress.Completed, ws.TaskProgress.Total)
		}
		fmt.Fprintln(w, line)
		fmt.Fprintf(w, "  Path: %s\n\n", ws.Path)
	}
	rule(w, s)

	fmt.Fprintf(w, "\n%d worktree(s) total\n", len(r.Worktrees))
	hint(w, s, "Use `chief use <name>` to switch worktrees.")
	return nil
}

func (a *app) worktrees(ctx context.Context) error {
	list, err := a.registry.List(ctx)
	if err != nil {
		return err
	}
	return a.render(WorktreesReport{Worktrees: list})
}
