package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/chief/internal/tasks"
	"github.com/felixgeelhaar/chief/internal/ux"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the tasks of the current worktree",
	Args:    cobra.NoArgs,
	RunE: repoCommand(func(a *app, ctx context.Context, _ []string) error {
		return a.list(ctx)
	}),
}

func init() {
	rootCmd.AddCommand(listCmd)
}

// TaskListReport is the output of `chief list` and `chief tasks show`.
type TaskListReport struct {
	Name     string       `json:"name" yaml:"name"`
	Path     string       `json:"path" yaml:"path"`
	Progress tasks.Stats  `json:"progress" yaml:"progress"`
	Tasks    []tasks.Task `json:"tasks" yaml:"tasks"`
}

// RenderText implements ux.TextRenderer.
func (r TaskListReport) RenderText(w io.Writer, s ux.Styles) error {
	if len(r.Tasks) == 0 {
		fmt.Fprintf(w, "No tasks found in %s\n", r.Name)
		hint(w, s, "Run `chief new <task-set>` to start a worktree with tasks.")
		return nil
	}

	fmt.Fprintf(w, "%s %s\n", s.Title.Render("Tasks for:"), r.Name)
	fmt.Fprintf(w, "Progress: %s\n\n", progressLine(r.Progress))
	rule(w, s)
	renderTasks(w, s, r.Tasks)
	rule(w, s)

	fmt.Fprintf(w, "\n%d tasks remaining\n", r.Progress.Remaining())
	if r.Progress.Done() {
		hint(w, s, "All tasks completed! Run `chief clean` to clean up.")
	}
	return nil
}

func (a *app) list(ctx context.Context) error {
	ws, err := a.registry.Resolve(ctx)
	if err != nil {
		return err
	}

	list, err := tasks.ReadWorkspace(ws.Path)
	if err != nil {
		return err
	}

	return a.render(TaskListReport{
		Name:     ws.Name,
		Path:     tasks.WorkspacePath(ws.Path),
		Progress: tasks.GetStats(list),
		Tasks:    list,
	})
}
