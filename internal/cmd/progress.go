package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/chief/internal/tasks"
	"github.com/felixgeelhaar/chief/internal/ux"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show task progress of the current worktree",
	Long: `Print how many tasks of the current worktree pass. With --watch, chief keeps
running and prints a new line every time the worktree's tasks.json changes,
until interrupted.

Examples:
  chief progress
  chief progress --watch
  chief progress --format json`,
	Args: cobra.NoArgs,
	RunE: repoCommand(func(a *app, ctx context.Context, _ []string) error {
		return a.progress(ctx, progressWatch)
	}),
}

var progressWatch bool

func init() {
	progressCmd.Flags().BoolVarP(&progressWatch, "watch", "w", false, "keep watching for changes")

	rootCmd.AddCommand(progressCmd)
}

// ProgressReport is the output of `chief progress`.
type ProgressReport struct {
	Worktree  string `json:"worktree" yaml:"worktree"`
	Completed int    `json:"completed" yaml:"completed"`
	Total     int    `json:"total" yaml:"total"`
	Remaining int    `json:"remaining" yaml:"remaining"`
	Done      bool   `json:"done" yaml:"done"`
}

func newProgressReport(name string, stats tasks.Stats) ProgressReport {
	return ProgressReport{
		Worktree:  name,
		Completed: stats.Completed,
		Total:     stats.Total,
		Remaining: stats.Remaining(),
		Done:      stats.Done(),
	}
}

// RenderText implements ux.TextRenderer.
func (r ProgressReport) RenderText(w io.Writer, s ux.Styles) error {
	status := s.Pending.Render(ux.GlyphPending)
	if r.Done {
		status = s.Success.Render(ux.GlyphPass)
	}
	_, err := fmt.Fprintf(w, "%s %s: %s\n", status, r.Worktree, progressLine(tasks.Stats{Completed: r.Completed, Total: r.Total}))
	return err
}

func (a *app) progress(ctx context.Context, watch bool) error {
	ws, err := a.registry.Resolve(ctx)
	if err != nil {
		return err
	}

	if !watch {
		list, err := tasks.ReadWorkspace(ws.Path)
		if err != nil {
			return err
		}
		return a.render(newProgressReport(ws.Name, tasks.GetStats(list)))
	}

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var renderErr error
	last := tasks.Stats{Completed: -1}
	err = a.registry.Watch(watchCtx, ws, func(stats tasks.Stats) {
		if stats == last || renderErr != nil {
			return
		}
		last = stats
		if renderErr = a.render(newProgressReport(ws.Name, stats)); renderErr != nil {
			cancel()
		}
	})
	if err != nil {
		return err
	}
	return renderErr
}
