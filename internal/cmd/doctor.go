package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/chief/internal/health"
	"github.com/felixgeelhaar/chief/internal/log"
	"github.com/felixgeelhaar/chief/internal/ux"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that chief can run here",
	Long: `Run diagnostics for chief in the current directory.

Checks include:
  - git is installed and recent enough for worktrees
  - the working directory is inside a git repository
  - the .chief control directory and config.json are readable
  - the current-worktree pointer names an existing worktree

Examples:
  chief doctor
  chief doctor --format json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		return a.doctor(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

// DoctorReport is the output of `chief doctor`.
type DoctorReport struct {
	health.Report `yaml:",inline"`
}

// RenderText implements ux.TextRenderer.
func (r DoctorReport) RenderText(w io.Writer, s ux.Styles) error {
	fmt.Fprintln(w, s.Title.Render("chief doctor"))
	fmt.Fprintln(w)

	for _, c := range r.Checks {
		var mark string
		switch c.Result.Status {
		case health.StatusHealthy:
			mark = s.Success.Render(ux.GlyphPass)
		case health.StatusDegraded:
			mark = s.Warning.Render("!")
		default:
			mark = s.Error.Render("✗")
		}
		fmt.Fprintf(w, "%s %-18s %s\n", mark, c.Name, c.Result.Message)

		keys := make([]string, 0, len(c.Result.Details))
		for k := range c.Result.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(w, "    %s\n", s.Muted.Render(fmt.Sprintf("%s: %v", k, c.Result.Details[k])))
		}
	}

	fmt.Fprintf(w, "\nOverall: %s\n", r.Status)
	return nil
}

func (a *app) doctor(ctx context.Context) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}

	manager := health.NewManager()
	manager.AddChecker(health.NewGitChecker(a.git))
	manager.AddChecker(health.NewRepoChecker(a.git, cwd))

	if a.git.IsRepo(ctx, cwd) {
		if root, err := a.git.Root(ctx, cwd); err == nil {
			a.useRoot(root)
			manager.AddChecker(health.NewControlDirChecker(a.paths))
			manager.AddChecker(health.NewPointerChecker(a.paths))
		}
	}

	report := manager.Check(ctx)
	if a.logger.Enabled(ctx, log.LevelDebug) {
		checkLog := a.logger.WithGroup("check")
		for _, c := range report.Checks {
			checkLog.DebugContext(ctx, "health check", "name", c.Name, "status", c.Result.Status, "latency", c.Result.Latency)
		}
	}

	if err := a.render(DoctorReport{Report: report}); err != nil {
		return err
	}
	if report.Status == health.StatusUnhealthy {
		return fmt.Errorf("health checks failed")
	}
	return nil
}
