package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "chief",
	Short: "Manage isolated git worktrees for AI task sets",
	Long: `chief keeps one git worktree per feature under .chief/worktrees, together with
the dated plans and task sets that describe the work, and remembers which
worktree is current.

Examples:
  chief tasks                 list task sets in .chief/tasks
  chief new login             create a worktree for the newest "login" task set
  chief worktrees             list worktrees and their progress
  chief use login-1a2b3c4d    switch the current worktree
  chief list                  show the tasks of the current worktree
  chief clean                 remove the current worktree`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx, which commands use for
// cancellation of git calls and watchers.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// RootCommand exposes the command tree for documentation generators.
func RootCommand() *cobra.Command {
	return rootCmd
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("format", "", "output format: text, json or yaml")
	pf.Bool("no-color", false, "disable colored output")
	pf.String("log-level", "", "log level: debug, info, warn or error")
	pf.String("log-format", "", "log format: text or json")
	pf.String("settings", "", "settings file (default ~/.chief/settings.yaml)")
}
