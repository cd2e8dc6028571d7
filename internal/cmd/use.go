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

var useCmd = &cobra.Command{
	Use:   "use [name]",
	Short: "Switch the current worktree",
	Long: `Make the named worktree current. Commands that act on "the current worktree"
(list, progress, clean) use it from then on.

Without a name, chief offers a selector when running in a terminal.

Examples:
  chief use login-1a2b3c4d`,
	Args: cobra.MaximumNArgs(1),
	RunE: repoCommand(func(a *app, ctx context.Context, args []string) error {
		name := ""
		if len(args) > 0 {
			name = args[0]
		}
		return a.use(ctx, name)
	}),
}

func init() {
	rootCmd.AddCommand(useCmd)
}

// UseResult is the output of `chief use`.
type UseResult struct {
	Worktree workspace.Workspace `json:"worktree" yaml:"worktree"`
}

// RenderText implements ux.TextRenderer.
func (r UseResult) RenderText(w io.Writer, s ux.Styles) error {
	fmt.Fprintf(w, "%s Switched to worktree: %s\n", s.Success.Render(ux.GlyphPass), r.Worktree.Name)
	fmt.Fprintf(w, "  Path: %s\n", r.Worktree.Path)
	hint(w, s, "Run `chief list` to see its tasks.")
	return nil
}

func (a *app) use(ctx context.Context, name string) error {
	if name == "" {
		selected, err := a.selectWorktree(ctx, "chief use <name>")
		if err != nil {
			return err
		}
		name = selected
	}

	ws, err := a.registry.Use(name)
	if err != nil {
		return err
	}
	return a.render(UseResult{Worktree: ws})
}

// selectWorktree asks the user to pick a worktree by name.
func (a *app) selectWorktree(ctx context.Context, usage string) (string, error) {
	if !a.interactive {
		return "", errors.NewMissingArgumentError("name", usage)
	}

	list, err := a.registry.List(ctx)
	if err != nil {
		return "", err
	}
	if len(list) == 0 {
		return "", errors.NewWorkspaceNotFoundError("(none)").
			WithSuggestion("Run 'chief new <task-set>' to create one")
	}

	names := make([]string, len(list))
	for i, ws := range list {
		names[i] = ws.Name
	}
	return a.prompter.Select("Select a worktree:", names)
}
