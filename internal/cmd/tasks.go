package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/chief/internal/artifact"
	"github.com/felixgeelhaar/chief/internal/errors"
	"github.com/felixgeelhaar/chief/internal/state"
	"github.com/felixgeelhaar/chief/internal/tasks"
	"github.com/felixgeelhaar/chief/internal/ux"
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "List task sets in .chief/tasks",
	Long: `List task-set files (YYYY-MM-DD-<feature>.tasks.json), newest first, with their
completion counts.

Examples:
  chief tasks
  chief tasks show login
  chief tasks validate login
  chief tasks import ./breakdown.json --name login
  chief tasks schema`,
	Args: cobra.NoArgs,
	RunE: repoCommand(func(a *app, _ context.Context, _ []string) error {
		return a.listArtifacts(artifact.KindTaskSet)
	}),
}

var tasksShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Print the tasks of a task set",
	Args:  cobra.MaximumNArgs(1),
	RunE: repoCommand(func(a *app, _ context.Context, args []string) error {
		return a.showTaskSet(firstArg(args))
	}),
}

var tasksValidateCmd = &cobra.Command{
	Use:   "validate [name]",
	Short: "Check a task set against the task schema",
	Long: `Validate a task set against the task schema. Reading task sets is lenient
(unknown fields are kept, missing fields default); this command is the strict
check. Without a name, the current worktree's tasks.json is validated.`,
	Args: cobra.MaximumNArgs(1),
	RunE: repoCommand(func(a *app, ctx context.Context, args []string) error {
		return a.validateTaskSet(ctx, firstArg(args))
	}),
}

var tasksSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Write .chief/tasks.schema.json",
	Args:  cobra.NoArgs,
	RunE: repoCommand(func(a *app, _ context.Context, _ []string) error {
		return a.writeSchema()
	}),
}

var tasksImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Copy a task-set file into .chief/tasks with today's date",
	Args:  cobra.ExactArgs(1),
	RunE: repoCommand(func(a *app, _ context.Context, args []string) error {
		return a.importTaskSet(args[0], tasksImportName)
	}),
}

var tasksImportName string

func init() {
	tasksImportCmd.Flags().StringVar(&tasksImportName, "name", "", "feature name (default: derived from the file name)")

	tasksCmd.AddCommand(tasksShowCmd, tasksValidateCmd, tasksSchemaCmd, tasksImportCmd)
	rootCmd.AddCommand(tasksCmd)
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

// summarizeTaskSet reads a task-set file for listings; a malformed file is
// reported rather than failing the listing.
func summarizeTaskSet(path string) *taskSummary {
	list, err := tasks.Read(path)
	if err != nil {
		return &taskSummary{Error: err.Error()}
	}
	stats := tasks.GetStats(list)
	return &taskSummary{Completed: stats.Completed, Total: stats.Total}
}

func (a *app) showTaskSet(fragment string) error {
	path, err := a.pickArtifact(artifact.KindTaskSet, fragment, "chief tasks show <name>")
	if err != nil {
		return err
	}

	list, err := tasks.Read(path)
	if err != nil {
		return err
	}

	return a.render(TaskListReport{
		Name:     artifact.BaseName(filepath.Base(path), artifact.KindTaskSet),
		Path:     path,
		Progress: tasks.GetStats(list),
		Tasks:    list,
	})
}

// ValidationResult is the output of `chief tasks validate`.
type ValidationResult struct {
	Path  string `json:"path" yaml:"path"`
	Valid bool   `json:"valid" yaml:"valid"`
	Tasks int    `json:"tasks" yaml:"tasks"`
}

// RenderText implements ux.TextRenderer.
func (r ValidationResult) RenderText(w io.Writer, s ux.Styles) error {
	fmt.Fprintf(w, "%s %s is valid (%d tasks)\n", s.Success.Render(ux.GlyphPass), r.Path, r.Tasks)
	return nil
}

func (a *app) validateTaskSet(ctx context.Context, fragment string) error {
	var path string
	if fragment == "" {
		ws, err := a.registry.Resolve(ctx)
		if err != nil {
			return err
		}
		path = tasks.WorkspacePath(ws.Path)
	} else {
		p, err := a.pickArtifact(artifact.KindTaskSet, fragment, "chief tasks validate <name>")
		if err != nil {
			return err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileReadFailed, fmt.Sprintf("failed to read %s", path), err)
	}
	if err := tasks.Validate(data); err != nil {
		return err
	}

	list, err := tasks.Read(path)
	if err != nil {
		return err
	}
	return a.render(ValidationResult{Path: path, Valid: true, Tasks: len(list)})
}

// FileResult reports a file chief wrote.
type FileResult struct {
	Path string `json:"path" yaml:"path"`
}

// RenderText implements ux.TextRenderer.
func (r FileResult) RenderText(w io.Writer, s ux.Styles) error {
	fmt.Fprintf(w, "%s Wrote %s\n", s.Success.Render(ux.GlyphPass), r.Path)
	return nil
}

func (a *app) writeSchema() error {
	path, err := tasks.WriteSchema(a.paths.ControlDir)
	if err != nil {
		return err
	}
	return a.render(FileResult{Path: path})
}

func (a *app) importTaskSet(source, name string) error {
	// Read treats a missing file as an empty task set; importing one is a mistake
	if _, err := os.Stat(source); err != nil {
		return errors.Wrap(errors.ErrCodeFileReadFailed, fmt.Sprintf("failed to read %s", source), err)
	}
	list, err := tasks.Read(source)
	if err != nil {
		return err
	}

	if name == "" {
		base := filepath.Base(source)
		base = artifact.BaseName(base, artifact.KindTaskSet)
		name = artifact.FeatureName(trimExt(base))

		if a.interactive {
			answer, err := a.prompter.Input("Feature name for the task set:", name)
			if err != nil {
				return err
			}
			if answer = strings.TrimSpace(answer); answer != "" {
				name = answer
			}
		}
	}

	dir, err := state.EnsureDir(a.paths.ControlDir, state.TasksDirName)
	if err != nil {
		return err
	}

	file := artifact.KindTaskSet.FileName(artifact.FormatDate(a.now()), artifact.Slugify(name))
	dest := filepath.Join(dir, file)
	if err := tasks.Write(dest, list); err != nil {
		return err
	}
	a.logger.Info("task set imported", "source", source, "dest", dest, "tasks", len(list))
	return a.render(FileResult{Path: dest})
}

func trimExt(name string) string {
	return name[:len(name)-len(filepath.Ext(name))]
}
