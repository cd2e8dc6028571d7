package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/chief/internal/artifact"
	"github.com/felixgeelhaar/chief/internal/errors"
	"github.com/felixgeelhaar/chief/internal/ux"
)

var plansCmd = &cobra.Command{
	Use:   "plans",
	Short: "List plans in .chief/plans",
	Long: `List plan files (YYYY-MM-DD-<feature>.md), newest first.

Examples:
  chief plans
  chief plans show login`,
	Args: cobra.NoArgs,
	RunE: repoCommand(func(a *app, _ context.Context, _ []string) error {
		return a.listArtifacts(artifact.KindPlan)
	}),
}

var plansShowCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Print a plan",
	Args:  cobra.MaximumNArgs(1),
	RunE: repoCommand(func(a *app, _ context.Context, args []string) error {
		fragment := ""
		if len(args) > 0 {
			fragment = args[0]
		}
		return a.showPlan(fragment)
	}),
}

func init() {
	plansCmd.AddCommand(plansShowCmd)
	rootCmd.AddCommand(plansCmd)
}

// ArtifactEntry describes one dated artifact file.
type ArtifactEntry struct {
	File     string       `json:"file" yaml:"file"`
	Feature  string       `json:"feature" yaml:"feature"`
	Date     string       `json:"date" yaml:"date"`
	Progress *taskSummary `json:"progress,omitempty" yaml:"progress,omitempty"`
}

// taskSummary is the progress of a task-set file, or why it is unreadable.
type taskSummary struct {
	Completed int    `json:"completed" yaml:"completed"`
	Total     int    `json:"total" yaml:"total"`
	Error     string `json:"error,omitempty" yaml:"error,omitempty"`
}

// ArtifactReport is the output of `chief plans` and `chief tasks`.
type ArtifactReport struct {
	Kind  string          `json:"kind" yaml:"kind"`
	Dir   string          `json:"dir" yaml:"dir"`
	Files []ArtifactEntry `json:"files" yaml:"files"`

	listCommand string
}

// RenderText implements ux.TextRenderer.
func (r ArtifactReport) RenderText(w io.Writer, s ux.Styles) error {
	if len(r.Files) == 0 {
		fmt.Fprintf(w, "No %ss found in %s.\n", r.Kind, r.Dir)
		return nil
	}

	fmt.Fprintln(w, s.Title.Render(fmt.Sprintf("%d %s(s) in %s:", len(r.Files), r.Kind, r.Dir)))
	fmt.Fprintln(w)
	for _, f := range r.Files {
		line := fmt.Sprintf("  %s  %s", s.Muted.Render(f.Date), f.Feature)
		if p := f.Progress; p != nil {
			if p.Error != "" {
				line += "  " + s.Error.Render("unreadable")
			} else {
				line += fmt.Sprintf("  %d/%d", p.Completed, p.Total)
			}
		}
		fmt.Fprintln(w, line)
		fmt.Fprintf(w, "    %s\n", s.Muted.Render(f.File))
	}
	if r.listCommand != "" {
		hint(w, s, "Use `%s show <name>` to inspect one.", r.listCommand)
	}
	return nil
}

func (a *app) listArtifacts(kind artifact.Kind) error {
	dir := a.artifactDir(kind)
	files, err := artifact.List(kind, dir)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileReadFailed, fmt.Sprintf("failed to list %s", dir), err)
	}

	report := ArtifactReport{
		Kind:        kind.String(),
		Dir:         dir,
		Files:       make([]ArtifactEntry, 0, len(files)),
		listCommand: kind.ListCommand(),
	}
	for _, file := range files {
		base := artifact.BaseName(file, kind)
		entry := ArtifactEntry{
			File:    file,
			Feature: artifact.FeatureName(base),
			Date:    base[:len("2006-01-02")],
		}
		if kind == artifact.KindTaskSet {
			entry.Progress = summarizeTaskSet(filepath.Join(dir, file))
		}
		report.Files = append(report.Files, entry)
	}

	return a.render(report)
}

// PlanDocument is the output of `chief plans show`.
type PlanDocument struct {
	File    string `json:"file" yaml:"file"`
	Content string `json:"content" yaml:"content"`
}

// RenderText implements ux.TextRenderer.
func (d PlanDocument) RenderText(w io.Writer, s ux.Styles) error {
	fmt.Fprintln(w, s.Muted.Render(d.File))
	fmt.Fprintln(w)
	_, err := io.WriteString(w, d.Content)
	return err
}

func (a *app) showPlan(fragment string) error {
	path, err := a.pickArtifact(artifact.KindPlan, fragment, "chief plans show <name>")
	if err != nil {
		return err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileReadFailed, fmt.Sprintf("failed to read %s", path), err)
	}
	return a.render(PlanDocument{File: filepath.Base(path), Content: string(data)})
}
