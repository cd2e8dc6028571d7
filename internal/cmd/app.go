package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/chief/internal/artifact"
	"github.com/felixgeelhaar/chief/internal/errors"
	"github.com/felixgeelhaar/chief/internal/git"
	"github.com/felixgeelhaar/chief/internal/log"
	"github.com/felixgeelhaar/chief/internal/state"
	"github.com/felixgeelhaar/chief/internal/ux"
	"github.com/felixgeelhaar/chief/internal/workspace"
)

// gitClient is the git surface commands use.
type gitClient interface {
	workspace.VCS
	IsRepo(ctx context.Context, dir string) bool
	Root(ctx context.Context, dir string) (string, error)
	Version(ctx context.Context) (string, error)
	CurrentBranch(ctx context.Context, dir string) (string, error)
	HasUnpushedCommits(ctx context.Context, dir string) bool
	Push(ctx context.Context, dir string) error
}

// app carries the collaborators of a single invocation.
type app struct {
	cc     *CommandContext
	out    io.Writer
	logger *log.Logger

	git         gitClient
	prompter    ux.Prompter
	interactive bool
	now         func() time.Time

	// set by openRepo
	paths    state.Paths
	registry *workspace.Registry
}

func newApp(cmd *cobra.Command) (*app, error) {
	cc, err := NewCommandContext(cmd)
	if err != nil {
		return nil, fmt.Errorf("failed to create command context: %w", err)
	}

	cfg := log.ConfigFromStrings(cc.LogLevel, cc.LogFormat)
	cfg.Output = log.NewOutput(cmd.ErrOrStderr())
	logger := log.New(cfg).With("command", cmd.Name())
	log.SetDefaultLogger(logger)

	return &app{
		cc:          cc,
		out:         cmd.OutOrStdout(),
		logger:      logger,
		git:         git.New(),
		prompter:    ux.HuhPrompter{},
		interactive: ux.ShouldPrompt(),
		now:         time.Now,
	}, nil
}

// openRepo locates the repository containing the working directory and
// makes sure its control directory exists.
func (a *app) openRepo(ctx context.Context) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	if !a.git.IsRepo(ctx, cwd) {
		return errors.NewNotGitRepoError()
	}

	root, err := a.git.Root(ctx, cwd)
	if err != nil {
		return errors.Wrap(errors.ErrCodeGitCommandFailed, "failed to find repository root", err)
	}

	a.useRoot(root)
	if _, err := state.EnsureControlDir(a.paths.RepoRoot()); err != nil {
		return err
	}
	a.logger.DebugContext(ctx, "repository opened", "root", root, "control_dir", a.paths.ControlDir)
	return nil
}

func (a *app) useRoot(root string) {
	a.paths = state.NewPaths(root)
	a.registry = workspace.NewRegistry(a.paths.ControlDir, a.git, a.logger)
}

// repoCommand adapts an app method to cobra's RunE, opening the repository
// first.
func repoCommand(run func(a *app, ctx context.Context, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		if err := a.openRepo(cmd.Context()); err != nil {
			return err
		}
		return run(a, cmd.Context(), args)
	}
}

// render writes v in the selected output format.
func (a *app) render(v interface{}) error {
	f, err := ux.NewFormatter(a.cc.Format, &ux.FormatterOptions{Writer: a.out, NoColor: a.cc.NoColor})
	if err != nil {
		return err
	}
	return f.Format(v)
}

func (a *app) styles() ux.Styles {
	return ux.NewStyles(a.cc.NoColor)
}

// textOutput reports whether output is for humans, so prompts and hints
// are appropriate.
func (a *app) textOutput() bool {
	return a.cc.Format == "" || a.cc.Format == "text"
}

// artifactDir returns <control>/plans or <control>/tasks.
func (a *app) artifactDir(kind artifact.Kind) string {
	return filepath.Join(a.paths.ControlDir, kind.Dir())
}

// pickArtifact resolves fragment to an artifact path. With no fragment the
// user chooses interactively; without a terminal that is a usage error.
func (a *app) pickArtifact(kind artifact.Kind, fragment, usage string) (string, error) {
	dir := a.artifactDir(kind)
	files, err := artifact.List(kind, dir)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeFileReadFailed, fmt.Sprintf("failed to list %s", dir), err)
	}

	if fragment == "" {
		if len(files) == 0 {
			return "", errors.New(errors.ErrCodeArtifactNotFound, fmt.Sprintf("no %ss found in %s", kind, dir))
		}
		if !a.interactive {
			return "", errors.NewMissingArgumentError(kind.String(), usage)
		}
		choice, err := a.prompter.Select(fmt.Sprintf("Select a %s:", kind), files)
		if err != nil {
			return "", err
		}
		return filepath.Join(dir, choice), nil
	}

	name, ok := artifact.Resolve(kind, files, fragment)
	if !ok {
		return "", errors.NewArtifactNotFoundError(kind.String(), fragment, kind.ListCommand())
	}
	return filepath.Join(dir, name), nil
}
