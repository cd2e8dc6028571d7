package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/chief/internal/log"
	"github.com/felixgeelhaar/chief/internal/settings"
	"github.com/felixgeelhaar/chief/internal/state"
	"github.com/felixgeelhaar/chief/internal/tasks"
)

// fakeGit satisfies gitClient with plain directory operations.
type fakeGit struct {
	repo     bool
	root     string
	unpushed bool
	pushErr  error
	branch   string

	added   []string
	removed []string
	pushed  []string
}

func (f *fakeGit) AddWorktree(_ context.Context, _, path, branch string) error {
	f.added = append(f.added, branch)
	return os.MkdirAll(path, 0o755)
}

func (f *fakeGit) RemoveWorktree(_ context.Context, _, path string) error {
	f.removed = append(f.removed, path)
	return os.RemoveAll(path)
}

func (f *fakeGit) PruneWorktrees(context.Context, string) error { return nil }

func (f *fakeGit) IsRepo(context.Context, string) bool { return f.repo }

func (f *fakeGit) Root(context.Context, string) (string, error) {
	if !f.repo {
		return "", errors.New("fatal: not a git repository")
	}
	return f.root, nil
}

func (f *fakeGit) Version(context.Context) (string, error) { return "git version 2.43.0", nil }

func (f *fakeGit) CurrentBranch(context.Context, string) (string, error) {
	if f.branch == "" {
		return "", errors.New("fatal: not a git repository")
	}
	return f.branch, nil
}

func (f *fakeGit) HasUnpushedCommits(context.Context, string) bool { return f.unpushed }

func (f *fakeGit) Push(_ context.Context, dir string) error {
	if f.pushErr != nil {
		return f.pushErr
	}
	f.pushed = append(f.pushed, dir)
	return nil
}

// scriptedPrompter answers prompts from fixed values and records questions.
type scriptedPrompter struct {
	confirm bool
	choice  int
	text    string
	err     error

	asked   []string
	options [][]string
}

func (p *scriptedPrompter) Confirm(message string, _ bool) (bool, error) {
	p.asked = append(p.asked, message)
	return p.confirm, p.err
}

func (p *scriptedPrompter) Select(message string, options []string) (string, error) {
	p.asked = append(p.asked, message)
	p.options = append(p.options, options)
	if p.err != nil {
		return "", p.err
	}
	return options[p.choice], nil
}

func (p *scriptedPrompter) Input(message, _ string) (string, error) {
	p.asked = append(p.asked, message)
	return p.text, p.err
}

func (p *scriptedPrompter) Text(message, _ string) (string, error) {
	p.asked = append(p.asked, message)
	return p.text, p.err
}

type testEnv struct {
	app      *app
	out      *bytes.Buffer
	git      *fakeGit
	prompter *scriptedPrompter
	root     string
}

var testNow = time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	root := t.TempDir()
	g := &fakeGit{repo: true, root: root}
	p := &scriptedPrompter{}
	out := &bytes.Buffer{}

	a := &app{
		cc:       &CommandContext{Format: "text", NoColor: true, Settings: settings.Default()},
		out:      out,
		logger:   log.Discard(),
		git:      g,
		prompter: p,
		now:      func() time.Time { return testNow },
	}
	a.useRoot(root)
	_, err := state.EnsureControlDir(root)
	require.NoError(t, err)

	return &testEnv{app: a, out: out, git: g, prompter: p, root: root}
}

func (e *testEnv) format(f string) {
	e.app.cc.Format = f
}

// writeArtifact writes a file into .chief/plans or .chief/tasks.
func (e *testEnv) writeArtifact(t *testing.T, dir, name, content string) string {
	t.Helper()
	full := filepath.Join(e.app.paths.ControlDir, dir)
	require.NoError(t, os.MkdirAll(full, 0o755))
	path := filepath.Join(full, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// addWorktree creates a worktree directory with an optional task set.
func (e *testEnv) addWorktree(t *testing.T, name string, list []tasks.Task) string {
	t.Helper()
	path := filepath.Join(e.app.paths.Worktrees(), name)
	require.NoError(t, os.MkdirAll(filepath.Join(path, tasks.WorkspaceDir), 0o755))
	if list != nil {
		require.NoError(t, tasks.Write(tasks.WorkspacePath(path), list))
	}
	return path
}

func (e *testEnv) setCurrent(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, state.SetCurrentWorktree(e.app.paths.ControlDir, path))
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}
