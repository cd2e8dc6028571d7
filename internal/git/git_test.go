package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// initRepo creates a repository with one commit, skipping when git is absent.
func initRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	dir := t.TempDir()
	ctx := context.Background()
	g := New()
	for _, args := range [][]string{
		{"init", "-q", "-b", "main"},
		{"config", "user.email", "test@example.com"},
		{"config", "user.name", "Test"},
		{"config", "commit.gpgsign", "false"},
	} {
		_, err := g.run(ctx, dir, args...)
		require.NoError(t, err)
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("hi\n"), 0o644))
	_, err := g.run(ctx, dir, "add", ".")
	require.NoError(t, err)
	_, err = g.run(ctx, dir, "commit", "-q", "-m", "init")
	require.NoError(t, err)

	// resolve symlinked temp dirs (macOS /var -> /private/var)
	resolved, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	return resolved
}

func TestIsRepoAndRoot(t *testing.T) {
	repo := initRepo(t)
	ctx := context.Background()
	g := New()

	assert.True(t, g.IsRepo(ctx, repo))

	sub := filepath.Join(repo, "sub")
	require.NoError(t, os.Mkdir(sub, 0o755))
	root, err := g.Root(ctx, sub)
	require.NoError(t, err)
	assert.Equal(t, repo, root)

	assert.False(t, g.IsRepo(ctx, t.TempDir()))
}

func TestBranchExists(t *testing.T) {
	repo := initRepo(t)
	ctx := context.Background()
	g := New()

	assert.True(t, g.BranchExists(ctx, repo, "main"))
	assert.False(t, g.BranchExists(ctx, repo, "feature/x"))

	branch, err := g.CurrentBranch(ctx, repo)
	require.NoError(t, err)
	assert.Equal(t, "main", branch)
}

func TestWorktreeLifecycle(t *testing.T) {
	repo := initRepo(t)
	ctx := context.Background()
	g := New()

	wt := filepath.Join(repo, ".chief", "worktrees", "login-0001")
	require.NoError(t, g.AddWorktree(ctx, repo, wt, "chief/login"))
	assert.FileExists(t, filepath.Join(wt, "README.md"))
	assert.True(t, g.BranchExists(ctx, repo, "chief/login"))

	branch, err := g.CurrentBranch(ctx, wt)
	require.NoError(t, err)
	assert.Equal(t, "chief/login", branch)

	require.NoError(t, g.RemoveWorktree(ctx, repo, wt))
	assert.NoDirExists(t, wt)

	// second removal fails: the worktree is already gone
	assert.Error(t, g.RemoveWorktree(ctx, repo, wt))
	assert.NoError(t, g.PruneWorktrees(ctx, repo))

	// re-adding reuses the existing branch
	require.NoError(t, g.AddWorktree(ctx, repo, wt, "chief/login"))
	assert.DirExists(t, wt)
}

func TestHasUnpushedCommitsWithoutUpstream(t *testing.T) {
	repo := initRepo(t)
	assert.True(t, New().HasUnpushedCommits(context.Background(), repo))
}

func TestRunErrorIncludesOutput(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	_, err := New().run(context.Background(), t.TempDir(), "rev-parse", "--show-toplevel")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "git rev-parse --show-toplevel")
}

func TestMissingBinary(t *testing.T) {
	g := &Git{Binary: filepath.Join(t.TempDir(), "no-git")}
	assert.False(t, g.IsRepo(context.Background(), t.TempDir()))
	_, err := g.Version(context.Background())
	assert.Error(t, err)
}
