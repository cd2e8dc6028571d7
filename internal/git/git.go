// Package git wraps the git commands chief needs. Every operation shells out
// to the git binary and either succeeds or returns an error carrying git's
// combined output.
package git

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Git runs git commands. The zero value uses "git" from PATH.
type Git struct {
	// Binary overrides the git executable.
	Binary string
}

// New returns a Git using the git binary from PATH.
func New() *Git {
	return &Git{}
}

func (g *Git) binary() string {
	if g == nil || g.Binary == "" {
		return "git"
	}
	return g.Binary
}

// run executes git in dir and returns trimmed stdout.
func (g *Git) run(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, g.binary(), args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}
	return strings.TrimSpace(string(out)), nil
}

// IsRepo reports whether dir is inside a git working tree.
func (g *Git) IsRepo(ctx context.Context, dir string) bool {
	out, err := g.run(ctx, dir, "rev-parse", "--is-inside-work-tree")
	return err == nil && out == "true"
}

// Root returns the top-level directory of the repository containing dir.
func (g *Git) Root(ctx context.Context, dir string) (string, error) {
	return g.run(ctx, dir, "rev-parse", "--show-toplevel")
}

// BranchExists reports whether a local branch exists.
func (g *Git) BranchExists(ctx context.Context, dir, branch string) bool {
	_, err := g.run(ctx, dir, "show-ref", "--verify", "--quiet", "refs/heads/"+branch)
	return err == nil
}

// AddWorktree creates a worktree at path for branch, creating the branch
// from HEAD when it does not exist.
func (g *Git) AddWorktree(ctx context.Context, repoRoot, path, branch string) error {
	if g.BranchExists(ctx, repoRoot, branch) {
		_, err := g.run(ctx, repoRoot, "worktree", "add", path, branch)
		return err
	}
	_, err := g.run(ctx, repoRoot, "worktree", "add", "-b", branch, path)
	return err
}

// RemoveWorktree removes the worktree at path, discarding local changes.
func (g *Git) RemoveWorktree(ctx context.Context, repoRoot, path string) error {
	_, err := g.run(ctx, repoRoot, "worktree", "remove", "--force", path)
	return err
}

// PruneWorktrees drops administrative entries for worktrees whose
// directories are gone.
func (g *Git) PruneWorktrees(ctx context.Context, repoRoot string) error {
	_, err := g.run(ctx, repoRoot, "worktree", "prune")
	return err
}

// CurrentBranch returns the branch checked out in dir.
func (g *Git) CurrentBranch(ctx context.Context, dir string) (string, error) {
	return g.run(ctx, dir, "rev-parse", "--abbrev-ref", "HEAD")
}

// Push pushes the current branch and sets its upstream.
func (g *Git) Push(ctx context.Context, dir string) error {
	_, err := g.run(ctx, dir, "push", "-u", "origin", "HEAD")
	return err
}

// HasUnpushedCommits reports whether the current branch has commits its
// upstream lacks. A branch without upstream counts as unpushed, and so does
// any failure to count, since attempting a push is the safer default.
func (g *Git) HasUnpushedCommits(ctx context.Context, dir string) bool {
	if _, err := g.run(ctx, dir, "rev-parse", "--verify", "@{u}"); err != nil {
		return true
	}

	out, err := g.run(ctx, dir, "rev-list", "@{u}..HEAD", "--count")
	if err != nil {
		return true
	}
	count, err := strconv.Atoi(out)
	if err != nil {
		return true
	}
	return count > 0
}

// Version returns the output of `git --version`.
func (g *Git) Version(ctx context.Context) (string, error) {
	return g.run(ctx, "", "--version")
}
