package health

import (
	"context"
	"os"

	"github.com/felixgeelhaar/chief/internal/state"
	"github.com/felixgeelhaar/chief/internal/tasks"
)

// RepoDetector reports whether a directory is inside a git repository.
type RepoDetector interface {
	IsRepo(ctx context.Context, dir string) bool
}

// RepoChecker verifies the working directory is inside a repository.
type RepoChecker struct {
	git RepoDetector
	dir string
}

// NewRepoChecker creates a checker for dir.
func NewRepoChecker(git RepoDetector, dir string) *RepoChecker {
	return &RepoChecker{git: git, dir: dir}
}

// Name returns the name of this health check.
func (c *RepoChecker) Name() string {
	return "git-repository"
}

// Check reports unhealthy outside a repository.
func (c *RepoChecker) Check(ctx context.Context) *Result {
	if !c.git.IsRepo(ctx, c.dir) {
		return Unhealthy("not inside a git repository").
			WithDetail("dir", c.dir).
			WithDetail("suggestion", "Run chief from within a git repository")
	}
	return Healthy("inside a git repository").WithDetail("dir", c.dir)
}

// ControlDirChecker inspects the .chief directory.
type ControlDirChecker struct {
	paths state.Paths
}

// NewControlDirChecker creates a checker for the given control directory.
func NewControlDirChecker(paths state.Paths) *ControlDirChecker {
	return &ControlDirChecker{paths: paths}
}

// Name returns the name of this health check.
func (c *ControlDirChecker) Name() string {
	return "control-dir"
}

// Check reports a missing control directory as degraded, since chief
// creates it on demand, and a malformed config.json as unhealthy.
func (c *ControlDirChecker) Check(ctx context.Context) *Result {
	info, err := os.Stat(c.paths.ControlDir)
	if err != nil {
		return Degraded("control directory does not exist yet").
			WithDetail("path", c.paths.ControlDir).
			WithDetail("suggestion", "It is created by 'chief new' or 'chief verify set'")
	}
	if !info.IsDir() {
		return Unhealthy("control directory path is not a directory").
			WithDetail("path", c.paths.ControlDir)
	}

	if _, err := state.GetConfig(c.paths.ControlDir); err != nil {
		return Unhealthy("config.json is malformed").
			WithDetail("path", c.paths.Config()).
			WithDetail("error", err.Error())
	}

	return Healthy("control directory is readable").
		WithDetail("path", c.paths.ControlDir)
}

// PointerChecker verifies the current-worktree pointer and its task set.
type PointerChecker struct {
	paths state.Paths
}

// NewPointerChecker creates a checker for the current-worktree pointer.
func NewPointerChecker(paths state.Paths) *PointerChecker {
	return &PointerChecker{paths: paths}
}

// Name returns the name of this health check.
func (c *PointerChecker) Name() string {
	return "current-worktree"
}

// Check reports a dangling pointer or an unreadable task set as degraded.
func (c *PointerChecker) Check(ctx context.Context) *Result {
	pointer, ok, err := state.CurrentWorktree(c.paths.ControlDir)
	if err != nil {
		return Unhealthy("cannot read current worktree").
			WithDetail("error", err.Error())
	}
	if !ok {
		return Healthy("no current worktree set")
	}

	if info, err := os.Stat(pointer); err != nil || !info.IsDir() {
		return Degraded("current worktree no longer exists").
			WithDetail("path", pointer).
			WithDetail("suggestion", "Run 'chief use <name>' to select another worktree")
	}

	list, err := tasks.ReadWorkspace(pointer)
	if err != nil {
		return Degraded("current worktree has an unreadable task set").
			WithDetail("path", tasks.WorkspacePath(pointer)).
			WithDetail("error", err.Error())
	}

	stats := tasks.GetStats(list)
	return Healthy("current worktree is valid").
		WithDetail("path", pointer).
		WithDetail("completed", stats.Completed).
		WithDetail("total", stats.Total)
}
