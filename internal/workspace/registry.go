package workspace

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/felixgeelhaar/chief/internal/errors"
	"github.com/felixgeelhaar/chief/internal/log"
	"github.com/felixgeelhaar/chief/internal/state"
	"github.com/felixgeelhaar/chief/internal/tasks"
)

// Registry enumerates and mutates the workspaces of one repository.
type Registry struct {
	controlDir string
	git        VCS
	logger     *log.Logger
}

// NewRegistry returns a registry rooted at controlDir (<repo>/.chief).
// A nil logger discards output.
func NewRegistry(controlDir string, git VCS, logger *log.Logger) *Registry {
	if logger == nil {
		logger = log.Discard()
	}
	return &Registry{
		controlDir: controlDir,
		git:        git,
		logger:     logger.With("component", "workspace"),
	}
}

// ControlDir returns the control directory the registry operates on.
func (r *Registry) ControlDir() string {
	return r.controlDir
}

// RepoRoot returns the repository root, the parent of the control directory.
func (r *Registry) RepoRoot() string {
	return filepath.Dir(r.controlDir)
}

// WorktreesDir returns <control>/worktrees.
func (r *Registry) WorktreesDir() string {
	return filepath.Join(r.controlDir, state.WorktreesDirName)
}

// List returns every workspace sorted by name. Task progress is best effort:
// a workspace whose task set is missing, empty or malformed is listed
// without progress.
func (r *Registry) List(ctx context.Context) ([]Workspace, error) {
	entries, err := os.ReadDir(r.WorktreesDir())
	if err != nil {
		if os.IsNotExist(err) {
			return []Workspace{}, nil
		}
		return nil, errors.Wrap(errors.ErrCodeFileReadFailed, "failed to read worktrees directory", err)
	}

	pointer, _, err := state.CurrentWorktree(r.controlDir)
	if err != nil {
		return nil, err
	}

	workspaces := make([]Workspace, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !entry.IsDir() {
			continue
		}

		ws, err := r.load(entry.Name())
		if err != nil {
			r.logger.DebugContext(ctx, "skipping worktree", "name", entry.Name(), "error", err)
			continue
		}
		ws.Current = IsCurrent(pointer, ws)
		workspaces = append(workspaces, ws)
	}

	sort.Slice(workspaces, func(i, j int) bool {
		return workspaces[i].Name < workspaces[j].Name
	})
	return workspaces, nil
}

// load builds the Workspace for a directory name, including progress.
func (r *Registry) load(name string) (Workspace, error) {
	path := filepath.Join(r.WorktreesDir(), name)
	info, err := os.Stat(path)
	if err != nil {
		return Workspace{}, err
	}

	ws := Workspace{
		Name:      name,
		Path:      path,
		CreatedAt: createdAt(info),
	}

	list, err := tasks.ReadWorkspace(path)
	switch {
	case err != nil:
		r.logger.Debug("task progress unavailable", "worktree", name, "error", err)
	case len(list) > 0:
		stats := tasks.GetStats(list)
		ws.TaskProgress = &stats
	}
	return ws, nil
}

// Current returns the stored pointer without checking that it still exists.
func (r *Registry) Current(ctx context.Context) (string, bool, error) {
	return state.CurrentWorktree(r.controlDir)
}

// Resolve returns the current workspace. A pointer to a directory that no
// longer exists is treated the same as no pointer.
func (r *Registry) Resolve(ctx context.Context) (Workspace, error) {
	pointer, ok, err := r.Current(ctx)
	if err != nil {
		return Workspace{}, err
	}
	if !ok {
		return Workspace{}, errors.NewNoCurrentWorktreeError()
	}

	info, err := os.Stat(pointer)
	if err != nil || !info.IsDir() {
		r.logger.DebugContext(ctx, "current worktree pointer is dangling", "path", pointer)
		return Workspace{}, errors.NewNoCurrentWorktreeError()
	}

	ws, err := r.load(filepath.Base(pointer))
	if err != nil || ws.Path != pointer {
		// pointer lives outside the worktrees directory
		ws = Workspace{Name: filepath.Base(pointer), Path: pointer, CreatedAt: createdAt(info)}
		if list, err := tasks.ReadWorkspace(pointer); err == nil && len(list) > 0 {
			stats := tasks.GetStats(list)
			ws.TaskProgress = &stats
		}
	}
	ws.Current = true
	return ws, nil
}

// Lookup returns the workspace with the given directory name.
func (r *Registry) Lookup(name string) (Workspace, error) {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return Workspace{}, errors.NewWorkspaceNotFoundError(name)
	}

	ws, err := r.load(name)
	if err != nil {
		return Workspace{}, errors.NewWorkspaceNotFoundError(name)
	}
	if pointer, ok, err := state.CurrentWorktree(r.controlDir); err == nil && ok {
		ws.Current = IsCurrent(pointer, ws)
	}
	return ws, nil
}

// Use makes the named workspace current.
func (r *Registry) Use(name string) (Workspace, error) {
	ws, err := r.Lookup(name)
	if err != nil {
		return Workspace{}, err
	}
	if err := state.SetCurrentWorktree(r.controlDir, ws.Path); err != nil {
		return Workspace{}, err
	}
	ws.Current = true
	r.logger.Info("current worktree set", "name", ws.Name)
	return ws, nil
}

// Remove deletes a workspace. Git is asked to drop the worktree first; if it
// refuses, the directory is removed anyway. The pointer is cleared only when
// it names ws exactly.
func (r *Registry) Remove(ctx context.Context, ws Workspace) error {
	if err := r.discard(ctx, ws.Path); err != nil {
		return err
	}

	pointer, ok, err := state.CurrentWorktree(r.controlDir)
	if err != nil {
		return err
	}
	if ok && IsCurrent(pointer, ws) {
		if err := state.ClearCurrentWorktree(r.controlDir); err != nil {
			return err
		}
	}

	r.logger.InfoContext(ctx, "worktree removed", "name", ws.Name)
	return nil
}

// discard removes a worktree: git first (best-effort), then the directory,
// then stale git bookkeeping.
func (r *Registry) discard(ctx context.Context, path string) error {
	if r.git != nil {
		if err := r.git.RemoveWorktree(ctx, r.RepoRoot(), path); err != nil {
			r.logger.DebugContext(ctx, "git worktree remove failed", "path", path, "error", err)
		}
	}

	if err := os.RemoveAll(path); err != nil {
		return errors.Wrap(errors.ErrCodeDirectoryFailed, fmt.Sprintf("failed to remove %s", path), err)
	}

	if r.git != nil {
		if err := r.git.PruneWorktrees(ctx, r.RepoRoot()); err != nil {
			r.logger.DebugContext(ctx, "git worktree prune failed", "error", err)
		}
	}
	return nil
}
