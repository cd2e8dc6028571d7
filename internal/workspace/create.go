package workspace

import (
	"context"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/zeebo/blake3"

	"github.com/felixgeelhaar/chief/internal/artifact"
	"github.com/felixgeelhaar/chief/internal/errors"
	"github.com/felixgeelhaar/chief/internal/state"
	"github.com/felixgeelhaar/chief/internal/tasks"
)

// hashLength is the number of hex characters appended to workspace names.
const hashLength = 8

// CreateOptions describes a new workspace.
type CreateOptions struct {
	// Slug names the feature; it is slugified again before use.
	Slug string
	// Branch is checked out in the worktree, created from HEAD if missing.
	Branch string
	// TaskSet is the task-set file copied into the workspace. Optional.
	TaskSet string
	// Now overrides the creation instant used for the name hash.
	Now func() time.Time
}

// NewName returns "<slug>-<8 hex>". The suffix is a blake3 hash of a random
// UUID and the creation instant, so two calls never collide in practice.
func NewName(slug string, now time.Time) string {
	h := blake3.New()
	_, _ = h.Write([]byte(uuid.NewString()))
	_, _ = h.Write([]byte(now.UTC().Format(time.RFC3339Nano)))
	sum := hex.EncodeToString(h.Sum(nil))
	return fmt.Sprintf("%s-%s", artifact.Slugify(slug), sum[:hashLength])
}

// Create adds a git worktree under <control>/worktrees, seeds it with the
// chosen task set and the task schema, and makes it current.
func (r *Registry) Create(ctx context.Context, opts CreateOptions) (Workspace, error) {
	if r.git == nil {
		return Workspace{}, errors.New(errors.ErrCodeGitCommandFailed, "no git collaborator configured")
	}
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}

	var seed []tasks.Task
	if opts.TaskSet != "" {
		list, err := tasks.Read(opts.TaskSet)
		if err != nil {
			return Workspace{}, err
		}
		seed = list
	}

	if _, err := state.EnsureDir(r.controlDir, state.WorktreesDirName); err != nil {
		return Workspace{}, err
	}

	name := NewName(opts.Slug, now())
	path := filepath.Join(r.WorktreesDir(), name)
	branch := opts.Branch
	if branch == "" {
		branch = name
	}

	r.logger.InfoContext(ctx, "creating worktree", "name", name, "branch", branch)
	if err := r.git.AddWorktree(ctx, r.RepoRoot(), path, branch); err != nil {
		return Workspace{}, errors.Wrap(errors.ErrCodeGitCommandFailed, "failed to create worktree", err)
	}

	if err := r.seed(path, seed); err != nil {
		if derr := r.discard(ctx, path); derr != nil {
			r.logger.WarnContext(ctx, "failed to roll back worktree", "path", path, "error", derr)
		}
		return Workspace{}, err
	}

	if err := state.SetCurrentWorktree(r.controlDir, path); err != nil {
		if derr := r.discard(ctx, path); derr != nil {
			r.logger.WarnContext(ctx, "failed to roll back worktree", "path", path, "error", derr)
		}
		return Workspace{}, err
	}

	ws, err := r.load(name)
	if err != nil {
		return Workspace{}, err
	}
	ws.Current = true
	return ws, nil
}

// seed writes the task set and the schema into <path>/.chief.
func (r *Registry) seed(path string, list []tasks.Task) error {
	wsControl, err := state.EnsureControlDir(path)
	if err != nil {
		return err
	}
	if list != nil {
		if err := tasks.Write(tasks.WorkspacePath(path), list); err != nil {
			return err
		}
	}
	_, err = tasks.WriteSchema(wsControl)
	return err
}
