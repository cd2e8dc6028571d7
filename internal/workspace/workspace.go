// Package workspace manages chief's worktree registry: the directories under
// <control>/worktrees, each backed by a git worktree, and the pointer naming
// the current one.
//
// Identity is derived from the directory name alone. Nothing is cached
// between calls; every operation re-reads disk.
package workspace

import (
	"context"
	"time"

	"github.com/felixgeelhaar/chief/internal/tasks"
)

// Workspace describes one directory under <control>/worktrees.
type Workspace struct {
	Name         string       `json:"name" yaml:"name"`
	Path         string       `json:"path" yaml:"path"`
	CreatedAt    time.Time    `json:"createdAt" yaml:"createdAt"`
	TaskProgress *tasks.Stats `json:"taskProgress,omitempty" yaml:"taskProgress,omitempty"`
	Current      bool         `json:"current" yaml:"current"`
}

// VCS is the subset of git the registry drives.
type VCS interface {
	AddWorktree(ctx context.Context, repoRoot, path, branch string) error
	RemoveWorktree(ctx context.Context, repoRoot, path string) error
	PruneWorktrees(ctx context.Context, repoRoot string) error
}

// IsCurrent reports whether pointer names ws. The comparison is exact string
// equality: a pointer written with a different spelling of the same path
// (symlink, trailing slash) does not match.
func IsCurrent(pointer string, ws Workspace) bool {
	return pointer != "" && pointer == ws.Path
}
