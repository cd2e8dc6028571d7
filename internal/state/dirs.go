// Package state persists chief's repository-level state inside the control
// directory: the current-worktree pointer and the verification steps.
//
// Nothing here is cached; every call reads or writes disk. Writes replace
// whole files, so an interrupted process leaves the last completed write.
package state

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/felixgeelhaar/chief/internal/errors"
)

const (
	// ControlDirName is the control directory created at the repository root.
	ControlDirName = ".chief"

	// PlansDirName holds dated plan files.
	PlansDirName = "plans"

	// TasksDirName holds dated task-set files.
	TasksDirName = "tasks"

	// WorktreesDirName holds one directory per workspace.
	WorktreesDirName = "worktrees"
)

// EnsureControlDir creates <root>/.chief if needed and returns its path.
func EnsureControlDir(root string) (string, error) {
	return ensure(filepath.Join(root, ControlDirName))
}

// EnsureDir creates the named subdirectory of controlDir if needed and
// returns its path. Calling it repeatedly is safe.
func EnsureDir(controlDir, name string) (string, error) {
	return ensure(filepath.Join(controlDir, name))
}

func ensure(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(errors.ErrCodeDirectoryFailed, fmt.Sprintf("failed to create %s", dir), err)
	}
	return dir, nil
}
