package tasks

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/felixgeelhaar/chief/internal/errors"
	"github.com/felixgeelhaar/chief/internal/fsutil"
)

const (
	// WorkspaceDir is the per-workspace directory chief writes into.
	WorkspaceDir = ".chief"

	// WorkspaceFile is the active task set inside a workspace.
	WorkspaceFile = "tasks.json"
)

// WorkspacePath returns the active task-set path for a workspace.
func WorkspacePath(workspace string) string {
	return filepath.Join(workspace, WorkspaceDir, WorkspaceFile)
}

// Read loads a task set. A missing file is an empty task set; a file that is
// not a JSON array of task objects fails with a TASKS-001 parse error. The
// schema is not enforced here.
func Read(path string) ([]Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return []Task{}, nil
		}
		return nil, errors.Wrap(errors.ErrCodeFileReadFailed, fmt.Sprintf("failed to read %s", path), err)
	}

	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, errors.NewFileUnmarshalError(errors.ErrCodeTasksParse, path, err)
	}
	if tasks == nil {
		tasks = []Task{}
	}
	return tasks, nil
}

// ReadWorkspace loads the active task set of a workspace.
func ReadWorkspace(workspace string) ([]Task, error) {
	return Read(WorkspacePath(workspace))
}

// Write replaces the task set at path, preserving task order.
func Write(path string, tasks []Task) error {
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal tasks: %w", err)
	}
	data = append(data, '\n')

	if err := fsutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeFileWriteFailed, fmt.Sprintf("failed to write %s", path), err)
	}
	return nil
}

// IsParseError reports whether err came from a malformed task-set file.
func IsParseError(err error) bool {
	return errors.HasCode(err, errors.ErrCodeTasksParse)
}
