package workspace

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/felixgeelhaar/chief/internal/fsutil"
	"github.com/felixgeelhaar/chief/internal/tasks"
)

// Watch reports the task progress of ws once immediately and again every
// time its task set changes, until ctx is done. Unreadable intermediate
// states are skipped. When <ws>/.chief does not exist yet the workspace root
// is watched until it appears; Watch never creates it.
func (r *Registry) Watch(ctx context.Context, ws Workspace, fn func(tasks.Stats)) error {
	dir := filepath.Join(ws.Path, tasks.WorkspaceDir)
	file := tasks.WorkspacePath(ws.Path)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer watcher.Close()

	// task sets are replaced by rename, so watch the directory, not the file
	watching := fsutil.IsDir(dir)
	target := dir
	if !watching {
		target = ws.Path
	}
	if err := watcher.Add(target); err != nil {
		return fmt.Errorf("failed to watch %s: %w", target, err)
	}
	if !watching && fsutil.IsDir(dir) {
		// created between the check and the first Add
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		watching = true
	}

	emit := func() {
		list, err := tasks.ReadWorkspace(ws.Path)
		if err != nil {
			r.logger.Debug("ignoring unreadable task set", "worktree", ws.Name, "error", err)
			return
		}
		fn(tasks.GetStats(list))
	}
	emit()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !watching && event.Name == dir && event.Has(fsnotify.Create) && fsutil.IsDir(dir) {
				if err := watcher.Add(dir); err != nil {
					return fmt.Errorf("failed to watch %s: %w", dir, err)
				}
				watching = true
				emit()
				continue
			}
			if event.Name != file {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				emit()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.logger.Warn("watcher error", "error", err)
		}
	}
}
