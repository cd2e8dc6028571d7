package workspace

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/chief/internal/tasks"
)

func TestWatchReportsChanges(t *testing.T) {
	r, _ := newTestRegistry(t)
	path := addWorkspace(t, r, "watched", []tasks.Task{{Passes: false}, {Passes: false}})
	ws, err := r.Lookup("watched")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	updates := make(chan tasks.Stats, 16)
	done := make(chan error, 1)
	go func() {
		done <- r.Watch(ctx, ws, func(s tasks.Stats) { updates <- s })
	}()

	select {
	case s := <-updates:
		assert.Equal(t, tasks.Stats{Completed: 0, Total: 2}, s)
	case <-ctx.Done():
		t.Fatal("no initial progress reported")
	}

	require.NoError(t, tasks.Write(tasks.WorkspacePath(path), []tasks.Task{{Passes: true}, {Passes: false}}))

	for {
		select {
		case s := <-updates:
			if s.Completed == 1 {
				cancel()
				require.NoError(t, <-done)
				return
			}
		case <-ctx.Done():
			t.Fatal("change not reported")
		}
	}
}

func TestWatchDoesNotCreateControlDir(t *testing.T) {
	r, _ := newTestRegistry(t)
	path := addWorkspace(t, r, "bare", nil)
	ws, err := r.Lookup("bare")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	updates := make(chan tasks.Stats, 16)
	done := make(chan error, 1)
	go func() {
		done <- r.Watch(ctx, ws, func(s tasks.Stats) { updates <- s })
	}()

	select {
	case s := <-updates:
		assert.Equal(t, tasks.Stats{}, s)
	case <-ctx.Done():
		t.Fatal("no initial progress reported")
	}
	assert.NoDirExists(t, filepath.Join(path, tasks.WorkspaceDir))

	require.NoError(t, os.MkdirAll(filepath.Join(path, tasks.WorkspaceDir), 0o755))
	require.NoError(t, tasks.Write(tasks.WorkspacePath(path), []tasks.Task{{Passes: true}}))

	for {
		select {
		case s := <-updates:
			if s.Total == 1 {
				assert.Equal(t, 1, s.Completed)
				cancel()
				require.NoError(t, <-done)
				return
			}
		case <-ctx.Done():
			t.Fatal("task set in a new control dir not reported")
		}
	}
}

func TestWatchMissingWorkspace(t *testing.T) {
	r, _ := newTestRegistry(t)
	ws := Workspace{Name: "gone", Path: filepath.Join(r.WorktreesDir(), "gone")}

	err := r.Watch(context.Background(), ws, func(tasks.Stats) {})
	assert.Error(t, err)
	assert.NoDirExists(t, ws.Path)
}
