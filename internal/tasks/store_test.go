package tasks

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/chief/internal/errors"
)

func TestReadMissingFile(t *testing.T) {
	tasks, err := Read(filepath.Join(t.TempDir(), "absent.tasks.json"))
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestReadInvalidJSON(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"truncated", `[{"category": "a"`},
		{"not json", `hello`},
		{"object instead of array", `{"category":"a"}`},
		{"empty file", ``},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "tasks.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))

			_, err := Read(path)
			require.Error(t, err)
			assert.True(t, IsParseError(err))
			assert.Equal(t, errors.ErrCodeTasksParse, errors.CodeOf(err))
		})
	}
}

func TestReadToleratesWrongTypes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	content := `[{"category":"a","description":"d","passes":"yes","steps":[]},{"category":"b","description":"e","passes":true,"steps":"x"}]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	list, err := Read(path)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, Stats{Completed: 1, Total: 2}, GetStats(list))

	require.NoError(t, Write(path, list))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, content, string(data))

	assert.True(t, errors.HasCode(Validate(data), errors.ErrCodeTasksInvalid))
}

func TestReadNullIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	require.NoError(t, os.WriteFile(path, []byte("null"), 0o644))

	tasks, err := Read(path)
	require.NoError(t, err)
	assert.Empty(t, tasks)
}

func TestReadAcceptsExtraFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	content := `[{"category":"ui","description":"d","passes":false,"steps":[],"owner":"sam"}]`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	tasks, err := Read(path)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Contains(t, tasks[0].Extra, "owner")
}

func TestWriteReadPreservesOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	in := []Task{
		{Category: "setup", Description: "first", Steps: []string{"s1"}},
		{Category: "api", Description: "second", Passes: true, Steps: []string{"s1", "s2"}},
		{Category: "ui", Description: "third", Steps: []string{}},
	}

	require.NoError(t, Write(path, in))

	out, err := Read(path)
	require.NoError(t, err)
	require.Len(t, out, 3)
	for i := range in {
		assert.Equal(t, in[i].Description, out[i].Description)
		assert.Equal(t, in[i].Passes, out[i].Passes)
		assert.Equal(t, in[i].Steps, out[i].Steps)
	}
}

func TestWriteNilWritesEmptyArray(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.json")
	require.NoError(t, Write(path, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(data))
}

func TestReadWorkspace(t *testing.T) {
	ws := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(ws, WorkspaceDir), 0o755))
	require.NoError(t, Write(WorkspacePath(ws), []Task{{Description: "x", Passes: true}}))

	tasks, err := ReadWorkspace(ws)
	require.NoError(t, err)
	assert.Equal(t, Stats{Completed: 1, Total: 1}, GetStats(tasks))

	empty, err := ReadWorkspace(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, empty)
}
