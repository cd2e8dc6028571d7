package tasks

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/chief/internal/errors"
)

func TestSchemaShape(t *testing.T) {
	schema := Schema()
	assert.Equal(t, "array", schema["type"])

	items := schema["items"].(map[string]any)
	assert.Equal(t, false, items["additionalProperties"])
	assert.ElementsMatch(t, []string{"category", "description", "passes", "steps"}, items["required"])

	props := items["properties"].(map[string]any)
	assert.Len(t, props, 4)
	assert.Equal(t, false, props["passes"].(map[string]any)["default"])
}

func TestWriteSchema(t *testing.T) {
	dir := t.TempDir()

	path, err := WriteSchema(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, SchemaFileName), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "Tasks", decoded["title"])

	// regenerating replaces the file
	_, err = WriteSchema(dir)
	require.NoError(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr errors.ErrorCode
	}{
		{"empty array", `[]`, ""},
		{"valid task", `[{"category":"a","description":"b","passes":false,"steps":["x"]}]`, ""},
		{"extra property", `[{"category":"a","description":"b","passes":false,"steps":[],"owner":"x"}]`, errors.ErrCodeTasksInvalid},
		{"missing steps", `[{"category":"a","description":"b","passes":false}]`, errors.ErrCodeTasksInvalid},
		{"wrong type", `[{"category":"a","description":"b","passes":"yes","steps":[]}]`, errors.ErrCodeTasksInvalid},
		{"not an array", `{"category":"a"}`, errors.ErrCodeTasksInvalid},
		{"malformed", `[{`, errors.ErrCodeTasksParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate([]byte(tt.data))
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, errors.CodeOf(err))
		})
	}
}

func TestReadIsMorePermissiveThanValidate(t *testing.T) {
	content := `[{"category":"a","description":"b","passes":false,"steps":[],"owner":"x"}]`
	path := filepath.Join(t.TempDir(), "tasks.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := Read(path)
	assert.NoError(t, err)
	assert.Error(t, Validate([]byte(content)))
}
