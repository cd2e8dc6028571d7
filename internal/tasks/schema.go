package tasks

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/felixgeelhaar/chief/internal/errors"
	"github.com/felixgeelhaar/chief/internal/fsutil"
)

// SchemaFileName is the schema file written to the control directory.
const SchemaFileName = "tasks.schema.json"

const schemaURL = "https://github.com/felixgeelhaar/chief/" + SchemaFileName

// Schema returns the draft-07 JSON Schema every task-set file is expected to
// satisfy. It is advisory: Read does not enforce it.
func Schema() map[string]any {
	return map[string]any{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"title":   "Tasks",
		"type":    "array",
		"items": map[string]any{
			"type": "object",
			"properties": map[string]any{
				"category": map[string]any{
					"type":        "string",
					"description": "The category of the task",
				},
				"description": map[string]any{
					"type":        "string",
					"description": "A detailed description of the task",
				},
				"passes": map[string]any{
					"type":        "boolean",
					"description": "Indicates if the task has passed or is completed",
					"default":     false,
				},
				"steps": map[string]any{
					"type":        "array",
					"description": "A list of steps to complete the task",
					"items": map[string]any{
						"type": "string",
					},
				},
			},
			"required":             []string{"category", "description", "passes", "steps"},
			"additionalProperties": false,
		},
	}
}

// WriteSchema writes tasks.schema.json into controlDir, replacing any
// previous copy.
func WriteSchema(controlDir string) (string, error) {
	data, err := json.MarshalIndent(Schema(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal schema: %w", err)
	}

	path := filepath.Join(controlDir, SchemaFileName)
	if err := fsutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return "", errors.Wrap(errors.ErrCodeFileWriteFailed, "failed to write task schema", err)
	}
	return path, nil
}

func compileSchema() (*jsonschema.Schema, error) {
	raw, err := json.Marshal(Schema())
	if err != nil {
		return nil, err
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}
	return compiler.Compile(schemaURL)
}

// Validate checks raw task-set JSON against Schema. This is the strict path
// used by `chief tasks validate`; Read stays permissive.
func Validate(data []byte) error {
	schema, err := compileSchema()
	if err != nil {
		return fmt.Errorf("failed to compile task schema: %w", err)
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return errors.Wrap(errors.ErrCodeTasksParse, "task set is not valid JSON", err)
	}

	if err := schema.Validate(inst); err != nil {
		return errors.Wrap(errors.ErrCodeTasksInvalid, "task set does not match schema", err).
			WithSuggestion("Run 'chief tasks schema' to regenerate .chief/tasks.schema.json for reference")
	}
	return nil
}
