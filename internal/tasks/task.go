// Package tasks defines the task-set data model: the record persisted in
// *.tasks.json files, completion statistics, and the advisory JSON schema
// handed to external tooling.
package tasks

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Task is one unit of work in a task set.
//
// Fields not known to chief are kept in Extra and written back unchanged,
// so files produced by other tools survive a read/write cycle.
type Task struct {
	Category    string   `json:"category" yaml:"category"`
	Description string   `json:"description" yaml:"description"`
	Passes      bool     `json:"passes" yaml:"passes"`
	Steps       []string `json:"steps" yaml:"steps"`

	Extra map[string]json.RawMessage `json:"-" yaml:"-"`
}

// fieldOrder is the schema order of the known fields.
var fieldOrder = []string{"category", "description", "passes", "steps"}

var knownFields = map[string]bool{
	"category":    true,
	"description": true,
	"passes":      true,
	"steps":       true,
}

// UnmarshalJSON decodes the known fields and keeps everything else in Extra.
// A known field holding null or a value of the wrong type is kept in Extra
// too, so reading never type-checks; tasks.Validate does that.
func (t *Task) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("task is not a JSON object: %w", err)
	}

	*t = Task{}
	for key, value := range raw {
		if knownFields[key] && t.decodeField(key, value) {
			continue
		}
		if t.Extra == nil {
			t.Extra = make(map[string]json.RawMessage)
		}
		t.Extra[key] = value
	}
	return nil
}

// decodeField stores value in the typed field named key and reports whether
// it had the expected type.
func (t *Task) decodeField(key string, value json.RawMessage) bool {
	if bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
		return false
	}
	var target any
	switch key {
	case "category":
		target = &t.Category
	case "description":
		target = &t.Description
	case "passes":
		target = &t.Passes
	case "steps":
		target = &t.Steps
	default:
		return false
	}
	return json.Unmarshal(value, target) == nil
}

// MarshalJSON writes the known fields in schema order followed by any extra
// fields in key order. A known field kept in Extra is written from there.
func (t Task) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range fieldOrder {
		if i > 0 {
			buf.WriteByte(',')
		}
		value, ok := t.Extra[key]
		if !ok {
			var err error
			if value, err = t.marshalField(key); err != nil {
				return nil, err
			}
		}
		buf.WriteString(`"` + key + `":`)
		buf.Write(value)
	}

	keys := make([]string, 0, len(t.Extra))
	for key := range t.Extra {
		if !knownFields[key] {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	for _, key := range keys {
		name, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.WriteByte(',')
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(t.Extra[key])
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (t Task) marshalField(key string) ([]byte, error) {
	switch key {
	case "category":
		return json.Marshal(t.Category)
	case "description":
		return json.Marshal(t.Description)
	case "passes":
		return json.Marshal(t.Passes)
	default:
		steps := t.Steps
		if steps == nil {
			steps = []string{}
		}
		return json.Marshal(steps)
	}
}

// Stats summarizes completion of a task set.
type Stats struct {
	Completed int `json:"completed" yaml:"completed"`
	Total     int `json:"total" yaml:"total"`
}

// Remaining is the number of tasks that do not pass yet.
func (s Stats) Remaining() int {
	return s.Total - s.Completed
}

// Done reports whether every task passes. An empty task set is not done.
func (s Stats) Done() bool {
	return s.Total > 0 && s.Completed == s.Total
}

// GetStats counts passing tasks.
func GetStats(tasks []Task) Stats {
	completed := 0
	for _, task := range tasks {
		if task.Passes {
			completed++
		}
	}
	return Stats{Completed: completed, Total: len(tasks)}
}

// HasPending reports whether at least one task does not pass.
func HasPending(tasks []Task) bool {
	for _, task := range tasks {
		if !task.Passes {
			return true
		}
	}
	return false
}
