package state

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/felixgeelhaar/chief/internal/errors"
	"github.com/felixgeelhaar/chief/internal/fsutil"
)

// ConfigFileName is the repository state file inside the control directory.
const ConfigFileName = "config.json"

// Config is the persisted repository state.
type Config struct {
	// CurrentWorktree is the absolute path of the current workspace, if any.
	// It is not validated on write and may be stale.
	CurrentWorktree string `json:"currentWorktree,omitempty"`

	// Extra holds keys chief does not know; they are written back unchanged.
	Extra map[string]json.RawMessage `json:"-"`
}

const currentWorktreeKey = "currentWorktree"

// UnmarshalJSON decodes currentWorktree and keeps every other key in Extra.
// A currentWorktree that is not a string is kept in Extra as well.
func (c *Config) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*c = Config{}
	for key, value := range raw {
		if key == currentWorktreeKey {
			var path string
			if err := json.Unmarshal(value, &path); err == nil {
				c.CurrentWorktree = path
				continue
			}
		}
		if c.Extra == nil {
			c.Extra = make(map[string]json.RawMessage)
		}
		c.Extra[key] = value
	}
	return nil
}

// MarshalJSON writes currentWorktree (when set) followed by the extra keys
// in key order.
func (c Config) MarshalJSON() ([]byte, error) {
	keys := make([]string, 0, len(c.Extra))
	for key := range c.Extra {
		if key == currentWorktreeKey && c.CurrentWorktree != "" {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var buf bytes.Buffer
	buf.WriteByte('{')
	sep := ""
	if c.CurrentWorktree != "" {
		value, err := json.Marshal(c.CurrentWorktree)
		if err != nil {
			return nil, err
		}
		buf.WriteString(`"` + currentWorktreeKey + `":`)
		buf.Write(value)
		sep = ","
	}
	for _, key := range keys {
		name, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.WriteString(sep)
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(c.Extra[key])
		sep = ","
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// GetConfig reads the whole record. A missing file yields the zero Config.
func GetConfig(controlDir string) (Config, error) {
	path := filepath.Join(controlDir, ConfigFileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, errors.Wrap(errors.ErrCodeFileReadFailed, fmt.Sprintf("failed to read %s", path), err)
	}

	if strings.TrimSpace(string(data)) == "" {
		return Config{}, nil
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.NewFileUnmarshalError(errors.ErrCodeConfigParse, path, err)
	}
	return cfg, nil
}

// SetConfig replaces the whole record.
func SetConfig(controlDir string, cfg Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	data = append(data, '\n')

	path := filepath.Join(controlDir, ConfigFileName)
	if err := fsutil.WriteFileAtomic(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeFileWriteFailed, fmt.Sprintf("failed to write %s", path), err)
	}
	return nil
}

// CurrentWorktree returns the stored pointer. It does not check that the
// path still exists.
func CurrentWorktree(controlDir string) (string, bool, error) {
	cfg, err := GetConfig(controlDir)
	if err != nil {
		return "", false, err
	}
	if cfg.CurrentWorktree == "" {
		return "", false, nil
	}
	return cfg.CurrentWorktree, true, nil
}

// SetCurrentWorktree stores path as the current workspace.
func SetCurrentWorktree(controlDir, path string) error {
	cfg, err := GetConfig(controlDir)
	if err != nil {
		return err
	}
	cfg.CurrentWorktree = path
	if path != "" {
		delete(cfg.Extra, currentWorktreeKey)
	}
	return SetConfig(controlDir, cfg)
}

// ClearCurrentWorktree removes the pointer.
func ClearCurrentWorktree(controlDir string) error {
	return SetCurrentWorktree(controlDir, "")
}
