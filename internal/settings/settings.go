// Package settings loads per-user chief preferences using Viper.
//
// Settings come from, in increasing priority: built-in defaults,
// ~/.chief/settings.yaml, and CHIEF_* environment variables. Command-line
// flags are applied on top by the command layer. Repository state such as
// the current worktree lives in <repo>/.chief/config.json, not here.
package settings

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "CHIEF"

// Settings holds user preferences.
type Settings struct {
	LogLevel     string `mapstructure:"log_level"`
	LogFormat    string `mapstructure:"log_format"`
	Format       string `mapstructure:"format"`
	BranchPrefix string `mapstructure:"branch_prefix"`
	NoColor      bool   `mapstructure:"no_color"`
}

// DefaultPath returns ~/.chief/settings.yaml, or "" when the home directory
// is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".chief", "settings.yaml")
}

// Load reads settings from path (DefaultPath when empty) and the environment.
// A missing file is not an error.
func Load(path string) (*Settings, error) {
	return load(path, true)
}

// LoadFile reads settings from path and defaults only, ignoring the
// environment. Used when rewriting the file.
func LoadFile(path string) (*Settings, error) {
	return load(path, false)
}

func load(path string, env bool) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	if path == "" {
		path = DefaultPath()
	}
	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
	}

	if env {
		v.SetEnvPrefix(EnvPrefix)
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()
	}

	if path != "" {
		if err := v.ReadInConfig(); err != nil && !isNotFound(err) {
			return nil, err
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Default returns the built-in settings.
func Default() *Settings {
	return &Settings{
		LogLevel:     "warn",
		LogFormat:    "text",
		Format:       "text",
		BranchPrefix: "chief/",
	}
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)
	v.SetDefault("format", d.Format)
	v.SetDefault("branch_prefix", d.BranchPrefix)
	v.SetDefault("no_color", d.NoColor)
}

// isNotFound covers both viper's search miss and a missing explicit file.
func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) {
		return true
	}
	return errors.Is(err, fs.ErrNotExist)
}

// Save writes s to path, creating the parent directory.
func Save(s *Settings, path string) error {
	v := viper.New()
	v.Set("log_level", s.LogLevel)
	v.Set("log_format", s.LogFormat)
	v.Set("format", s.Format)
	v.Set("branch_prefix", s.BranchPrefix)
	v.Set("no_color", s.NoColor)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return v.WriteConfigAs(path)
}

// Branch returns the branch name for a workspace slug.
func (s *Settings) Branch(slug string) string {
	return s.BranchPrefix + slug
}
