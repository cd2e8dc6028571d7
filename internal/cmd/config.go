package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/chief/internal/settings"
	"github.com/felixgeelhaar/chief/internal/ux"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or change chief settings",
	Long: `Manage per-user chief settings stored at ~/.chief/settings.yaml
(or the file named by --settings).

Keys:
  log_level      debug, info, warn or error
  log_format     text or json
  format         default output format: text, json or yaml
  branch_prefix  prefix for branches created by 'chief new'
  no_color       disable colored output

Every key can also be set through CHIEF_<KEY>, e.g. CHIEF_LOG_LEVEL=debug.

Examples:
  chief config view
  chief config get branch_prefix
  chief config set branch_prefix feature/
  chief config path
`,
}

var configViewCmd = &cobra.Command{
	Use:   "view",
	Short: "Display the effective settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigView,
}

var configGetCmd = &cobra.Command{
	Use:       "get <key>",
	Short:     "Print one setting",
	Args:      cobra.ExactArgs(1),
	ValidArgs: settings.Keys,
	RunE:      runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one setting and save it",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the settings file path",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

func init() {
	configCmd.AddCommand(configViewCmd, configGetCmd, configSetCmd, configPathCmd)

	rootCmd.AddCommand(configCmd)
}

// SettingsReport is the output of `chief config view`.
type SettingsReport struct {
	Path         string `json:"path" yaml:"path"`
	LogLevel     string `json:"log_level" yaml:"log_level"`
	LogFormat    string `json:"log_format" yaml:"log_format"`
	Format       string `json:"format" yaml:"format"`
	BranchPrefix string `json:"branch_prefix" yaml:"branch_prefix"`
	NoColor      bool   `json:"no_color" yaml:"no_color"`
}

// RenderText implements ux.TextRenderer.
func (r SettingsReport) RenderText(w io.Writer, s ux.Styles) error {
	fmt.Fprintf(w, "%s %s\n\n", s.Title.Render("Settings file:"), r.Path)
	fmt.Fprintf(w, "log_level:     %s\n", r.LogLevel)
	fmt.Fprintf(w, "log_format:    %s\n", r.LogFormat)
	fmt.Fprintf(w, "format:        %s\n", r.Format)
	fmt.Fprintf(w, "branch_prefix: %s\n", r.BranchPrefix)
	fmt.Fprintf(w, "no_color:      %t\n", r.NoColor)
	return nil
}

// settingsPath returns --settings or the default location.
func settingsPath(cmd *cobra.Command) string {
	if p, err := cmd.Flags().GetString("settings"); err == nil && p != "" {
		return p
	}
	return settings.DefaultPath()
}

func runConfigView(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	return a.viewSettings(settingsPath(cmd))
}

func (a *app) viewSettings(path string) error {
	s := a.cc.Settings
	return a.render(SettingsReport{
		Path:         path,
		LogLevel:     s.LogLevel,
		LogFormat:    s.LogFormat,
		Format:       s.Format,
		BranchPrefix: s.BranchPrefix,
		NoColor:      s.NoColor,
	})
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	value, err := a.cc.Settings.Get(args[0])
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(a.out, value)
	return err
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	return a.setSetting(settingsPath(cmd), args[0], args[1])
}

// setSetting changes one key in the file at path. Only the file is read so
// CHIEF_* overrides in the environment are not persisted.
func (a *app) setSetting(path, key, value string) error {
	s, err := settings.LoadFile(path)
	if err != nil {
		return err
	}
	if err := s.Set(key, value); err != nil {
		return err
	}
	if err := settings.Save(s, path); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	a.logger.Info("setting changed", "key", key, "value", value, "path", path)
	return a.render(FileResult{Path: path})
}

func runConfigPath(cmd *cobra.Command, _ []string) error {
	_, err := fmt.Fprintln(cmd.OutOrStdout(), settingsPath(cmd))
	return err
}
