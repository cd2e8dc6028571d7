package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/chief/internal/settings"
)

// CommandContext holds the resolved output and logging options for one
// invocation. Flags win over CHIEF_* environment variables, which win over
// the settings file.
type CommandContext struct {
	Format    string
	NoColor   bool
	LogLevel  string
	LogFormat string

	Settings *settings.Settings
}

// NewCommandContext extracts command context from cobra.Command flags.
// Commands should call this in their RunE function to get their configuration:
//
//	func runCommand(cmd *cobra.Command, args []string) error {
//		ctx, err := NewCommandContext(cmd)
//		if err != nil {
//			return fmt.Errorf("failed to create command context: %w", err)
//		}
//		// Use ctx.Format, ctx.NoColor, etc.
//	}
func NewCommandContext(cmd *cobra.Command) (*CommandContext, error) {
	settingsPath, err := cmd.Flags().GetString("settings")
	if err != nil {
		return nil, err
	}

	s, err := settings.Load(settingsPath)
	if err != nil {
		return nil, err
	}

	cc := &CommandContext{
		Format:    stringFlag(cmd, "format", s.Format),
		LogLevel:  stringFlag(cmd, "log-level", s.LogLevel),
		LogFormat: stringFlag(cmd, "log-format", s.LogFormat),
		NoColor:   s.NoColor,
		Settings:  s,
	}

	if f := cmd.Flags().Lookup("no-color"); f != nil && f.Changed {
		cc.NoColor, err = cmd.Flags().GetBool("no-color")
		if err != nil {
			return nil, err
		}
	}
	// https://no-color.org
	if os.Getenv("NO_COLOR") != "" {
		cc.NoColor = true
	}

	return cc, nil
}

// stringFlag returns the flag value when it was set explicitly.
func stringFlag(cmd *cobra.Command, name, fallback string) string {
	f := cmd.Flags().Lookup(name)
	if f == nil || !f.Changed {
		return fallback
	}
	return f.Value.String()
}
