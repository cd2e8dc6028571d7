package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/chief/internal/ux"
	"github.com/felixgeelhaar/chief/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long: `Print version information including version number, git commit,
build date, Go version, and platform.`,
	Args: cobra.NoArgs,
	RunE: runVersion,
}

var versionVerbose bool

func init() {
	versionCmd.Flags().BoolVarP(&versionVerbose, "verbose", "v", false, "show detailed version information")

	rootCmd.AddCommand(versionCmd)
}

// VersionReport is the output of `chief version`.
type VersionReport struct {
	version.Info `yaml:",inline"`

	verbose bool
}

// RenderText implements ux.TextRenderer.
func (r VersionReport) RenderText(w io.Writer, _ ux.Styles) error {
	if r.verbose {
		_, err := fmt.Fprintln(w, r.Info.String())
		return err
	}
	_, err := fmt.Fprintf(w, "chief %s\n", r.Info.Short())
	return err
}

func runVersion(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd)
	if err != nil {
		return err
	}
	return a.render(VersionReport{Info: version.GetInfo(), verbose: versionVerbose})
}
