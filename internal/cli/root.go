// Package cli provides the Cobra command structure for mdtool.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdtool/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root mdtool command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "mdtool",
		Short: "Parse, inspect, and convert Markdown documents",
		Long: `mdtool parses CommonMark and GitHub Flavored Markdown (GFM) into a
typed document tree and converts it to Markdown, HTML, or LaTeX.

The parser is total: malformed syntax is absorbed as literal content
rather than rejected. Element policies in the options file control which
constructs are recognized.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to options file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newConvertCommand(&configPath))
	rootCmd.AddCommand(newInspectCommand(&configPath, &color))
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	applyHelpStyles(rootCmd, color, os.Stdout)

	return rootCmd
}
