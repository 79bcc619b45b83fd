package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdtool/internal/ui/outline"
	"github.com/yaklabco/mdtool/pkg/parser"
)

func newInspectCommand(configPath, color *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Show the structure of a Markdown document",
		Long: `Parse a Markdown document and print a styled outline of its block
structure together with per-element counts.

Reads from the given file, or from stdin when no file is named.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd, args, *configPath, *color)
		},
	}
	return cmd
}

func runInspect(cmd *cobra.Command, args []string, configPath, color string) error {
	cfg, err := loadOptions(configPath)
	if err != nil {
		return err
	}

	input, path, err := readInput(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	doc, err := parser.Parse(cfg.ParserConfig(), string(input))
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	out := cmd.OutOrStdout()
	styles := outline.NewStyles(outline.ColorEnabled(color, out))
	outline.Render(out, doc, styles)
	return nil
}
