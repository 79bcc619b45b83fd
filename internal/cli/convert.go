package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdtool/internal/logging"
	"github.com/yaklabco/mdtool/pkg/config"
	"github.com/yaklabco/mdtool/pkg/fsutil"
	"github.com/yaklabco/mdtool/pkg/parser"
	htmlrender "github.com/yaklabco/mdtool/pkg/render/html"
	"github.com/yaklabco/mdtool/pkg/render/latex"
	"github.com/yaklabco/mdtool/pkg/render/markdown"
)

type convertFlags struct {
	to     string
	output string
}

func newConvertCommand(configPath *string) *cobra.Command {
	flags := &convertFlags{}

	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Convert a Markdown document to another format",
		Long:  convertLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args, *configPath, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.to, "to", "t", "",
		"output format: markdown, html, latex (overrides the options file)")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"write output to file instead of stdout (atomic)")

	return cmd
}

const convertLongDescription = `Convert a Markdown document to Markdown, HTML, or LaTeX.

Reads from the given file, or from stdin when no file is named.

Examples:
  mdtool convert README.md --to html
  mdtool convert --to latex -o out.tex notes.md
  cat doc.md | mdtool convert --to markdown`

func runConvert(cmd *cobra.Command, args []string, configPath string, flags *convertFlags) error {
	logger := logging.Default()

	cfg, err := loadOptions(configPath)
	if err != nil {
		return err
	}
	format := cfg.Format
	if flags.to != "" {
		format = config.OutputFormat(flags.to)
		if !format.IsValid() {
			return fmt.Errorf("unknown output format %q", flags.to)
		}
	}

	input, path, err := readInput(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}
	logger.Debug("parsing input",
		logging.FieldInput, path,
		logging.FieldBytesIn, len(input))

	doc, err := parser.Parse(cfg.ParserConfig(), string(input))
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	var out string
	switch format {
	case config.FormatHTML:
		out = htmlrender.Render(doc, cfg.HTMLConfig())
	case config.FormatLaTeX:
		out = latex.Render(doc, cfg.LaTeXConfig())
	default:
		out = markdown.Render(doc, cfg.MarkdownConfig())
	}

	logger.Debug("rendered document",
		logging.FieldFormat, string(format),
		logging.FieldBlocks, len(doc.Blocks),
		logging.FieldBytesOut, len(out))

	if flags.output == "" {
		_, err = io.WriteString(cmd.OutOrStdout(), out)
		return err
	}
	if err := fsutil.WriteAtomic(cmd.Context(), flags.output, []byte(out), 0); err != nil {
		return fmt.Errorf("write %s: %w", flags.output, err)
	}
	logger.Info("wrote output",
		logging.FieldOutput, flags.output,
		logging.FieldBytesOut, len(out))
	return nil
}

// loadOptions loads the options file: an explicit path must exist, the
// default discovery falls back to defaults.
func loadOptions(configPath string) (*config.Config, error) {
	if configPath != "" {
		return config.LoadFile(configPath)
	}
	return config.Discover(".")
}

// readInput reads the named file or stdin.
func readInput(stdin io.Reader, args []string) (content []byte, path string, err error) {
	if len(args) == 0 {
		content, err = io.ReadAll(stdin)
		if err != nil {
			return nil, "", fmt.Errorf("read stdin: %w", err)
		}
		return content, "(stdin)", nil
	}
	content, err = os.ReadFile(args[0])
	if err != nil {
		return nil, "", fmt.Errorf("read input: %w", err)
	}
	return content, args[0], nil
}
