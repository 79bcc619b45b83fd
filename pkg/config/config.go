// Package config defines the options file for the mdtool CLI: the output
// format, per-renderer options, and element policies applied during
// parsing. These types are pure data structures; loading lives in yaml.go.
package config

import (
	"fmt"

	"github.com/yaklabco/mdtool/pkg/ast"
	"github.com/yaklabco/mdtool/pkg/parser"
	"github.com/yaklabco/mdtool/pkg/render/html"
	"github.com/yaklabco/mdtool/pkg/render/latex"
	"github.com/yaklabco/mdtool/pkg/render/markdown"
)

// OutputFormat specifies the conversion target.
type OutputFormat string

const (
	FormatMarkdown OutputFormat = "markdown"
	FormatHTML     OutputFormat = "html"
	FormatLaTeX    OutputFormat = "latex"
)

// IsValid returns true if the output format is known.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatMarkdown, FormatHTML, FormatLaTeX:
		return true
	default:
		return false
	}
}

// MarkdownOptions controls the Markdown renderer.
type MarkdownOptions struct {
	SpacesBeforeListItem *int  `yaml:"spaces_before_list_item"`
	EmptyLineBeforeList  *bool `yaml:"empty_line_before_list"`
}

// HTMLOptions controls the HTML renderer.
type HTMLOptions struct {
	AnchorPrefix string `yaml:"anchor_prefix"`
	HeadingIDs   bool   `yaml:"heading_ids"`
}

// LaTeXOptions controls the LaTeX renderer.
type LaTeXOptions struct {
	TableStyle     string `yaml:"table_style"`      // tabular, longtable, booktabs
	CodeBlockStyle string `yaml:"code_block_style"` // verbatim, listings, minted
}

// Config is the root of the mdtool options file.
type Config struct {
	Format OutputFormat `yaml:"format"`

	// SkipBlocks / IgnoreBlocks name block kinds whose recognizers run
	// under the Skip / Ignore policy; likewise for inlines.
	SkipBlocks    []string `yaml:"skip_blocks"`
	IgnoreBlocks  []string `yaml:"ignore_blocks"`
	SkipInlines   []string `yaml:"skip_inlines"`
	IgnoreInlines []string `yaml:"ignore_inlines"`

	Markdown MarkdownOptions `yaml:"markdown"`
	HTML     HTMLOptions     `yaml:"html"`
	LaTeX    LaTeXOptions    `yaml:"latex"`
}

// Default returns the default configuration: Markdown output, everything
// parsed.
func Default() *Config {
	return &Config{Format: FormatMarkdown}
}

// blockKinds maps config spellings to block kinds. The names match
// ast.BlockKind.String().
var blockKinds = map[string]ast.BlockKind{
	"paragraph":                 ast.BlockParagraph,
	"heading":                   ast.BlockHeading,
	"thematic-break":            ast.BlockThematicBreak,
	"blockquote":                ast.BlockQuoteKind,
	"list":                      ast.BlockList,
	"code-block":                ast.BlockCode,
	"html-block":                ast.BlockHTML,
	"table":                     ast.BlockTable,
	"link-reference-definition": ast.BlockLinkReferenceDefinition,
	"footnote-definition":       ast.BlockFootnoteDefinition,
	"github-alert":              ast.BlockGitHubAlert,
}

// inlineKinds maps config spellings to inline kinds. The names match
// ast.InlineKind.String().
var inlineKinds = map[string]ast.InlineKind{
	"text":               ast.InlineText,
	"emphasis":           ast.InlineEmphasis,
	"strong":             ast.InlineStrong,
	"strikethrough":      ast.InlineStrikethrough,
	"code-span":          ast.InlineCode,
	"link":               ast.InlineLink,
	"image":              ast.InlineImage,
	"autolink":           ast.InlineAutolink,
	"html-inline":        ast.InlineHTML,
	"line-break":         ast.InlineLineBreak,
	"footnote-reference": ast.InlineFootnoteReference,
}

// Validate checks formats, style names, and element kind spellings.
func (c *Config) Validate() error {
	if c.Format != "" && !c.Format.IsValid() {
		return fmt.Errorf("unknown output format %q", c.Format)
	}
	for _, name := range append(append([]string{}, c.SkipBlocks...), c.IgnoreBlocks...) {
		if _, ok := blockKinds[name]; !ok {
			return fmt.Errorf("unknown block kind %q", name)
		}
	}
	for _, name := range append(append([]string{}, c.SkipInlines...), c.IgnoreInlines...) {
		if _, ok := inlineKinds[name]; !ok {
			return fmt.Errorf("unknown inline kind %q", name)
		}
	}
	if _, err := c.latexTableStyle(); err != nil {
		return err
	}
	if _, err := c.latexCodeStyle(); err != nil {
		return err
	}
	return nil
}

// ParserConfig builds the parser configuration from the element policies.
func (c *Config) ParserConfig() *parser.Config {
	pc := parser.NewConfig()
	for _, name := range c.SkipBlocks {
		pc.WithBlockBehavior(blockKinds[name], parser.SkipBlock())
	}
	for _, name := range c.IgnoreBlocks {
		pc.WithBlockBehavior(blockKinds[name], parser.IgnoreBlock())
	}
	for _, name := range c.SkipInlines {
		pc.WithInlineBehavior(inlineKinds[name], parser.SkipInline())
	}
	for _, name := range c.IgnoreInlines {
		pc.WithInlineBehavior(inlineKinds[name], parser.IgnoreInline())
	}
	return pc
}

// MarkdownConfig builds the Markdown renderer configuration.
func (c *Config) MarkdownConfig() markdown.Config {
	mc := markdown.DefaultConfig()
	if c.Markdown.SpacesBeforeListItem != nil {
		mc = mc.WithSpacesBeforeListItem(*c.Markdown.SpacesBeforeListItem)
	}
	if c.Markdown.EmptyLineBeforeList != nil {
		mc = mc.WithEmptyLineBeforeList(*c.Markdown.EmptyLineBeforeList)
	}
	return mc
}

// HTMLConfig builds the HTML renderer configuration.
func (c *Config) HTMLConfig() html.Config {
	hc := html.DefaultConfig()
	if c.HTML.HeadingIDs {
		hc = hc.WithHeadingIDs(true)
	}
	if c.HTML.AnchorPrefix != "" {
		hc = hc.WithAnchorPrefix(c.HTML.AnchorPrefix)
	}
	return hc
}

// LaTeXConfig builds the LaTeX renderer configuration. Validate must have
// accepted the config first.
func (c *Config) LaTeXConfig() latex.Config {
	lc := latex.DefaultConfig()
	if style, err := c.latexTableStyle(); err == nil {
		lc = lc.WithTableStyle(style)
	}
	if style, err := c.latexCodeStyle(); err == nil {
		lc = lc.WithCodeBlockStyle(style)
	}
	return lc
}

func (c *Config) latexTableStyle() (latex.TableStyle, error) {
	switch c.LaTeX.TableStyle {
	case "", "tabular":
		return latex.TableTabular, nil
	case "longtable":
		return latex.TableLongtable, nil
	case "booktabs":
		return latex.TableBooktabs, nil
	default:
		return 0, fmt.Errorf("unknown latex table style %q", c.LaTeX.TableStyle)
	}
}

func (c *Config) latexCodeStyle() (latex.CodeBlockStyle, error) {
	switch c.LaTeX.CodeBlockStyle {
	case "", "verbatim":
		return latex.CodeVerbatim, nil
	case "listings":
		return latex.CodeListings, nil
	case "minted":
		return latex.CodeMinted, nil
	default:
		return 0, fmt.Errorf("unknown latex code block style %q", c.LaTeX.CodeBlockStyle)
	}
}
