package parser

import (
	"github.com/yaklabco/mdtool/pkg/ast"
)

// BehaviorKind selects what happens when a built-in recognizer matches an
// element.
type BehaviorKind uint8

const (
	// BehaviorParse emits the element as produced. This is the default.
	BehaviorParse BehaviorKind = iota

	// BehaviorIgnore pretends the recognizer did not match; the next
	// alternative is tried at the same position.
	BehaviorIgnore

	// BehaviorSkip consumes input as normal but emits an Empty block in
	// block context, and nothing in inline context.
	BehaviorSkip

	// BehaviorMap runs the configured function on the produced element and
	// emits its single result.
	BehaviorMap

	// BehaviorFlatMap runs the configured function on the produced element
	// and splices its results into the surrounding sequence. The results
	// are not re-dispatched.
	BehaviorFlatMap
)

// BlockBehavior is the policy applied to one block variant. The Kind tag
// and the two function slots are mutually exclusive: Map is consulted only
// under BehaviorMap, FlatMap only under BehaviorFlatMap.
type BlockBehavior struct {
	Kind    BehaviorKind
	Map     func(ast.Block[ast.None]) ast.Block[ast.None]
	FlatMap func(ast.Block[ast.None]) []ast.Block[ast.None]
}

// InlineBehavior is the policy applied to one inline variant.
type InlineBehavior struct {
	Kind    BehaviorKind
	Map     func(ast.Inline[ast.None]) ast.Inline[ast.None]
	FlatMap func(ast.Inline[ast.None]) []ast.Inline[ast.None]
}

// ParseBlock returns the default emit-as-produced block behavior.
func ParseBlock() BlockBehavior { return BlockBehavior{Kind: BehaviorParse} }

// IgnoreBlock returns the behavior that disables a block recognizer.
func IgnoreBlock() BlockBehavior { return BlockBehavior{Kind: BehaviorIgnore} }

// SkipBlock returns the behavior that consumes a block but emits Empty.
func SkipBlock() BlockBehavior { return BlockBehavior{Kind: BehaviorSkip} }

// MapBlock returns the behavior that rewrites a produced block.
func MapBlock(fn func(ast.Block[ast.None]) ast.Block[ast.None]) BlockBehavior {
	return BlockBehavior{Kind: BehaviorMap, Map: fn}
}

// FlatMapBlock returns the behavior that splices replacement blocks in
// place of a produced block.
func FlatMapBlock(fn func(ast.Block[ast.None]) []ast.Block[ast.None]) BlockBehavior {
	return BlockBehavior{Kind: BehaviorFlatMap, FlatMap: fn}
}

// ParseInline returns the default emit-as-produced inline behavior.
func ParseInline() InlineBehavior { return InlineBehavior{Kind: BehaviorParse} }

// IgnoreInline returns the behavior that disables an inline recognizer.
func IgnoreInline() InlineBehavior { return InlineBehavior{Kind: BehaviorIgnore} }

// SkipInline returns the behavior that consumes an inline element but
// emits nothing.
func SkipInline() InlineBehavior { return InlineBehavior{Kind: BehaviorSkip} }

// MapInline returns the behavior that rewrites a produced inline element.
func MapInline(fn func(ast.Inline[ast.None]) ast.Inline[ast.None]) InlineBehavior {
	return InlineBehavior{Kind: BehaviorMap, Map: fn}
}

// FlatMapInline returns the behavior that splices replacement inlines in
// place of a produced element.
func FlatMapInline(fn func(ast.Inline[ast.None]) []ast.Inline[ast.None]) InlineBehavior {
	return InlineBehavior{Kind: BehaviorFlatMap, FlatMap: fn}
}

// CustomBlockParser recognizes a block at the start of src. On success it
// returns the produced blocks, the remaining input, and true. The
// remaining input must be strictly shorter than src; returning rest equal
// to src is treated as a non-match, and a longer rest aborts the parse
// with ErrCustomParser.
type CustomBlockParser func(src string) (blocks []ast.Block[ast.None], rest string, ok bool)

// CustomInlineParser recognizes an inline element at the start of src,
// under the same consumption contract as CustomBlockParser.
type CustomInlineParser func(src string) (inlines []ast.Inline[ast.None], rest string, ok bool)

// Config aggregates per-element behaviors and custom parsers. The zero
// value is not usable; call NewConfig. A Config is read-only during
// parsing and may be shared by concurrent Parse calls.
type Config struct {
	blockBehaviors  map[ast.BlockKind]BlockBehavior
	inlineBehaviors map[ast.InlineKind]InlineBehavior

	customBlocks  []CustomBlockParser
	customInlines []CustomInlineParser
}

// NewConfig returns a configuration with every behavior set to Parse and
// no custom parsers.
func NewConfig() *Config {
	return &Config{
		blockBehaviors:  make(map[ast.BlockKind]BlockBehavior),
		inlineBehaviors: make(map[ast.InlineKind]InlineBehavior),
	}
}

// Clone returns an independent copy of the configuration.
func (c *Config) Clone() *Config {
	clone := NewConfig()
	for k, v := range c.blockBehaviors {
		clone.blockBehaviors[k] = v
	}
	for k, v := range c.inlineBehaviors {
		clone.inlineBehaviors[k] = v
	}
	clone.customBlocks = append([]CustomBlockParser(nil), c.customBlocks...)
	clone.customInlines = append([]CustomInlineParser(nil), c.customInlines...)
	return clone
}

func (c *Config) blockBehavior(kind ast.BlockKind) BlockBehavior {
	if b, ok := c.blockBehaviors[kind]; ok {
		return b
	}
	return ParseBlock()
}

func (c *Config) inlineBehavior(kind ast.InlineKind) InlineBehavior {
	if b, ok := c.inlineBehaviors[kind]; ok {
		return b
	}
	return ParseInline()
}

// WithBlockBehavior sets the behavior for an arbitrary block kind.
func (c *Config) WithBlockBehavior(kind ast.BlockKind, b BlockBehavior) *Config {
	c.blockBehaviors[kind] = b
	return c
}

// WithInlineBehavior sets the behavior for an arbitrary inline kind.
func (c *Config) WithInlineBehavior(kind ast.InlineKind, b InlineBehavior) *Config {
	c.inlineBehaviors[kind] = b
	return c
}

// WithBlockParagraphBehavior sets the paragraph behavior.
func (c *Config) WithBlockParagraphBehavior(b BlockBehavior) *Config {
	return c.WithBlockBehavior(ast.BlockParagraph, b)
}

// WithBlockHeadingBehavior sets the behavior for ATX and Setext headings.
func (c *Config) WithBlockHeadingBehavior(b BlockBehavior) *Config {
	return c.WithBlockBehavior(ast.BlockHeading, b)
}

// WithBlockThematicBreakBehavior sets the thematic break behavior.
func (c *Config) WithBlockThematicBreakBehavior(b BlockBehavior) *Config {
	return c.WithBlockBehavior(ast.BlockThematicBreak, b)
}

// WithBlockQuoteBehavior sets the blockquote behavior.
func (c *Config) WithBlockQuoteBehavior(b BlockBehavior) *Config {
	return c.WithBlockBehavior(ast.BlockQuoteKind, b)
}

// WithBlockListBehavior sets the list behavior.
func (c *Config) WithBlockListBehavior(b BlockBehavior) *Config {
	return c.WithBlockBehavior(ast.BlockList, b)
}

// WithBlockCodeBehavior sets the behavior for fenced and indented code
// blocks.
func (c *Config) WithBlockCodeBehavior(b BlockBehavior) *Config {
	return c.WithBlockBehavior(ast.BlockCode, b)
}

// WithBlockHTMLBehavior sets the HTML block behavior.
func (c *Config) WithBlockHTMLBehavior(b BlockBehavior) *Config {
	return c.WithBlockBehavior(ast.BlockHTML, b)
}

// WithBlockTableBehavior sets the table behavior.
func (c *Config) WithBlockTableBehavior(b BlockBehavior) *Config {
	return c.WithBlockBehavior(ast.BlockTable, b)
}

// WithBlockLinkReferenceDefinitionBehavior sets the link reference
// definition behavior. Skipped definitions are still collected for
// reference resolution; ignored ones are not recognized at all.
func (c *Config) WithBlockLinkReferenceDefinitionBehavior(b BlockBehavior) *Config {
	return c.WithBlockBehavior(ast.BlockLinkReferenceDefinition, b)
}

// WithBlockFootnoteDefinitionBehavior sets the footnote definition
// behavior.
func (c *Config) WithBlockFootnoteDefinitionBehavior(b BlockBehavior) *Config {
	return c.WithBlockBehavior(ast.BlockFootnoteDefinition, b)
}

// WithBlockGitHubAlertBehavior sets the GitHub alert behavior.
func (c *Config) WithBlockGitHubAlertBehavior(b BlockBehavior) *Config {
	return c.WithBlockBehavior(ast.BlockGitHubAlert, b)
}

// WithInlineTextBehavior sets the plain text behavior. Ignore is not
// meaningful for the text fallback and is treated as Parse.
func (c *Config) WithInlineTextBehavior(b InlineBehavior) *Config {
	return c.WithInlineBehavior(ast.InlineText, b)
}

// WithInlineEmphasisBehavior sets the single-delimiter emphasis behavior.
func (c *Config) WithInlineEmphasisBehavior(b InlineBehavior) *Config {
	return c.WithInlineBehavior(ast.InlineEmphasis, b)
}

// WithInlineStrongBehavior sets the double-delimiter emphasis behavior.
func (c *Config) WithInlineStrongBehavior(b InlineBehavior) *Config {
	return c.WithInlineBehavior(ast.InlineStrong, b)
}

// WithInlineStrikethroughBehavior sets the strikethrough behavior.
func (c *Config) WithInlineStrikethroughBehavior(b InlineBehavior) *Config {
	return c.WithInlineBehavior(ast.InlineStrikethrough, b)
}

// WithInlineCodeBehavior sets the code span behavior.
func (c *Config) WithInlineCodeBehavior(b InlineBehavior) *Config {
	return c.WithInlineBehavior(ast.InlineCode, b)
}

// WithInlineLinkBehavior sets the link behavior for inline and reference
// links.
func (c *Config) WithInlineLinkBehavior(b InlineBehavior) *Config {
	return c.WithInlineBehavior(ast.InlineLink, b)
}

// WithInlineImageBehavior sets the image behavior.
func (c *Config) WithInlineImageBehavior(b InlineBehavior) *Config {
	return c.WithInlineBehavior(ast.InlineImage, b)
}

// WithInlineAutolinkBehavior sets the autolink behavior.
func (c *Config) WithInlineAutolinkBehavior(b InlineBehavior) *Config {
	return c.WithInlineBehavior(ast.InlineAutolink, b)
}

// WithInlineHTMLBehavior sets the raw inline HTML behavior.
func (c *Config) WithInlineHTMLBehavior(b InlineBehavior) *Config {
	return c.WithInlineBehavior(ast.InlineHTML, b)
}

// WithInlineLineBreakBehavior sets the behavior for soft and hard line
// breaks.
func (c *Config) WithInlineLineBreakBehavior(b InlineBehavior) *Config {
	return c.WithInlineBehavior(ast.InlineLineBreak, b)
}

// WithInlineFootnoteReferenceBehavior sets the footnote reference
// behavior.
func (c *Config) WithInlineFootnoteReferenceBehavior(b InlineBehavior) *Config {
	return c.WithInlineBehavior(ast.InlineFootnoteReference, b)
}

// WithCustomBlockParser registers a custom block parser. Custom parsers
// run before the built-in grammar, in registration order.
func (c *Config) WithCustomBlockParser(p CustomBlockParser) *Config {
	c.customBlocks = append(c.customBlocks, p)
	return c
}

// WithCustomInlineParser registers a custom inline parser. Custom parsers
// run before the built-in grammar, in registration order.
func (c *Config) WithCustomInlineParser(p CustomInlineParser) *Config {
	c.customInlines = append(c.customInlines, p)
	return c
}
