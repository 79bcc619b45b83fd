// Package ast defines the typed Markdown document tree produced by the
// parser and consumed by the renderers and the transform toolkit.
//
// Every node type is generic over a user-data slot T. The parser always
// produces the None instantiation; downstream passes may attach IDs or
// other metadata by mapping a document into a different instantiation
// (see the transform package).
package ast

// None is the user-data type for documents that carry no extra data.
type None = struct{}

// Document is the root of a parsed Markdown document. Blocks appear in
// source order. Every node owns its children exclusively; the tree holds
// no aliases and no back-pointers.
type Document[T any] struct {
	Blocks []Block[T]

	UserData T
}

// BlockKind classifies block-level nodes.
type BlockKind uint8

// Block kinds, one per Block variant.
const (
	BlockParagraph BlockKind = iota
	BlockHeading
	BlockThematicBreak
	BlockQuoteKind
	BlockList
	BlockCode
	BlockHTML
	BlockTable
	BlockLinkReferenceDefinition
	BlockFootnoteDefinition
	BlockGitHubAlert
	BlockEmpty
)

// String returns a human-readable name for the block kind.
func (k BlockKind) String() string {
	switch k {
	case BlockParagraph:
		return "paragraph"
	case BlockHeading:
		return "heading"
	case BlockThematicBreak:
		return "thematic-break"
	case BlockQuoteKind:
		return "blockquote"
	case BlockList:
		return "list"
	case BlockCode:
		return "code-block"
	case BlockHTML:
		return "html-block"
	case BlockTable:
		return "table"
	case BlockLinkReferenceDefinition:
		return "link-reference-definition"
	case BlockFootnoteDefinition:
		return "footnote-definition"
	case BlockGitHubAlert:
		return "github-alert"
	case BlockEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// Block is the closed set of block-level nodes. Only the variant types in
// this package implement it.
type Block[T any] interface {
	Kind() BlockKind

	// block seals the interface to this package.
	block(T)
}

// Paragraph is an ordinary paragraph of inline content.
type Paragraph[T any] struct {
	Content []Inline[T]

	UserData T
}

// HeadingStyle distinguishes ATX (`# Heading`) from Setext (underlined)
// headings.
type HeadingStyle uint8

const (
	// HeadingATX is a `#`-prefixed heading, level 1-6.
	HeadingATX HeadingStyle = iota

	// HeadingSetext is an underlined heading, level 1-2.
	HeadingSetext
)

// Heading is an ATX or Setext heading with inline content.
type Heading[T any] struct {
	// Style records the source syntax of the heading.
	Style HeadingStyle

	// Level is 1-6 for ATX headings and 1-2 for Setext headings.
	Level int

	Content []Inline[T]

	UserData T
}

// ThematicBreak is a horizontal rule.
type ThematicBreak[T any] struct {
	UserData T
}

// BlockQuote is a quoted sequence of blocks.
type BlockQuote[T any] struct {
	Blocks []Block[T]

	UserData T
}

// List is a bullet or ordered list.
type List[T any] struct {
	// Ordered is true for `1.` / `1)` style lists.
	Ordered bool

	// BulletMarker is the bullet character ('-', '+', or '*') for bullet
	// lists. Zero for ordered lists.
	BulletMarker byte

	// Start is the starting number for ordered lists.
	Start int

	// Delimiter is '.' or ')' for ordered lists. Zero for bullet lists.
	Delimiter byte

	// Tight is true if no items are separated by blank lines and no item
	// contains an interior blank line.
	Tight bool

	Items []ListItem[T]

	UserData T
}

// TaskState is the GFM task-list checkbox state of a list item.
type TaskState uint8

const (
	// TaskNone means the item is not a task-list item.
	TaskNone TaskState = iota

	// TaskUnchecked is an unchecked checkbox (`[ ]`).
	TaskUnchecked

	// TaskChecked is a checked checkbox (`[x]`).
	TaskChecked
)

// ListItem is a single item within a List. Block children are preserved
// in document order.
type ListItem[T any] struct {
	Task TaskState

	Blocks []Block[T]

	UserData T
}

// CodeBlock is an indented or fenced code block.
type CodeBlock[T any] struct {
	// Fenced is true for ``` / ~~~ blocks, false for indented blocks.
	Fenced bool

	// Info is the info string following the opening fence. Empty for
	// indented blocks.
	Info string

	// Literal is the raw text of the block, final newline included.
	Literal string

	UserData T
}

// HTMLBlock is a raw HTML block, kept verbatim.
type HTMLBlock[T any] struct {
	Content string

	UserData T
}

// Alignment is the column alignment of a table column.
type Alignment uint8

const (
	// AlignNone leaves the column unaligned.
	AlignNone Alignment = iota

	AlignLeft
	AlignCenter
	AlignRight
)

// String returns the delimiter-row spelling of the alignment.
func (a Alignment) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "none"
	}
}

// TableCell is a single table cell of inline content.
type TableCell[T any] []Inline[T]

// TableRow is a row of cells.
type TableRow[T any] []TableCell[T]

// Table is a GFM pipe table. Every row has exactly len(Alignments) cells;
// the parser pads short rows with empty cells and truncates long ones.
type Table[T any] struct {
	Alignments []Alignment

	Header TableRow[T]

	Rows []TableRow[T]

	UserData T
}

// LinkReferenceDefinition records a `[label]: destination "title"` block.
// Definitions are preserved in the tree for round-tripping; the parser
// also consults them when resolving reference links.
type LinkReferenceDefinition[T any] struct {
	// Label is the source spelling of the label. Use NormalizeLabel for
	// matching.
	Label string

	Destination string

	// Title is empty when the definition has no title.
	Title string

	UserData T
}

// FootnoteDefinition is a `[^label]: ...` block.
type FootnoteDefinition[T any] struct {
	// Label without the leading `^`.
	Label string

	Blocks []Block[T]

	UserData T
}

// AlertKind is the kind of a GitHub alert block.
type AlertKind uint8

const (
	AlertNote AlertKind = iota
	AlertTip
	AlertImportant
	AlertWarning
	AlertCaution

	// AlertCustom is a non-standard `[!NAME]` marker; the name is carried
	// on the GitHubAlert node.
	AlertCustom
)

// String returns the upper-case marker spelling of the alert kind.
func (k AlertKind) String() string {
	switch k {
	case AlertNote:
		return "NOTE"
	case AlertTip:
		return "TIP"
	case AlertImportant:
		return "IMPORTANT"
	case AlertWarning:
		return "WARNING"
	case AlertCaution:
		return "CAUTION"
	default:
		return "CUSTOM"
	}
}

// GitHubAlert is a blockquote whose first line is an `[!KIND]` marker.
type GitHubAlert[T any] struct {
	Alert AlertKind

	// CustomName is the marker name for AlertCustom alerts.
	CustomName string

	Blocks []Block[T]

	UserData T
}

// Empty is the placeholder emitted for blocks consumed under the Skip
// behavior.
type Empty[T any] struct {
	UserData T
}

// Kind implementations.

func (*Paragraph[T]) Kind() BlockKind     { return BlockParagraph }
func (*Heading[T]) Kind() BlockKind       { return BlockHeading }
func (*ThematicBreak[T]) Kind() BlockKind { return BlockThematicBreak }
func (*BlockQuote[T]) Kind() BlockKind    { return BlockQuoteKind }
func (*List[T]) Kind() BlockKind          { return BlockList }
func (*CodeBlock[T]) Kind() BlockKind     { return BlockCode }
func (*HTMLBlock[T]) Kind() BlockKind     { return BlockHTML }
func (*Table[T]) Kind() BlockKind         { return BlockTable }
func (*LinkReferenceDefinition[T]) Kind() BlockKind {
	return BlockLinkReferenceDefinition
}
func (*FootnoteDefinition[T]) Kind() BlockKind { return BlockFootnoteDefinition }
func (*GitHubAlert[T]) Kind() BlockKind        { return BlockGitHubAlert }
func (*Empty[T]) Kind() BlockKind              { return BlockEmpty }

func (*Paragraph[T]) block(T)               {}
func (*Heading[T]) block(T)                 {}
func (*ThematicBreak[T]) block(T)           {}
func (*BlockQuote[T]) block(T)              {}
func (*List[T]) block(T)                    {}
func (*CodeBlock[T]) block(T)               {}
func (*HTMLBlock[T]) block(T)               {}
func (*Table[T]) block(T)                   {}
func (*LinkReferenceDefinition[T]) block(T) {}
func (*FootnoteDefinition[T]) block(T)      {}
func (*GitHubAlert[T]) block(T)             {}
func (*Empty[T]) block(T)                   {}
