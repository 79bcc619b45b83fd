package markdown_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdtool/pkg/ast"
	"github.com/yaklabco/mdtool/pkg/parser"
	"github.com/yaklabco/mdtool/pkg/render/markdown"
)

type none = ast.None

func text(s string) ast.Inline[none] {
	return &ast.Text[none]{Content: s}
}

func renderDoc(t *testing.T, blocks ...ast.Block[none]) string {
	t.Helper()
	return markdown.Render(&ast.Document[none]{Blocks: blocks}, markdown.DefaultConfig())
}

func TestRender_Heading(t *testing.T) {
	t.Parallel()

	got := renderDoc(t, &ast.Heading[none]{
		Style:   ast.HeadingATX,
		Level:   2,
		Content: []ast.Inline[none]{text("Title")},
	})
	assert.Equal(t, "## Title\n", got)
}

func TestRender_SetextHeading(t *testing.T) {
	t.Parallel()

	got := renderDoc(t, &ast.Heading[none]{
		Style:   ast.HeadingSetext,
		Level:   1,
		Content: []ast.Inline[none]{text("Title")},
	})
	assert.Equal(t, "Title\n=====\n", got)
}

func TestRender_EmphasisAndStrong(t *testing.T) {
	t.Parallel()

	got := renderDoc(t, &ast.Paragraph[none]{Content: []ast.Inline[none]{
		text("a "),
		&ast.Emphasis[none]{Content: []ast.Inline[none]{text("b")}},
		text(" "),
		&ast.Strong[none]{Content: []ast.Inline[none]{text("c")}},
	}})
	assert.Equal(t, "a *b* **c**\n", got)
}

func TestRender_TextEscaping(t *testing.T) {
	t.Parallel()

	got := renderDoc(t, &ast.Paragraph[none]{Content: []ast.Inline[none]{
		text("literal *stars* and [brackets]"),
	}})
	assert.Equal(t, `literal \*stars\* and \[brackets\]`+"\n", got)
}

func TestRender_CodeSpanGrowsFence(t *testing.T) {
	t.Parallel()

	got := renderDoc(t, &ast.Paragraph[none]{Content: []ast.Inline[none]{
		&ast.Code[none]{Content: "a ` b"},
	}})
	assert.Equal(t, "``a ` b``\n", got)
}

func TestRender_Link(t *testing.T) {
	t.Parallel()

	got := renderDoc(t, &ast.Paragraph[none]{Content: []ast.Inline[none]{
		&ast.Link[none]{
			Destination: "/u",
			Title:       "t",
			Content:     []ast.Inline[none]{text("x")},
		},
	}})
	assert.Equal(t, "[x](/u \"t\")\n", got)
}

func TestRender_DestinationWithSpaces(t *testing.T) {
	t.Parallel()

	got := renderDoc(t, &ast.Paragraph[none]{Content: []ast.Inline[none]{
		&ast.Link[none]{
			Destination: "/a b",
			Content:     []ast.Inline[none]{text("x")},
		},
	}})
	assert.Equal(t, "[x](</a b>)\n", got)
}

func TestRender_TightAndLooseLists(t *testing.T) {
	t.Parallel()

	items := []ast.ListItem[none]{
		{Blocks: []ast.Block[none]{&ast.Paragraph[none]{Content: []ast.Inline[none]{text("a")}}}},
		{Blocks: []ast.Block[none]{&ast.Paragraph[none]{Content: []ast.Inline[none]{text("b")}}}},
	}

	tight := renderDoc(t, &ast.List[none]{BulletMarker: '-', Tight: true, Items: items})
	assert.Equal(t, " - a\n - b\n", tight)

	loose := renderDoc(t, &ast.List[none]{BulletMarker: '-', Items: items})
	assert.Equal(t, " - a\n\n - b\n", loose)
}

func TestRender_OrderedListNumbersIncrement(t *testing.T) {
	t.Parallel()

	got := renderDoc(t, &ast.List[none]{
		Ordered:   true,
		Start:     3,
		Delimiter: '.',
		Tight:     true,
		Items: []ast.ListItem[none]{
			{Blocks: []ast.Block[none]{&ast.Paragraph[none]{Content: []ast.Inline[none]{text("a")}}}},
			{Blocks: []ast.Block[none]{&ast.Paragraph[none]{Content: []ast.Inline[none]{text("b")}}}},
		},
	})
	assert.Equal(t, " 3. a\n 4. b\n", got)
}

func TestRender_ConfigListOptions(t *testing.T) {
	t.Parallel()

	cfg := markdown.DefaultConfig().WithSpacesBeforeListItem(0)
	got := markdown.Render(&ast.Document[none]{Blocks: []ast.Block[none]{
		&ast.List[none]{BulletMarker: '*', Tight: true, Items: []ast.ListItem[none]{
			{Blocks: []ast.Block[none]{&ast.Paragraph[none]{Content: []ast.Inline[none]{text("a")}}}},
		}},
	}}, cfg)
	assert.Equal(t, "* a\n", got)
}

func TestRender_BlockQuote(t *testing.T) {
	t.Parallel()

	got := renderDoc(t, &ast.BlockQuote[none]{Blocks: []ast.Block[none]{
		&ast.Paragraph[none]{Content: []ast.Inline[none]{text("a")}},
		&ast.Paragraph[none]{Content: []ast.Inline[none]{text("b")}},
	}})
	assert.Equal(t, "> a\n>\n> b\n", got)
}

func TestRender_Alert(t *testing.T) {
	t.Parallel()

	got := renderDoc(t, &ast.GitHubAlert[none]{
		Alert: ast.AlertCaution,
		Blocks: []ast.Block[none]{
			&ast.Paragraph[none]{Content: []ast.Inline[none]{text("hot")}},
		},
	})
	assert.Equal(t, "> [!CAUTION]\n> hot\n", got)
}

func TestRender_FencedCode(t *testing.T) {
	t.Parallel()

	got := renderDoc(t, &ast.CodeBlock[none]{
		Fenced:  true,
		Info:    "go",
		Literal: "x := 1\n",
	})
	assert.Equal(t, "```go\nx := 1\n```\n", got)
}

func TestRender_FenceGrowsPastBackticks(t *testing.T) {
	t.Parallel()

	got := renderDoc(t, &ast.CodeBlock[none]{
		Fenced:  true,
		Literal: "```\n",
	})
	assert.Equal(t, "````\n```\n````\n", got)
}

func TestRender_Table(t *testing.T) {
	t.Parallel()

	got := renderDoc(t, &ast.Table[none]{
		Alignments: []ast.Alignment{ast.AlignNone, ast.AlignCenter},
		Header: ast.TableRow[none]{
			{text("a")}, {text("b")},
		},
		Rows: []ast.TableRow[none]{
			{{text("1")}, {text("2")}},
		},
	})
	assert.Equal(t, "| a   | b   |\n| --- | :-: |\n| 1   | 2   |\n", got)
}

func TestRender_EmptyDocument(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", renderDoc(t))
}

func TestRender_SkippedBlocksAreElided(t *testing.T) {
	t.Parallel()

	got := renderDoc(t,
		&ast.Empty[none]{},
		&ast.Paragraph[none]{Content: []ast.Inline[none]{text("a")}},
	)
	assert.Equal(t, "a\n", got)
}

func TestRender_RoundTripPreservesStructure(t *testing.T) {
	t.Parallel()

	input := "# Title\n\npara *emph* text\n\n - one\n - two\n"
	doc, err := parser.Parse(parser.NewConfig(), input)
	require.NoError(t, err)

	rendered := markdown.Render(doc, markdown.DefaultConfig())
	assert.Equal(t, input, rendered)
}
