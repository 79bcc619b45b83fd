package ast_test

import (
	"errors"
	"testing"

	"github.com/yaklabco/mdtool/pkg/ast"
)

func sampleDoc() *ast.Document[ast.None] {
	return &ast.Document[ast.None]{Blocks: []ast.Block[ast.None]{
		&ast.Heading[ast.None]{
			Style: ast.HeadingATX, Level: 1,
			Content: []ast.Inline[ast.None]{&ast.Text[ast.None]{Content: "title"}},
		},
		&ast.BlockQuote[ast.None]{Blocks: []ast.Block[ast.None]{
			&ast.Paragraph[ast.None]{Content: []ast.Inline[ast.None]{
				&ast.Emphasis[ast.None]{Content: []ast.Inline[ast.None]{
					&ast.Text[ast.None]{Content: "inner"},
				}},
			}},
		}},
		&ast.List[ast.None]{BulletMarker: '-', Tight: true, Items: []ast.ListItem[ast.None]{
			{Blocks: []ast.Block[ast.None]{
				&ast.Paragraph[ast.None]{Content: []ast.Inline[ast.None]{
					&ast.Text[ast.None]{Content: "item"},
				}},
			}},
		}},
	}}
}

func TestWalkBlocks_VisitsNestedBlocksInOrder(t *testing.T) {
	t.Parallel()

	var kinds []ast.BlockKind
	err := ast.WalkBlocks(sampleDoc(), func(b ast.Block[ast.None]) error {
		kinds = append(kinds, b.Kind())
		return nil
	})
	if err != nil {
		t.Fatalf("WalkBlocks: %v", err)
	}

	want := []ast.BlockKind{
		ast.BlockHeading,
		ast.BlockQuoteKind,
		ast.BlockParagraph,
		ast.BlockList,
		ast.BlockParagraph,
	}
	if len(kinds) != len(want) {
		t.Fatalf("visited %d blocks, want %d: %v", len(kinds), len(want), kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("visit %d: kind = %v, want %v", i, kinds[i], want[i])
		}
	}
}

func TestWalkBlocks_StopsOnError(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	count := 0
	err := ast.WalkBlocks(sampleDoc(), func(ast.Block[ast.None]) error {
		count++
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if count != 1 {
		t.Errorf("callback ran %d times, want 1", count)
	}
}

func TestWalkInlines_DescendsIntoNestedContent(t *testing.T) {
	t.Parallel()

	var texts []string
	err := ast.WalkInlines(sampleDoc(), func(in ast.Inline[ast.None]) error {
		if txt, ok := in.(*ast.Text[ast.None]); ok {
			texts = append(texts, txt.Content)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("WalkInlines: %v", err)
	}
	want := []string{"title", "inner", "item"}
	if len(texts) != len(want) {
		t.Fatalf("texts = %v, want %v", texts, want)
	}
	for i := range want {
		if texts[i] != want[i] {
			t.Errorf("text %d = %q, want %q", i, texts[i], want[i])
		}
	}
}

func TestFindHelpers(t *testing.T) {
	t.Parallel()

	doc := sampleDoc()

	paras := ast.FindAllBlocks(doc, func(b ast.Block[ast.None]) bool {
		return b.Kind() == ast.BlockParagraph
	})
	if len(paras) != 2 {
		t.Errorf("found %d paragraphs, want 2", len(paras))
	}

	first := ast.FindFirstBlock(doc, func(b ast.Block[ast.None]) bool {
		return b.Kind() == ast.BlockParagraph
	})
	if first == nil {
		t.Fatal("FindFirstBlock returned nil")
	}

	if got := ast.CountInlines(doc, func(in ast.Inline[ast.None]) bool {
		return in.Kind() == ast.InlineText
	}); got != 3 {
		t.Errorf("CountInlines = %d, want 3", got)
	}

	missing := ast.FindFirstInline(doc, func(in ast.Inline[ast.None]) bool {
		return in.Kind() == ast.InlineAutolink
	})
	if missing != nil {
		t.Errorf("expected nil for absent kind, got %v", missing)
	}
}

func TestWalkBlocks_NilDocument(t *testing.T) {
	t.Parallel()

	if err := ast.WalkBlocks[ast.None](nil, nil); err != nil {
		t.Fatalf("nil doc walk: %v", err)
	}
}

func TestChildHelpers(t *testing.T) {
	t.Parallel()

	table := &ast.Table[ast.None]{
		Alignments: []ast.Alignment{ast.AlignNone},
		Header:     ast.TableRow[ast.None]{{&ast.Text[ast.None]{Content: "h"}}},
		Rows: []ast.TableRow[ast.None]{
			{{&ast.Text[ast.None]{Content: "c"}}},
		},
	}
	if got := len(ast.InlineContent[ast.None](table)); got != 2 {
		t.Errorf("table inline sequences = %d, want 2", got)
	}
	if ast.ChildBlocks[ast.None](table) != nil {
		t.Error("table has no child blocks")
	}

	img := &ast.Image[ast.None]{Alt: []ast.Inline[ast.None]{&ast.Text[ast.None]{Content: "a"}}}
	if got := len(ast.ChildInlines[ast.None](img)); got != 1 {
		t.Errorf("image child inlines = %d, want 1", got)
	}
}
