package transform

import (
	"github.com/yaklabco/mdtool/pkg/ast"
)

// Transformer rewrites a document bottom-up. A nil function slot leaves
// the corresponding node class untouched. A non-nil function receives
// each node after its children have been transformed; its result is
// spliced in place of the node, so returning an empty slice drops the
// node and returning several splices them.
type Transformer[T any] struct {
	Block  func(ast.Block[T]) []ast.Block[T]
	Inline func(ast.Inline[T]) []ast.Inline[T]
}

// Apply transforms the document in place and returns it.
func (t Transformer[T]) Apply(doc *ast.Document[T]) *ast.Document[T] {
	doc.Blocks = t.applyBlocks(doc.Blocks)
	return doc
}

func (t Transformer[T]) applyBlocks(blocks []ast.Block[T]) []ast.Block[T] {
	out := make([]ast.Block[T], 0, len(blocks))
	for _, b := range blocks {
		t.descendBlock(b)
		if t.Block == nil {
			out = append(out, b)
			continue
		}
		out = append(out, t.Block(b)...)
	}
	return out
}

// descendBlock transforms the children held inside one block.
func (t Transformer[T]) descendBlock(b ast.Block[T]) {
	switch b := b.(type) {
	case *ast.Paragraph[T]:
		b.Content = t.applyInlines(b.Content)
	case *ast.Heading[T]:
		b.Content = t.applyInlines(b.Content)
	case *ast.BlockQuote[T]:
		b.Blocks = t.applyBlocks(b.Blocks)
	case *ast.List[T]:
		for i := range b.Items {
			b.Items[i].Blocks = t.applyBlocks(b.Items[i].Blocks)
		}
	case *ast.Table[T]:
		for i, cell := range b.Header {
			b.Header[i] = t.applyInlines(cell)
		}
		for _, row := range b.Rows {
			for i, cell := range row {
				row[i] = t.applyInlines(cell)
			}
		}
	case *ast.FootnoteDefinition[T]:
		b.Blocks = t.applyBlocks(b.Blocks)
	case *ast.GitHubAlert[T]:
		b.Blocks = t.applyBlocks(b.Blocks)
	}
}

func (t Transformer[T]) applyInlines(ins []ast.Inline[T]) []ast.Inline[T] {
	out := make([]ast.Inline[T], 0, len(ins))
	for _, in := range ins {
		switch in := in.(type) {
		case *ast.Emphasis[T]:
			in.Content = t.applyInlines(in.Content)
		case *ast.Strong[T]:
			in.Content = t.applyInlines(in.Content)
		case *ast.Strikethrough[T]:
			in.Content = t.applyInlines(in.Content)
		case *ast.Link[T]:
			in.Content = t.applyInlines(in.Content)
		case *ast.Image[T]:
			in.Alt = t.applyInlines(in.Alt)
		}
		if t.Inline == nil {
			out = append(out, in)
			continue
		}
		out = append(out, t.Inline(in)...)
	}
	return out
}
