// Package transform provides rewriting, querying, and user-data mapping
// utilities over parsed document trees.
package transform

import (
	"github.com/yaklabco/mdtool/pkg/ast"
)

// MapUserData rebuilds a document with every node's user-data slot
// replaced by f's result. Nodes are visited depth-first in pre-order:
// the document first, then each block before its children, with inline
// content after the owning block.
func MapUserData[T, U any](doc *ast.Document[T], f func(T) U) *ast.Document[U] {
	out := &ast.Document[U]{UserData: f(doc.UserData)}
	out.Blocks = mapBlocks(doc.Blocks, f)
	return out
}

func mapBlocks[T, U any](blocks []ast.Block[T], f func(T) U) []ast.Block[U] {
	if blocks == nil {
		return nil
	}
	out := make([]ast.Block[U], 0, len(blocks))
	for _, b := range blocks {
		out = append(out, mapBlock(b, f))
	}
	return out
}

func mapBlock[T, U any](b ast.Block[T], f func(T) U) ast.Block[U] {
	switch b := b.(type) {
	case *ast.Paragraph[T]:
		return &ast.Paragraph[U]{
			UserData: f(b.UserData),
			Content:  mapInlines(b.Content, f),
		}
	case *ast.Heading[T]:
		return &ast.Heading[U]{
			Style:    b.Style,
			Level:    b.Level,
			UserData: f(b.UserData),
			Content:  mapInlines(b.Content, f),
		}
	case *ast.ThematicBreak[T]:
		return &ast.ThematicBreak[U]{UserData: f(b.UserData)}
	case *ast.BlockQuote[T]:
		return &ast.BlockQuote[U]{
			UserData: f(b.UserData),
			Blocks:   mapBlocks(b.Blocks, f),
		}
	case *ast.List[T]:
		out := &ast.List[U]{
			Ordered:      b.Ordered,
			BulletMarker: b.BulletMarker,
			Start:        b.Start,
			Delimiter:    b.Delimiter,
			Tight:        b.Tight,
			UserData:     f(b.UserData),
		}
		for _, item := range b.Items {
			out.Items = append(out.Items, ast.ListItem[U]{
				Task:     item.Task,
				UserData: f(item.UserData),
				Blocks:   mapBlocks(item.Blocks, f),
			})
		}
		return out
	case *ast.CodeBlock[T]:
		return &ast.CodeBlock[U]{
			Fenced:   b.Fenced,
			Info:     b.Info,
			Literal:  b.Literal,
			UserData: f(b.UserData),
		}
	case *ast.HTMLBlock[T]:
		return &ast.HTMLBlock[U]{Content: b.Content, UserData: f(b.UserData)}
	case *ast.Table[T]:
		out := &ast.Table[U]{
			Alignments: append([]ast.Alignment(nil), b.Alignments...),
			UserData:   f(b.UserData),
			Header:     mapTableRow(b.Header, f),
		}
		for _, row := range b.Rows {
			out.Rows = append(out.Rows, mapTableRow(row, f))
		}
		return out
	case *ast.LinkReferenceDefinition[T]:
		return &ast.LinkReferenceDefinition[U]{
			Label:       b.Label,
			Destination: b.Destination,
			Title:       b.Title,
			UserData:    f(b.UserData),
		}
	case *ast.FootnoteDefinition[T]:
		return &ast.FootnoteDefinition[U]{
			Label:    b.Label,
			UserData: f(b.UserData),
			Blocks:   mapBlocks(b.Blocks, f),
		}
	case *ast.GitHubAlert[T]:
		return &ast.GitHubAlert[U]{
			Alert:      b.Alert,
			CustomName: b.CustomName,
			UserData:   f(b.UserData),
			Blocks:     mapBlocks(b.Blocks, f),
		}
	default:
		return &ast.Empty[U]{UserData: f(b.(*ast.Empty[T]).UserData)}
	}
}

func mapTableRow[T, U any](row ast.TableRow[T], f func(T) U) ast.TableRow[U] {
	out := make(ast.TableRow[U], 0, len(row))
	for _, cell := range row {
		out = append(out, ast.TableCell[U](mapInlines(cell, f)))
	}
	return out
}

func mapInlines[T, U any](ins []ast.Inline[T], f func(T) U) []ast.Inline[U] {
	if ins == nil {
		return nil
	}
	out := make([]ast.Inline[U], 0, len(ins))
	for _, in := range ins {
		out = append(out, mapInline(in, f))
	}
	return out
}

func mapInline[T, U any](in ast.Inline[T], f func(T) U) ast.Inline[U] {
	switch in := in.(type) {
	case *ast.Text[T]:
		return &ast.Text[U]{Content: in.Content, UserData: f(in.UserData)}
	case *ast.Emphasis[T]:
		return &ast.Emphasis[U]{
			UserData: f(in.UserData),
			Content:  mapInlines(in.Content, f),
		}
	case *ast.Strong[T]:
		return &ast.Strong[U]{
			UserData: f(in.UserData),
			Content:  mapInlines(in.Content, f),
		}
	case *ast.Strikethrough[T]:
		return &ast.Strikethrough[U]{
			UserData: f(in.UserData),
			Content:  mapInlines(in.Content, f),
		}
	case *ast.Code[T]:
		return &ast.Code[U]{Content: in.Content, UserData: f(in.UserData)}
	case *ast.Link[T]:
		return &ast.Link[U]{
			Destination: in.Destination,
			Title:       in.Title,
			UserData:    f(in.UserData),
			Content:     mapInlines(in.Content, f),
		}
	case *ast.Image[T]:
		return &ast.Image[U]{
			Destination: in.Destination,
			Title:       in.Title,
			UserData:    f(in.UserData),
			Alt:         mapInlines(in.Alt, f),
		}
	case *ast.Autolink[T]:
		return &ast.Autolink[U]{URL: in.URL, Email: in.Email, UserData: f(in.UserData)}
	case *ast.HTML[T]:
		return &ast.HTML[U]{Content: in.Content, UserData: f(in.UserData)}
	case *ast.LineBreak[T]:
		return &ast.LineBreak[U]{Hard: in.Hard, UserData: f(in.UserData)}
	default:
		fr := in.(*ast.FootnoteReference[T])
		return &ast.FootnoteReference[U]{Label: fr.Label, UserData: f(fr.UserData)}
	}
}
