package transform_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/yaklabco/mdtool/pkg/ast"
	"github.com/yaklabco/mdtool/pkg/parser"
	"github.com/yaklabco/mdtool/pkg/transform"
)

type none = ast.None

func mustParse(t *testing.T, input string) *ast.Document[none] {
	t.Helper()
	doc, err := parser.Parse(parser.NewConfig(), input)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return doc
}

func TestTransformText(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, "hello *world*")
	doc = transform.TransformText(doc, strings.ToUpper)

	want := []ast.Block[none]{
		&ast.Paragraph[none]{Content: []ast.Inline[none]{
			&ast.Text[none]{Content: "HELLO "},
			&ast.Emphasis[none]{Content: []ast.Inline[none]{
				&ast.Text[none]{Content: "WORLD"},
			}},
		}},
	}
	if diff := cmp.Diff(want, doc.Blocks); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestTransformLinkURLs(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, "[a](/x) <https://h.example>\n\n[r]: /y")
	doc = transform.TransformLinkURLs(doc, func(u string) string {
		return "https://cdn.example" + strings.TrimPrefix(u, "https://h.example")
	})

	link := doc.Blocks[0].(*ast.Paragraph[none]).Content[0].(*ast.Link[none])
	if link.Destination != "https://cdn.example/x" {
		t.Errorf("link destination = %q", link.Destination)
	}
	def := doc.Blocks[1].(*ast.LinkReferenceDefinition[none])
	if def.Destination != "https://cdn.example/y" {
		t.Errorf("definition destination = %q", def.Destination)
	}
}

func TestTransformImageURLs(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, "![a](/img.png)")
	doc = transform.TransformImageURLs(doc, func(u string) string { return "/cdn" + u })
	img := doc.Blocks[0].(*ast.Paragraph[none]).Content[0].(*ast.Image[none])
	if img.Destination != "/cdn/img.png" {
		t.Errorf("image destination = %q", img.Destination)
	}
}

func TestTransformer_DropAndSplice(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, "# h\n\npara\n\n---")
	doc = transform.Transformer[none]{
		Block: func(b ast.Block[none]) []ast.Block[none] {
			switch b.Kind() {
			case ast.BlockThematicBreak:
				// Drop.
				return nil
			case ast.BlockHeading:
				// Splice into two copies.
				return []ast.Block[none]{b, b}
			default:
				return []ast.Block[none]{b}
			}
		},
	}.Apply(doc)

	kinds := make([]ast.BlockKind, 0, len(doc.Blocks))
	for _, b := range doc.Blocks {
		kinds = append(kinds, b.Kind())
	}
	want := []ast.BlockKind{ast.BlockHeading, ast.BlockHeading, ast.BlockParagraph}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Errorf("kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestTransformer_BottomUp(t *testing.T) {
	t.Parallel()

	// The blockquote sees its paragraph child already transformed.
	doc := mustParse(t, "> inner")
	var order []ast.BlockKind
	transform.Transformer[none]{
		Block: func(b ast.Block[none]) []ast.Block[none] {
			order = append(order, b.Kind())
			return []ast.Block[none]{b}
		},
	}.Apply(doc)

	want := []ast.BlockKind{ast.BlockParagraph, ast.BlockQuoteKind}
	if diff := cmp.Diff(want, order); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestPipeline_AppliesInOrder(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, "ab")
	doc = transform.NewPipeline[none]().
		TransformText(func(s string) string { return s + "c" }).
		TransformText(strings.ToUpper).
		Apply(doc)

	txt := doc.Blocks[0].(*ast.Paragraph[none]).Content[0].(*ast.Text[none])
	if txt.Content != "ABC" {
		t.Errorf("content = %q, want ABC", txt.Content)
	}
}

func TestMapUserData(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, "# h\n\n*x*")
	n := 0
	mapped := transform.MapUserData(doc, func(none) int {
		n++
		return n
	})

	if mapped.UserData != 1 {
		t.Errorf("document user data = %d, want 1", mapped.UserData)
	}
	h := mapped.Blocks[0].(*ast.Heading[int])
	if h.UserData != 2 {
		t.Errorf("heading user data = %d, want 2", h.UserData)
	}
	// Structure is preserved.
	if len(mapped.Blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(mapped.Blocks))
	}
	para := mapped.Blocks[1].(*ast.Paragraph[int])
	em := para.Content[0].(*ast.Emphasis[int])
	if len(em.Content) != 1 {
		t.Errorf("emphasis content length = %d", len(em.Content))
	}
}

func TestAssignIDs(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, "para one\n\npara two")
	withIDs := transform.AssignIDs(doc)

	if withIDs.UserData != transform.ElementID(1) {
		t.Errorf("root ID = %d, want 1", withIDs.UserData)
	}
	seen := map[transform.ElementID]bool{withIDs.UserData: true}
	for _, b := range withIDs.Blocks {
		p := b.(*ast.Paragraph[transform.ElementID])
		if seen[p.UserData] {
			t.Errorf("duplicate ID %d", p.UserData)
		}
		seen[p.UserData] = true
	}
}

func TestIDGenerator(t *testing.T) {
	t.Parallel()

	gen := transform.NewIDGenerator()
	if gen.Generate() != 1 || gen.Generate() != 2 {
		t.Error("sequential generation broken")
	}

	custom := transform.StartingFrom(1000)
	if custom.Generate() != 1000 {
		t.Error("StartingFrom broken")
	}
}
