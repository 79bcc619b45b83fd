package transform

import (
	"github.com/yaklabco/mdtool/pkg/ast"
)

// Pipeline composes transform steps applied in registration order.
type Pipeline[T any] struct {
	steps []func(*ast.Document[T]) *ast.Document[T]
}

// NewPipeline returns an empty pipeline.
func NewPipeline[T any]() *Pipeline[T] {
	return &Pipeline[T]{}
}

// Step appends an arbitrary document transformation.
func (p *Pipeline[T]) Step(fn func(*ast.Document[T]) *ast.Document[T]) *Pipeline[T] {
	p.steps = append(p.steps, fn)
	return p
}

// TransformText appends a step rewriting every text node's content.
func (p *Pipeline[T]) TransformText(fn func(string) string) *Pipeline[T] {
	return p.Step(func(doc *ast.Document[T]) *ast.Document[T] {
		return TransformText(doc, fn)
	})
}

// TransformLinkURLs appends a step rewriting every link destination.
func (p *Pipeline[T]) TransformLinkURLs(fn func(string) string) *Pipeline[T] {
	return p.Step(func(doc *ast.Document[T]) *ast.Document[T] {
		return TransformLinkURLs(doc, fn)
	})
}

// TransformImageURLs appends a step rewriting every image destination.
func (p *Pipeline[T]) TransformImageURLs(fn func(string) string) *Pipeline[T] {
	return p.Step(func(doc *ast.Document[T]) *ast.Document[T] {
		return TransformImageURLs(doc, fn)
	})
}

// Apply runs all steps on the document.
func (p *Pipeline[T]) Apply(doc *ast.Document[T]) *ast.Document[T] {
	for _, step := range p.steps {
		doc = step(doc)
	}
	return doc
}

// TransformText rewrites the content of every text node.
func TransformText[T any](doc *ast.Document[T], fn func(string) string) *ast.Document[T] {
	return Transformer[T]{
		Inline: func(in ast.Inline[T]) []ast.Inline[T] {
			if t, ok := in.(*ast.Text[T]); ok {
				t.Content = fn(t.Content)
			}
			return []ast.Inline[T]{in}
		},
	}.Apply(doc)
}

// TransformLinkURLs rewrites every link destination, including autolink
// URLs and link reference definitions.
func TransformLinkURLs[T any](doc *ast.Document[T], fn func(string) string) *ast.Document[T] {
	return Transformer[T]{
		Block: func(b ast.Block[T]) []ast.Block[T] {
			if def, ok := b.(*ast.LinkReferenceDefinition[T]); ok {
				def.Destination = fn(def.Destination)
			}
			return []ast.Block[T]{b}
		},
		Inline: func(in ast.Inline[T]) []ast.Inline[T] {
			switch in := in.(type) {
			case *ast.Link[T]:
				in.Destination = fn(in.Destination)
			case *ast.Autolink[T]:
				in.URL = fn(in.URL)
			}
			return []ast.Inline[T]{in}
		},
	}.Apply(doc)
}

// TransformImageURLs rewrites every image destination.
func TransformImageURLs[T any](doc *ast.Document[T], fn func(string) string) *ast.Document[T] {
	return Transformer[T]{
		Inline: func(in ast.Inline[T]) []ast.Inline[T] {
			if img, ok := in.(*ast.Image[T]); ok {
				img.Destination = fn(img.Destination)
			}
			return []ast.Inline[T]{in}
		},
	}.Apply(doc)
}
