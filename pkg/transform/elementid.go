package transform

import (
	"github.com/yaklabco/mdtool/pkg/ast"
)

// ElementID uniquely identifies a node within one document.
type ElementID uint64

// IDGenerator produces sequential element IDs.
type IDGenerator struct {
	next uint64
}

// NewIDGenerator returns a generator starting at 1.
func NewIDGenerator() *IDGenerator {
	return &IDGenerator{next: 1}
}

// StartingFrom returns a generator starting at the given value.
func StartingFrom(start uint64) *IDGenerator {
	return &IDGenerator{next: start}
}

// Generate returns the next ID.
func (g *IDGenerator) Generate() ElementID {
	id := ElementID(g.next)
	g.next++
	return id
}

// AssignIDs maps a document into one whose user-data slots carry
// sequential element IDs, assigned depth-first in pre-order starting
// at 1 (the document root takes ID 1).
func AssignIDs[T any](doc *ast.Document[T]) *ast.Document[ElementID] {
	gen := NewIDGenerator()
	return MapUserData(doc, func(T) ElementID {
		return gen.Generate()
	})
}
