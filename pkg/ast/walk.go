package ast

// BlockWalkFunc is the callback signature for block walks. Return a
// non-nil error to stop the walk.
type BlockWalkFunc[T any] func(b Block[T]) error

// InlineWalkFunc is the callback signature for inline walks. Return a
// non-nil error to stop the walk.
type InlineWalkFunc[T any] func(in Inline[T]) error

// WalkBlocks performs a pre-order traversal of every block in the
// document, descending into blockquotes, lists, footnote definitions, and
// alerts. If fn returns a non-nil error the walk stops immediately and
// returns that error.
func WalkBlocks[T any](doc *Document[T], fn BlockWalkFunc[T]) error {
	if doc == nil {
		return nil
	}
	return walkBlockSeq(doc.Blocks, fn)
}

func walkBlockSeq[T any](blocks []Block[T], fn BlockWalkFunc[T]) error {
	for _, b := range blocks {
		if err := fn(b); err != nil {
			return err
		}
		for _, nested := range ChildBlocks(b) {
			if err := walkBlockSeq(nested, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// WalkInlines visits every inline in the document in document order,
// descending into nested inline content (emphasis, links, image alt).
func WalkInlines[T any](doc *Document[T], fn InlineWalkFunc[T]) error {
	return WalkBlocks(doc, func(b Block[T]) error {
		for _, seq := range InlineContent(b) {
			if err := walkInlineSeq(seq, fn); err != nil {
				return err
			}
		}
		return nil
	})
}

func walkInlineSeq[T any](inlines []Inline[T], fn InlineWalkFunc[T]) error {
	for _, in := range inlines {
		if err := fn(in); err != nil {
			return err
		}
		if err := walkInlineSeq(ChildInlines(in), fn); err != nil {
			return err
		}
	}
	return nil
}

// ChildBlocks returns the nested block sequences directly contained in b.
// Leaf blocks return nil.
func ChildBlocks[T any](b Block[T]) [][]Block[T] {
	switch b := b.(type) {
	case *BlockQuote[T]:
		return [][]Block[T]{b.Blocks}
	case *List[T]:
		seqs := make([][]Block[T], 0, len(b.Items))
		for i := range b.Items {
			seqs = append(seqs, b.Items[i].Blocks)
		}
		return seqs
	case *FootnoteDefinition[T]:
		return [][]Block[T]{b.Blocks}
	case *GitHubAlert[T]:
		return [][]Block[T]{b.Blocks}
	default:
		return nil
	}
}

// InlineContent returns the inline sequences directly contained in b.
// Blocks without inline content return nil.
func InlineContent[T any](b Block[T]) [][]Inline[T] {
	switch b := b.(type) {
	case *Paragraph[T]:
		return [][]Inline[T]{b.Content}
	case *Heading[T]:
		return [][]Inline[T]{b.Content}
	case *Table[T]:
		var seqs [][]Inline[T]
		for _, cell := range b.Header {
			seqs = append(seqs, cell)
		}
		for _, row := range b.Rows {
			for _, cell := range row {
				seqs = append(seqs, cell)
			}
		}
		return seqs
	default:
		return nil
	}
}

// ChildInlines returns the inline children directly contained in in.
// Leaf inlines return nil.
func ChildInlines[T any](in Inline[T]) []Inline[T] {
	switch in := in.(type) {
	case *Emphasis[T]:
		return in.Content
	case *Strong[T]:
		return in.Content
	case *Strikethrough[T]:
		return in.Content
	case *Link[T]:
		return in.Content
	case *Image[T]:
		return in.Alt
	default:
		return nil
	}
}

// FindAllBlocks returns all blocks matching the predicate, in document
// order.
func FindAllBlocks[T any](doc *Document[T], predicate func(Block[T]) bool) []Block[T] {
	var result []Block[T]
	//nolint:errcheck // the callback never fails
	WalkBlocks(doc, func(b Block[T]) error {
		if predicate(b) {
			result = append(result, b)
		}
		return nil
	})
	return result
}

// FindFirstBlock returns the first block matching the predicate, or nil.
func FindFirstBlock[T any](doc *Document[T], predicate func(Block[T]) bool) Block[T] {
	var found Block[T]
	//nolint:errcheck // errStopWalk is expected
	WalkBlocks(doc, func(b Block[T]) error {
		if predicate(b) {
			found = b
			return errStopWalk
		}
		return nil
	})
	return found
}

// FindAllInlines returns all inlines matching the predicate, in document
// order.
func FindAllInlines[T any](doc *Document[T], predicate func(Inline[T]) bool) []Inline[T] {
	var result []Inline[T]
	//nolint:errcheck // the callback never fails
	WalkInlines(doc, func(in Inline[T]) error {
		if predicate(in) {
			result = append(result, in)
		}
		return nil
	})
	return result
}

// FindFirstInline returns the first inline matching the predicate, or nil.
func FindFirstInline[T any](doc *Document[T], predicate func(Inline[T]) bool) Inline[T] {
	var found Inline[T]
	//nolint:errcheck // errStopWalk is expected
	WalkInlines(doc, func(in Inline[T]) error {
		if predicate(in) {
			found = in
			return errStopWalk
		}
		return nil
	})
	return found
}

// CountBlocks counts blocks matching the predicate.
func CountBlocks[T any](doc *Document[T], predicate func(Block[T]) bool) int {
	return len(FindAllBlocks(doc, predicate))
}

// CountInlines counts inlines matching the predicate.
func CountInlines[T any](doc *Document[T], predicate func(Inline[T]) bool) int {
	return len(FindAllInlines(doc, predicate))
}

// errStopWalk is a sentinel error used to stop walking early.
var errStopWalk = &stopWalkError{}

type stopWalkError struct{}

func (e *stopWalkError) Error() string {
	return "stop walk"
}
