package parser

import (
	"strings"

	"github.com/yaklabco/mdtool/pkg/ast"
)

func sameListKind(a, b listMarker) bool {
	if a.ordered != b.ordered {
		return false
	}
	if a.ordered {
		return a.delimiter == b.delimiter
	}
	return a.bullet == b.bullet
}

func (p *parser) tryList(lines []string) (block, int, bool) {
	first, ok := parseListMarker(lines[0])
	if !ok || p.ignoredBlock(ast.BlockList) {
		return nil, 0, false
	}

	list := &ast.List[ast.None]{
		Ordered:      first.ordered,
		BulletMarker: first.bullet,
		Start:        first.start,
		Delimiter:    first.delimiter,
		Tight:        true,
	}

	i := 0
	for i < len(lines) {
		m, ok := parseListMarker(lines[i])
		if !ok || !sameListKind(first, m) {
			break
		}

		itemLines, consumed, interiorBlank := p.gatherListItem(lines[i:], m)
		i += consumed
		if interiorBlank {
			list.Tight = false
		}

		item := ast.ListItem[ast.None]{Task: ast.TaskNone}
		if len(itemLines) > 0 {
			itemLines[0], item.Task = stripTaskMarker(itemLines[0])
		}
		item.Blocks = p.parseBlocks(itemLines)
		list.Items = append(list.Items, item)

		// Blank lines between items make the list loose, but only if
		// another item of the same list actually follows.
		j := i
		for j < len(lines) && isBlank(lines[j]) {
			j++
		}
		if j > i && j < len(lines) {
			if next, ok := parseListMarker(lines[j]); ok && sameListKind(first, next) {
				list.Tight = false
				i = j
			}
		}
	}

	if p.skippedBlock(ast.BlockList) {
		return &ast.Empty[ast.None]{}, i, true
	}
	return list, i, true
}

// gatherListItem collects the lines belonging to one list item, stripped
// of the item's content indentation. interiorBlank reports a blank line
// between the item's own blocks.
func (p *parser) gatherListItem(lines []string, m listMarker) (content []string, consumed int, interiorBlank bool) {
	content = []string{m.rest}
	consumed = 1
	for consumed < len(lines) {
		l := lines[consumed]
		switch {
		case isBlank(l):
			content = append(content, "")
			consumed++
		case indentation(l) >= m.contentIndent:
			content = append(content, stripIndent(l, m.contentIndent))
			consumed++
		default:
			_, isMarker := parseListMarker(l)
			lastBlank := len(content) > 0 && isBlank(content[len(content)-1])
			if !isMarker && !lastBlank && !p.startsBlock(l, lines[consumed:]) {
				// Lazy paragraph continuation.
				content = append(content, strings.TrimLeft(l, " "))
				consumed++
				continue
			}
			goto done
		}
	}

done:
	// Trailing blank lines separate this item from the next block; they do
	// not belong to the item.
	// The marker line itself always stays consumed, even for an empty
	// item.
	trailing := 0
	for len(content)-trailing > 1 && isBlank(content[len(content)-1-trailing]) {
		trailing++
	}
	content = content[:len(content)-trailing]
	consumed -= trailing

	for _, l := range content {
		if isBlank(l) {
			interiorBlank = true
			break
		}
	}
	return content, consumed, interiorBlank
}

// stripTaskMarker recognizes a GFM task-list checkbox at the start of the
// item's first line.
func stripTaskMarker(line string) (string, ast.TaskState) {
	switch {
	case strings.HasPrefix(line, "[ ] "):
		return line[4:], ast.TaskUnchecked
	case line == "[ ]":
		return "", ast.TaskUnchecked
	case strings.HasPrefix(line, "[x] "), strings.HasPrefix(line, "[X] "):
		return line[4:], ast.TaskChecked
	case line == "[x]", line == "[X]":
		return "", ast.TaskChecked
	default:
		return line, ast.TaskNone
	}
}
