package parser

import (
	"strings"

	"github.com/yaklabco/mdtool/pkg/ast"
	"golang.org/x/text/cases"
)

// labelFolder performs Unicode case folding for reference label matching.
var labelFolder = cases.Fold()

// NormalizeLabel prepares a link reference label for matching: leading
// and trailing whitespace is trimmed, interior whitespace runs collapse
// to a single space, and the result is case folded. Normalization is
// idempotent.
func NormalizeLabel(label string) string {
	return labelFolder.String(strings.Join(strings.Fields(label), " "))
}

// tryRefDef recognizes a link reference definition, which may span
// several lines: `[label]: destination "title"`.
func (p *parser) tryRefDef(lines []string) (block, int, bool) {
	if p.ignoredBlock(ast.BlockLinkReferenceDefinition) {
		return nil, 0, false
	}
	if indentation(lines[0]) > 3 {
		return nil, 0, false
	}
	// `[^label]:` belongs to the footnote recognizer.
	if strings.HasPrefix(strings.TrimLeft(lines[0], " "), "[^") {
		return nil, 0, false
	}

	src := strings.Join(lines, "\n")
	label, dest, title, consumed, ok := scanRefDef(src)
	if !ok {
		return nil, 0, false
	}
	n := strings.Count(src[:consumed], "\n") + 1

	p.addRef(label, dest, title)
	blk := p.emitBlock(ast.BlockLinkReferenceDefinition, &ast.LinkReferenceDefinition[ast.None]{
		Label:       label,
		Destination: dest,
		Title:       title,
	})
	return blk, n, true
}

// scanRefDef scans `[label]: dest` with an optional title, requiring the
// definition to end at a line boundary. consumed is the byte offset just
// past the last line of the definition (excluding its newline).
func scanRefDef(src string) (label, dest, title string, consumed int, ok bool) {
	i := indentation(src)
	if i > 3 {
		return "", "", "", 0, false
	}

	label, i, ok = scanLinkLabel(src, i)
	if !ok || i >= len(src) || src[i] != ':' {
		return "", "", "", 0, false
	}
	i++

	// Optional whitespace with at most one newline before the destination.
	i, ok = skipRefWhitespace(src, i)
	if !ok {
		return "", "", "", 0, false
	}

	dest, i, ok = scanLinkDestination(src, i)
	if !ok || dest == "" {
		return "", "", "", 0, false
	}

	afterDest := i
	// The destination alone must end its line for a title-less definition.
	destEndsLine := restOfLineBlank(src, i)

	j, wsOK := skipRefWhitespace(src, i)
	if wsOK && j > i {
		if t, k, tok := scanLinkTitle(src, j); tok && restOfLineBlank(src, k) {
			return label, dest, t, lineEnd(src, k), true
		}
	}

	if !destEndsLine {
		return "", "", "", 0, false
	}
	return label, dest, "", lineEnd(src, afterDest), true
}

// skipRefWhitespace consumes spaces and at most one newline.
func skipRefWhitespace(src string, i int) (int, bool) {
	sawNewline := false
	for i < len(src) {
		switch src[i] {
		case ' ':
			i++
		case '\n':
			if sawNewline {
				return i, false
			}
			sawNewline = true
			i++
		default:
			return i, true
		}
	}
	return i, true
}

func restOfLineBlank(src string, i int) bool {
	for ; i < len(src); i++ {
		switch src[i] {
		case ' ':
		case '\n':
			return true
		default:
			return false
		}
	}
	return true
}

// lineEnd returns the offset of the newline terminating the line
// containing offset i, or len(src).
func lineEnd(src string, i int) int {
	j := strings.IndexByte(src[i:], '\n')
	if j < 0 {
		return len(src)
	}
	return i + j
}

// scanLinkLabel scans `[label]` at offset i. Labels contain at least one
// non-whitespace character, no unescaped brackets, and at most 999 bytes.
func scanLinkLabel(src string, i int) (label string, next int, ok bool) {
	if i >= len(src) || src[i] != '[' {
		return "", 0, false
	}
	start := i + 1
	j := start
	for j < len(src) {
		switch src[j] {
		case '\\':
			j += 2
			continue
		case '[':
			return "", 0, false
		case ']':
			label = src[start:j]
			if j-start > 999 || strings.TrimSpace(label) == "" {
				return "", 0, false
			}
			return label, j + 1, true
		}
		j++
	}
	return "", 0, false
}

// scanLinkDestination scans `<...>` or a bare destination with balanced
// parentheses at offset i.
func scanLinkDestination(src string, i int) (dest string, next int, ok bool) {
	if i < len(src) && src[i] == '<' {
		j := i + 1
		var sb strings.Builder
		for j < len(src) {
			switch src[j] {
			case '>':
				return decodeEntities(sb.String()), j + 1, true
			case '<', '\n':
				return "", 0, false
			case '\\':
				if j+1 < len(src) && isASCIIPunct(src[j+1]) {
					sb.WriteByte(src[j+1])
					j += 2
					continue
				}
				sb.WriteByte('\\')
			default:
				sb.WriteByte(src[j])
			}
			j++
		}
		return "", 0, false
	}

	var sb strings.Builder
	depth := 0
	j := i
	for j < len(src) {
		c := src[j]
		switch {
		case c == ' ' || c == '\n':
			goto done
		case c == '(':
			depth++
			sb.WriteByte(c)
		case c == ')':
			if depth == 0 {
				goto done
			}
			depth--
			sb.WriteByte(c)
		case c == '\\' && j+1 < len(src) && isASCIIPunct(src[j+1]):
			sb.WriteByte(src[j+1])
			j++
		case c < 0x20:
			goto done
		default:
			sb.WriteByte(c)
		}
		j++
	}

done:
	if j == i {
		return "", 0, false
	}
	return decodeEntities(sb.String()), j, true
}

// scanLinkTitle scans a `"..."`, `'...'`, or `(...)` title at offset i.
func scanLinkTitle(src string, i int) (title string, next int, ok bool) {
	if i >= len(src) {
		return "", 0, false
	}
	open := src[i]
	var closer byte
	switch open {
	case '"', '\'':
		closer = open
	case '(':
		closer = ')'
	default:
		return "", 0, false
	}

	var sb strings.Builder
	j := i + 1
	for j < len(src) {
		c := src[j]
		switch {
		case c == closer:
			return decodeEntities(sb.String()), j + 1, true
		case c == open && open == '(':
			return "", 0, false
		case c == '\\' && j+1 < len(src) && isASCIIPunct(src[j+1]):
			sb.WriteByte(src[j+1])
			j++
		default:
			sb.WriteByte(c)
		}
		j++
	}
	return "", 0, false
}
