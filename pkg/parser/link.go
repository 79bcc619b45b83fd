package parser

import (
	"strings"

	"github.com/yaklabco/mdtool/pkg/ast"
)

// closeBracket resolves a `]` against the most recent bracket opener,
// trying the inline form first, then the full, collapsed, and shortcut
// reference forms. On failure the brackets stay as literal text.
func (ip *inlineParser) closeBracket(i int) int {
	src := ip.src
	ip.flushText()

	opener := -1
	for j := len(ip.items) - 1; j >= 0; j-- {
		if d := ip.items[j].d; d != nil && d.ch == '[' {
			opener = j
			break
		}
	}
	if opener < 0 {
		ip.buf.WriteByte(']')
		return i + 1
	}
	od := ip.items[opener].d
	if !od.active {
		ip.removeDelimAsText(opener)
		ip.buf.WriteByte(']')
		return i + 1
	}

	var dest, title string
	end := 0
	matched := false

	if i+1 < len(src) && src[i+1] == '(' {
		if d, t, k, ok := scanInlineLinkSuffix(src, i+1); ok {
			dest, title, end, matched = d, t, k, true
		}
	}
	if !matched {
		label := ""
		labelEnd := i + 1
		switch {
		case strings.HasPrefix(src[i+1:], "[]"):
			label = src[od.srcPos:i]
			labelEnd = i + 3
		case i+1 < len(src) && src[i+1] == '[':
			if l, k, ok := scanLinkLabel(src, i+1); ok {
				label = l
				labelEnd = k
			}
		default:
			label = src[od.srcPos:i]
		}
		if strings.TrimSpace(label) != "" {
			if def, ok := ip.p.lookupRef(label); ok {
				dest, title = def.destination, def.title
				end = labelEnd
				matched = true
			}
		}
	}

	if !matched {
		ip.removeDelimAsText(opener)
		ip.buf.WriteByte(']')
		return i + 1
	}

	ip.processEmphasis(opener + 1)
	children := ip.flatten(ip.items[opener+1:])
	ip.items = ip.items[:opener]

	var kind ast.InlineKind
	var node inline
	if od.image {
		kind = ast.InlineImage
		node = &ast.Image[ast.None]{Destination: dest, Title: title, Alt: children}
	} else {
		kind = ast.InlineLink
		node = &ast.Link[ast.None]{Destination: dest, Title: title, Content: children}
		// Links do not nest; deactivate enclosing openers.
		for _, it := range ip.items {
			if it.d != nil && it.d.ch == '[' && !it.d.image {
				it.d.active = false
			}
		}
	}
	for _, out := range ip.p.dispatchInline(kind, node) {
		ip.items = append(ip.items, inlineItem{node: out})
	}
	return end
}

// removeDelimAsText replaces a pending delimiter with its literal
// spelling.
func (ip *inlineParser) removeDelimAsText(idx int) {
	ip.items[idx] = inlineItem{
		node: &ast.Text[ast.None]{Content: delimText(ip.items[idx].d)},
	}
}

// scanInlineLinkSuffix parses `(dest "title")` starting at the opening
// parenthesis and returns the offset just past the closing one.
func scanInlineLinkSuffix(src string, i int) (dest, title string, end int, ok bool) {
	j := skipLinkWhitespace(src, i+1)

	if j < len(src) && src[j] != ')' {
		d, next, dok := scanLinkDestination(src, j)
		if !dok {
			return "", "", 0, false
		}
		dest = d
		j = next
	}

	k := skipLinkWhitespace(src, j)
	if k > j && k < len(src) {
		if t, next, tok := scanLinkTitle(src, k); tok {
			title = t
			j = next
		} else {
			j = k
		}
	} else {
		j = k
	}

	j = skipLinkWhitespace(src, j)
	if j >= len(src) || src[j] != ')' {
		return "", "", 0, false
	}
	return dest, title, j + 1, true
}

func skipLinkWhitespace(src string, i int) int {
	for i < len(src) && (src[i] == ' ' || src[i] == '\n') {
		i++
	}
	return i
}
