package parser

import (
	"github.com/yaklabco/mdtool/pkg/ast"
)

// processEmphasis resolves emphasis, strong, and strikethrough delimiters
// in ip.items at or above bottom. The pass is iterative over the
// delimiter list rather than recursive over the text, which keeps
// adversarial inputs like `*_*_*_...` from going exponential.
func (ip *inlineParser) processEmphasis(bottom int) {
	ip.flushText()

	pos := bottom
	for pos < len(ip.items) {
		d := ip.items[pos].d
		if d == nil || d.n == 0 || d.ch == '[' || !d.canClose {
			pos++
			continue
		}

		opener := ip.findOpener(bottom, pos, d)
		if opener < 0 {
			pos++
			continue
		}
		od := ip.items[opener].d

		use, kind, ok := ip.pairing(od, d)
		if !ok {
			pos++
			continue
		}

		inner := ip.flatten(ip.items[opener+1 : pos])
		if len(inner) == 0 {
			pos++
			continue
		}

		var node inline
		switch kind {
		case ast.InlineStrikethrough:
			node = &ast.Strikethrough[ast.None]{Content: inner}
		case ast.InlineStrong:
			node = &ast.Strong[ast.None]{Content: inner}
		default:
			node = &ast.Emphasis[ast.None]{Content: inner}
		}

		od.n -= use
		d.n -= use
		produced := ip.p.dispatchInline(kind, node)

		rebuilt := make([]inlineItem, 0, len(ip.items))
		rebuilt = append(rebuilt, ip.items[:opener]...)
		if od.n > 0 {
			rebuilt = append(rebuilt, ip.items[opener])
		}
		for _, n := range produced {
			rebuilt = append(rebuilt, inlineItem{node: n})
		}
		next := len(rebuilt)
		if d.n > 0 {
			rebuilt = append(rebuilt, ip.items[pos])
		}
		rebuilt = append(rebuilt, ip.items[pos+1:]...)
		ip.items = rebuilt
		pos = next
	}
}

// findOpener locates the nearest preceding compatible opener for closer
// d, honoring the CommonMark multiple-of-three rule.
func (ip *inlineParser) findOpener(bottom, pos int, d *delim) int {
	for j := pos - 1; j >= bottom; j-- {
		od := ip.items[j].d
		if od == nil || od.ch != d.ch || !od.canOpen || od.n == 0 {
			continue
		}
		if d.ch != '~' && (od.canClose || d.canOpen) &&
			(od.origN+d.origN)%3 == 0 &&
			(od.origN%3 != 0 || d.origN%3 != 0) {
			continue
		}
		return j
	}
	return -1
}

// pairing picks how many delimiter characters to consume and which
// element to build, respecting Ignore policies on emphasis and strong.
func (ip *inlineParser) pairing(od, d *delim) (use int, kind ast.InlineKind, ok bool) {
	if d.ch == '~' {
		return 2, ast.InlineStrikethrough, true
	}
	if od.n >= 2 && d.n >= 2 && !ip.ignored(ast.InlineStrong) {
		return 2, ast.InlineStrong, true
	}
	if ip.ignored(ast.InlineEmphasis) {
		return 0, 0, false
	}
	return 1, ast.InlineEmphasis, true
}
