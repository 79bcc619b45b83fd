package parser

import (
	"strings"
	"unicode/utf8"

	"github.com/yaklabco/mdtool/pkg/ast"
)

// delim is an unresolved delimiter: an emphasis run (`*`, `_`, `~~`) or a
// link/image opener awaiting its closing bracket.
type delim struct {
	ch    byte
	image bool

	// n is the number of delimiter characters still unconsumed; origN is
	// the original run length, used by the multiple-of-three rule.
	n     int
	origN int

	canOpen  bool
	canClose bool

	// active is cleared on `[` openers once a link encloses them.
	active bool

	// srcPos is the source offset just past the run, used to slice the
	// raw label text for reference links.
	srcPos int
}

// inlineItem is one entry in the inline work list: either a finished node
// or a pending delimiter.
type inlineItem struct {
	node inline
	d    *delim
}

type inlineParser struct {
	p     *parser
	src   string
	items []inlineItem
	buf   strings.Builder
}

// parseInlines tokenizes the inline text of one block and resolves
// emphasis and links.
func (p *parser) parseInlines(src string) []inline {
	if src == "" {
		return nil
	}
	ip := &inlineParser{p: p, src: src}
	ip.run()
	ip.processEmphasis(0)
	return ip.flatten(ip.items)
}

func (ip *inlineParser) ignored(kind ast.InlineKind) bool {
	return ip.p.cfg.inlineBehavior(kind).Kind == BehaviorIgnore
}

func (ip *inlineParser) flushText() {
	if ip.buf.Len() == 0 {
		return
	}
	ip.items = append(ip.items, inlineItem{
		node: &ast.Text[ast.None]{Content: ip.buf.String()},
	})
	ip.buf.Reset()
}

// emit routes a recognized inline element through its behavior policy.
// Ignore is decided by the recognizer before consuming input.
func (ip *inlineParser) emit(kind ast.InlineKind, node inline) {
	ip.flushText()
	for _, out := range ip.p.dispatchInline(kind, node) {
		ip.items = append(ip.items, inlineItem{node: out})
	}
}

// dispatchInline applies the Skip/Map/FlatMap policies to a produced
// inline element.
func (p *parser) dispatchInline(kind ast.InlineKind, node inline) []inline {
	beh := p.cfg.inlineBehavior(kind)
	switch beh.Kind {
	case BehaviorSkip:
		return nil
	case BehaviorMap:
		if beh.Map != nil {
			node = beh.Map(node)
		}
		return []inline{node}
	case BehaviorFlatMap:
		if beh.FlatMap != nil {
			return beh.FlatMap(node)
		}
		return []inline{node}
	default:
		return []inline{node}
	}
}

func (ip *inlineParser) run() {
	src := ip.src
	i := 0
	for i < len(src) && ip.p.err == nil {
		if len(ip.p.cfg.customInlines) > 0 {
			if next, ok := ip.tryCustomInlines(i); ok {
				i = next
				continue
			}
		}

		c := src[i]
		switch c {
		case '\n':
			i = ip.lineBreak(i)
		case '\\':
			i = ip.backslash(i)
		case '&':
			if decoded, n, ok := parseEntity(src[i:]); ok {
				ip.buf.WriteString(decoded)
				i += n
			} else {
				ip.buf.WriteByte('&')
				i++
			}
		case '`':
			i = ip.codeSpan(i)
		case '<':
			i = ip.angleBracket(i)
		case '[':
			i = ip.openBracket(i, false)
		case '!':
			if i+1 < len(src) && src[i+1] == '[' {
				i = ip.openBracket(i+1, true)
			} else {
				ip.buf.WriteByte('!')
				i++
			}
		case ']':
			i = ip.closeBracket(i)
		case '*', '_':
			i = ip.emphasisRun(i)
		case '~':
			i = ip.tildeRun(i)
		default:
			ip.buf.WriteByte(c)
			i++
		}
	}
}

func (ip *inlineParser) tryCustomInlines(i int) (int, bool) {
	src := ip.src[i:]
	for _, cp := range ip.p.cfg.customInlines {
		nodes, rest, ok := cp(src)
		if !ok {
			continue
		}
		if len(rest) == len(src) {
			// A zero-length consume counts as a failed match.
			continue
		}
		if len(rest) > len(src) {
			ip.p.failCustom("custom inline parser")
			return i, true
		}
		ip.flushText()
		for _, n := range nodes {
			ip.items = append(ip.items, inlineItem{node: n})
		}
		return i + len(src) - len(rest), true
	}
	return i, false
}

// lineBreak handles a newline: two or more trailing spaces make it hard,
// otherwise it is soft. Leading spaces of the next line are consumed.
func (ip *inlineParser) lineBreak(i int) int {
	hard := ip.trimTrailingSpaces() >= 2
	i++
	for i < len(ip.src) && ip.src[i] == ' ' {
		i++
	}
	if ip.ignored(ast.InlineLineBreak) {
		ip.buf.WriteByte('\n')
		return i
	}
	ip.emit(ast.InlineLineBreak, &ast.LineBreak[ast.None]{Hard: hard})
	return i
}

// trimTrailingSpaces removes trailing spaces from the pending text buffer
// and returns how many were removed.
func (ip *inlineParser) trimTrailingSpaces() int {
	s := ip.buf.String()
	trimmed := strings.TrimRight(s, " ")
	if len(trimmed) != len(s) {
		ip.buf.Reset()
		ip.buf.WriteString(trimmed)
	}
	return len(s) - len(trimmed)
}

func (ip *inlineParser) backslash(i int) int {
	src := ip.src
	if i+1 >= len(src) {
		ip.buf.WriteByte('\\')
		return i + 1
	}
	next := src[i+1]
	switch {
	case next == '\n':
		if ip.ignored(ast.InlineLineBreak) {
			ip.buf.WriteString("\\\n")
		} else {
			ip.trimTrailingSpaces()
			ip.emit(ast.InlineLineBreak, &ast.LineBreak[ast.None]{Hard: true})
		}
		i += 2
		for i < len(src) && src[i] == ' ' {
			i++
		}
		return i
	case isASCIIPunct(next):
		ip.buf.WriteByte(next)
		return i + 2
	default:
		ip.buf.WriteByte('\\')
		return i + 1
	}
}

// codeSpan matches a backtick run against the next run of equal length.
func (ip *inlineParser) codeSpan(i int) int {
	src := ip.src
	n := runLength(src, i, '`')
	if ip.ignored(ast.InlineCode) {
		ip.buf.WriteString(src[i : i+n])
		return i + n
	}

	j := i + n
	for j < len(src) {
		if src[j] != '`' {
			j++
			continue
		}
		m := runLength(src, j, '`')
		if m == n {
			content := strings.ReplaceAll(src[i+n:j], "\n", " ")
			content = normalizeCodeSpan(content)
			ip.emit(ast.InlineCode, &ast.Code[ast.None]{Content: content})
			return j + m
		}
		j += m
	}

	// No closing run; the backticks are literal.
	ip.buf.WriteString(src[i : i+n])
	return i + n
}

// normalizeCodeSpan strips one space from each end when the content
// starts and ends with a space and is not entirely spaces.
func normalizeCodeSpan(s string) string {
	if len(s) >= 2 && s[0] == ' ' && s[len(s)-1] == ' ' && strings.Trim(s, " ") != "" {
		return s[1 : len(s)-1]
	}
	return s
}

func runLength(s string, i int, c byte) int {
	n := 0
	for i+n < len(s) && s[i+n] == c {
		n++
	}
	return n
}

// emphasisRun pushes a `*` or `_` delimiter run with its flanking flags.
func (ip *inlineParser) emphasisRun(i int) int {
	src := ip.src
	c := src[i]
	n := runLength(src, i, c)

	prev := runeBefore(src, i)
	next := runeAfter(src, i+n)

	leftFlanking := !isUnicodeWhitespace(next) &&
		(!isUnicodePunct(next) || isUnicodeWhitespace(prev) || isUnicodePunct(prev))
	rightFlanking := !isUnicodeWhitespace(prev) &&
		(!isUnicodePunct(prev) || isUnicodeWhitespace(next) || isUnicodePunct(next))

	var canOpen, canClose bool
	if c == '_' {
		canOpen = leftFlanking && (!rightFlanking || isUnicodePunct(prev))
		canClose = rightFlanking && (!leftFlanking || isUnicodePunct(next))
	} else {
		canOpen = leftFlanking
		canClose = rightFlanking
	}

	ip.flushText()
	ip.items = append(ip.items, inlineItem{d: &delim{
		ch:       c,
		n:        n,
		origN:    n,
		canOpen:  canOpen,
		canClose: canClose,
		active:   true,
		srcPos:   i + n,
	}})
	return i + n
}

// tildeRun pushes a strikethrough delimiter for exactly double tildes.
func (ip *inlineParser) tildeRun(i int) int {
	src := ip.src
	n := runLength(src, i, '~')
	if n != 2 || ip.ignored(ast.InlineStrikethrough) {
		ip.buf.WriteString(src[i : i+n])
		return i + n
	}

	prev := runeBefore(src, i)
	next := runeAfter(src, i+n)
	leftFlanking := !isUnicodeWhitespace(next) &&
		(!isUnicodePunct(next) || isUnicodeWhitespace(prev) || isUnicodePunct(prev))
	rightFlanking := !isUnicodeWhitespace(prev) &&
		(!isUnicodePunct(prev) || isUnicodeWhitespace(next) || isUnicodePunct(next))

	ip.flushText()
	ip.items = append(ip.items, inlineItem{d: &delim{
		ch:       '~',
		n:        n,
		origN:    n,
		canOpen:  leftFlanking,
		canClose: rightFlanking,
		active:   true,
		srcPos:   i + n,
	}})
	return i + n
}

// runeBefore returns the rune ending at offset i, or a space at the start
// of the text.
func runeBefore(s string, i int) rune {
	if i <= 0 {
		return ' '
	}
	r, _ := utf8.DecodeLastRuneInString(s[:i])
	return r
}

// runeAfter returns the rune starting at offset i, or a space at the end
// of the text.
func runeAfter(s string, i int) rune {
	if i >= len(s) {
		return ' '
	}
	r, _ := utf8.DecodeRuneInString(s[i:])
	return r
}

// openBracket pushes a link or image opener. i is the offset of the `[`.
func (ip *inlineParser) openBracket(i int, image bool) int {
	src := ip.src

	// Footnote references are recognized at the bracket.
	if !image && i+1 < len(src) && src[i+1] == '^' && !ip.ignored(ast.InlineFootnoteReference) {
		if label, next, ok := scanFootnoteLabel(src, i); ok {
			ip.emit(ast.InlineFootnoteReference, &ast.FootnoteReference[ast.None]{Label: label})
			return next
		}
	}

	kind := ast.InlineLink
	if image {
		kind = ast.InlineImage
	}
	if ip.ignored(kind) {
		if image {
			ip.buf.WriteString("![")
		} else {
			ip.buf.WriteByte('[')
		}
		return i + 1
	}

	ip.flushText()
	ip.items = append(ip.items, inlineItem{d: &delim{
		ch:     '[',
		image:  image,
		n:      1,
		origN:  1,
		active: true,
		srcPos: i + 1,
	}})
	return i + 1
}

// scanFootnoteLabel scans `[^label]` with a non-empty label free of
// whitespace and brackets.
func scanFootnoteLabel(s string, i int) (label string, next int, ok bool) {
	j := i + 2
	start := j
	for j < len(s) {
		c := s[j]
		if c == ']' {
			if j == start {
				return "", 0, false
			}
			return s[start:j], j + 1, true
		}
		if c == '[' || c == ' ' || c == '\n' {
			return "", 0, false
		}
		j++
	}
	return "", 0, false
}

// flatten converts leftover delimiters to literal text, coalesces
// adjacent text runs, and applies the text behavior policy.
func (ip *inlineParser) flatten(items []inlineItem) []inline {
	var out []inline
	var text strings.Builder

	flushRun := func() {
		if text.Len() == 0 {
			return
		}
		node := &ast.Text[ast.None]{Content: text.String()}
		text.Reset()
		beh := ip.p.cfg.inlineBehavior(ast.InlineText)
		switch beh.Kind {
		case BehaviorSkip:
		case BehaviorMap:
			mapped := inline(node)
			if beh.Map != nil {
				mapped = beh.Map(node)
			}
			out = append(out, mapped)
		case BehaviorFlatMap:
			if beh.FlatMap != nil {
				out = append(out, beh.FlatMap(node)...)
			} else {
				out = append(out, node)
			}
		default:
			out = append(out, node)
		}
	}

	for _, it := range items {
		switch {
		case it.d != nil:
			text.WriteString(delimText(it.d))
		case it.node != nil:
			if t, isText := it.node.(*ast.Text[ast.None]); isText {
				text.WriteString(t.Content)
				continue
			}
			flushRun()
			out = append(out, it.node)
		}
	}
	flushRun()
	return out
}

// delimText is the literal spelling of an unresolved delimiter.
func delimText(d *delim) string {
	if d.ch == '[' {
		if d.image {
			return "!["
		}
		return "["
	}
	return strings.Repeat(string(d.ch), d.n)
}
