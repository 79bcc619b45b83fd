package parser

import (
	"strings"

	"github.com/yaklabco/mdtool/pkg/ast"
)

// htmlBlockType1Tags open a type-1 HTML block whose end condition is a
// matching closing tag rather than a blank line.
var htmlBlockType1Tags = []string{"pre", "script", "style", "textarea"}

// htmlBlockType6Tags is the CommonMark list of known block-level tag
// names for type-6 HTML blocks.
var htmlBlockType6Tags = map[string]bool{
	"address": true, "article": true, "aside": true, "base": true,
	"basefont": true, "blockquote": true, "body": true, "caption": true,
	"center": true, "col": true, "colgroup": true, "dd": true,
	"details": true, "dialog": true, "dir": true, "div": true, "dl": true,
	"dt": true, "fieldset": true, "figcaption": true, "figure": true,
	"footer": true, "form": true, "frame": true, "frameset": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"head": true, "header": true, "hr": true, "html": true, "iframe": true,
	"legend": true, "li": true, "link": true, "main": true, "menu": true,
	"menuitem": true, "nav": true, "noframes": true, "ol": true,
	"optgroup": true, "option": true, "p": true, "param": true,
	"search": true, "section": true, "summary": true, "table": true,
	"tbody": true, "td": true, "tfoot": true, "th": true, "thead": true,
	"title": true, "tr": true, "track": true, "ul": true,
}

// htmlBlockStart classifies a line as one of the seven CommonMark HTML
// block start conditions, returning 0 when none applies. Type 7 cannot
// interrupt a paragraph.
func htmlBlockStart(line string, interrupting bool) int {
	if indentation(line) > 3 {
		return 0
	}
	s := strings.TrimLeft(line, " ")
	if len(s) < 2 || s[0] != '<' {
		return 0
	}

	lower := strings.ToLower(s)
	for _, tag := range htmlBlockType1Tags {
		if strings.HasPrefix(lower, "<"+tag) {
			after := len(tag) + 1
			if len(s) == after || s[after] == ' ' || s[after] == '>' {
				return 1
			}
		}
	}
	if strings.HasPrefix(s, "<!--") {
		return 2
	}
	if strings.HasPrefix(s, "<?") {
		return 3
	}
	if strings.HasPrefix(s, "<!") && len(s) > 2 && isASCIILetter(s[2]) {
		return 4
	}
	if strings.HasPrefix(s, "<![CDATA[") {
		return 5
	}

	name, rest, closing := scanTagName(s)
	if name == "" {
		return 0
	}
	if htmlBlockType6Tags[strings.ToLower(name)] {
		if rest == "" || rest[0] == ' ' || rest[0] == '>' ||
			strings.HasPrefix(rest, "/>") {
			return 6
		}
		return 0
	}
	if interrupting {
		return 0
	}
	// Type 7: a complete open or close tag alone on its line.
	if full, ok := scanCompleteTag(s, closing); ok && strings.TrimSpace(full) == "" {
		return 7
	}
	return 0
}

// scanTagName extracts the tag name after `<` or `</`.
func scanTagName(s string) (name, rest string, closing bool) {
	i := 1
	if i < len(s) && s[i] == '/' {
		closing = true
		i++
	}
	start := i
	for i < len(s) && (isASCIILetter(s[i]) || (i > start && (isDigit(s[i]) || s[i] == '-'))) {
		i++
	}
	if i == start {
		return "", "", false
	}
	return s[start:i], s[i:], closing
}

// scanCompleteTag consumes attributes (for open tags) and the closing
// `>`, returning what follows on the line.
func scanCompleteTag(s string, closing bool) (rest string, ok bool) {
	name, r, _ := scanTagName(s)
	if name == "" {
		return "", false
	}
	i := 0
	if !closing {
		for i < len(r) {
			j := skipHTMLAttribute(r[i:])
			if j == 0 {
				break
			}
			i += j
		}
	}
	for i < len(r) && r[i] == ' ' {
		i++
	}
	if i < len(r) && r[i] == '/' && !closing {
		i++
	}
	if i >= len(r) || r[i] != '>' {
		return "", false
	}
	return r[i+1:], true
}

// skipHTMLAttribute consumes one `name` or `name=value` attribute with
// its leading whitespace, returning the number of bytes consumed.
func skipHTMLAttribute(s string) int {
	i := 0
	for i < len(s) && s[i] == ' ' {
		i++
	}
	if i == 0 || i >= len(s) {
		return 0
	}
	if !isASCIILetter(s[i]) && s[i] != '_' && s[i] != ':' {
		return 0
	}
	for i < len(s) && (isAlphanumeric(s[i]) || strings.IndexByte("_.:-", s[i]) >= 0) {
		i++
	}
	j := i
	for j < len(s) && s[j] == ' ' {
		j++
	}
	if j >= len(s) || s[j] != '=' {
		return i
	}
	j++
	for j < len(s) && s[j] == ' ' {
		j++
	}
	if j >= len(s) {
		return i
	}
	switch s[j] {
	case '"', '\'':
		quote := s[j]
		k := strings.IndexByte(s[j+1:], quote)
		if k < 0 {
			return i
		}
		return j + 1 + k + 1
	default:
		k := j
		for k < len(s) && strings.IndexByte(" \"'=<>`", s[k]) < 0 {
			k++
		}
		if k == j {
			return i
		}
		return k
	}
}

func (p *parser) tryHTMLBlock(lines []string) (block, int, bool) {
	if p.ignoredBlock(ast.BlockHTML) {
		return nil, 0, false
	}
	kind := htmlBlockStart(lines[0], false)
	if kind == 0 {
		return nil, 0, false
	}

	var endMarker string
	switch kind {
	case 2:
		endMarker = "-->"
	case 3:
		endMarker = "?>"
	case 4:
		endMarker = ">"
	case 5:
		endMarker = "]]>"
	}

	n := 0
	var content []string
	for n < len(lines) {
		l := lines[n]
		content = append(content, l)
		n++
		switch kind {
		case 1:
			lower := strings.ToLower(l)
			done := false
			for _, tag := range htmlBlockType1Tags {
				if strings.Contains(lower, "</"+tag+">") {
					done = true
					break
				}
			}
			if done {
				goto finished
			}
		case 2, 3, 4, 5:
			if strings.Contains(l, endMarker) {
				goto finished
			}
		case 6, 7:
			if n < len(lines) && isBlank(lines[n]) {
				goto finished
			}
		}
	}

finished:
	blk := p.emitBlock(ast.BlockHTML, &ast.HTMLBlock[ast.None]{
		Content: strings.Join(content, "\n"),
	})
	return blk, n, true
}
