package parser

import (
	"regexp"
	"strings"

	"github.com/yaklabco/mdtool/pkg/ast"
)

var (
	uriAutolinkRE = regexp.MustCompile(
		`^[A-Za-z][A-Za-z0-9+.\-]{1,31}:[^\x00-\x20<>]*$`)

	emailAutolinkRE = regexp.MustCompile(
		"^[a-zA-Z0-9.!#$%&'*+/=?^_`{|}~-]+@[a-zA-Z0-9]" +
			`(?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?` +
			`(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)
)

// angleBracket recognizes an autolink or a raw inline HTML construct at
// `<`, falling back to literal text.
func (ip *inlineParser) angleBracket(i int) int {
	if !ip.ignored(ast.InlineAutolink) {
		if url, email, end, ok := scanAutolink(ip.src, i); ok {
			ip.emit(ast.InlineAutolink, &ast.Autolink[ast.None]{URL: url, Email: email})
			return end
		}
	}
	if !ip.ignored(ast.InlineHTML) {
		if end, ok := scanInlineHTML(ip.src, i); ok {
			ip.emit(ast.InlineHTML, &ast.HTML[ast.None]{Content: ip.src[i:end]})
			return end
		}
	}
	ip.buf.WriteByte('<')
	return i + 1
}

// scanAutolink recognizes `<scheme:...>` and `<user@host>`.
func scanAutolink(src string, i int) (url string, email bool, end int, ok bool) {
	j := strings.IndexAny(src[i+1:], "<> \n")
	if j < 0 || i+1+j >= len(src) || src[i+1+j] != '>' {
		return "", false, 0, false
	}
	candidate := src[i+1 : i+1+j]
	switch {
	case uriAutolinkRE.MatchString(candidate):
		return candidate, false, i + j + 2, true
	case emailAutolinkRE.MatchString(candidate):
		return candidate, true, i + j + 2, true
	default:
		return "", false, 0, false
	}
}

// scanInlineHTML recognizes raw HTML at `<`: an open or closing tag, a
// comment, a processing instruction, a declaration, or a CDATA section.
// Returns the offset just past the construct.
func scanInlineHTML(src string, i int) (end int, ok bool) {
	rest := src[i:]
	switch {
	case strings.HasPrefix(rest, "<!--"):
		if j := strings.Index(rest[4:], "-->"); j >= 0 {
			return i + 4 + j + 3, true
		}
		return 0, false
	case strings.HasPrefix(rest, "<?"):
		if j := strings.Index(rest[2:], "?>"); j >= 0 {
			return i + 2 + j + 2, true
		}
		return 0, false
	case strings.HasPrefix(rest, "<![CDATA["):
		if j := strings.Index(rest[9:], "]]>"); j >= 0 {
			return i + 9 + j + 3, true
		}
		return 0, false
	case strings.HasPrefix(rest, "<!"):
		if len(rest) > 2 && isASCIILetter(rest[2]) {
			if j := strings.IndexByte(rest[2:], '>'); j >= 0 {
				return i + 2 + j + 1, true
			}
		}
		return 0, false
	default:
		return scanInlineTag(src, i)
	}
}

// scanInlineTag recognizes an open or closing HTML tag whose attributes
// may span line breaks.
func scanInlineTag(src string, i int) (end int, ok bool) {
	j := i + 1
	closing := false
	if j < len(src) && src[j] == '/' {
		closing = true
		j++
	}
	start := j
	for j < len(src) && (isASCIILetter(src[j]) || (j > start && (isDigit(src[j]) || src[j] == '-'))) {
		j++
	}
	if j == start {
		return 0, false
	}

	if !closing {
		for {
			k := scanTagAttribute(src, j)
			if k == j {
				break
			}
			j = k
		}
	}
	j = skipTagWhitespace(src, j)
	if !closing && j < len(src) && src[j] == '/' {
		j++
	}
	if j >= len(src) || src[j] != '>' {
		return 0, false
	}
	return j + 1, true
}

func skipTagWhitespace(src string, i int) int {
	for i < len(src) && (src[i] == ' ' || src[i] == '\n') {
		i++
	}
	return i
}

// scanTagAttribute consumes one attribute with its mandatory leading
// whitespace, returning the new offset (or the old one on no match).
func scanTagAttribute(src string, i int) int {
	j := skipTagWhitespace(src, i)
	if j == i || j >= len(src) {
		return i
	}
	if !isASCIILetter(src[j]) && src[j] != '_' && src[j] != ':' {
		return i
	}
	for j < len(src) && (isAlphanumeric(src[j]) || strings.IndexByte("_.:-", src[j]) >= 0) {
		j++
	}

	k := skipTagWhitespace(src, j)
	if k >= len(src) || src[k] != '=' {
		return j
	}
	k = skipTagWhitespace(src, k+1)
	if k >= len(src) {
		return j
	}
	switch src[k] {
	case '"', '\'':
		quote := src[k]
		m := strings.IndexByte(src[k+1:], quote)
		if m < 0 {
			return j
		}
		return k + 1 + m + 1
	default:
		m := k
		for m < len(src) && strings.IndexByte(" \n\"'=<>`", src[m]) < 0 {
			m++
		}
		if m == k {
			return j
		}
		return m
	}
}
