package markdown

import (
	"strings"

	"github.com/yaklabco/mdtool/pkg/ast"
)

func (r *renderer[T]) renderInlines(ins []ast.Inline[T]) string {
	var sb strings.Builder
	for _, in := range ins {
		sb.WriteString(r.renderInline(in))
	}
	return sb.String()
}

func (r *renderer[T]) renderInline(in ast.Inline[T]) string {
	switch in := in.(type) {
	case *ast.Text[T]:
		return escapeText(in.Content)
	case *ast.Emphasis[T]:
		return "*" + r.renderInlines(in.Content) + "*"
	case *ast.Strong[T]:
		return "**" + r.renderInlines(in.Content) + "**"
	case *ast.Strikethrough[T]:
		return "~~" + r.renderInlines(in.Content) + "~~"
	case *ast.Code[T]:
		return codeSpanText(in.Content)
	case *ast.Link[T]:
		return "[" + r.renderInlines(in.Content) + "](" + linkSuffix(in.Destination, in.Title)
	case *ast.Image[T]:
		return "![" + r.renderInlines(in.Alt) + "](" + linkSuffix(in.Destination, in.Title)
	case *ast.Autolink[T]:
		return "<" + in.URL + ">"
	case *ast.HTML[T]:
		return in.Content
	case *ast.LineBreak[T]:
		if in.Hard {
			return "\\\n"
		}
		return "\n"
	case *ast.FootnoteReference[T]:
		return "[^" + in.Label + "]"
	default:
		return ""
	}
}

func linkSuffix(dest, title string) string {
	s := destinationText(dest)
	if title != "" {
		s += ` "` + escapeTitle(title) + `"`
	}
	return s + ")"
}

// destinationText wraps destinations containing whitespace or parentheses
// in angle brackets.
func destinationText(dest string) string {
	if dest == "" || strings.ContainsAny(dest, " \n()<>") {
		repl := strings.NewReplacer("<", `\<`, ">", `\>`, "\n", " ")
		return "<" + repl.Replace(dest) + ">"
	}
	return dest
}

func escapeTitle(title string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(title)
}

// codeSpanText wraps content in a backtick run longer than any run it
// contains, padding with spaces when the content would bleed into the
// fence or would be re-normalized.
func codeSpanText(content string) string {
	fenceLen := 1
	for run := range backtickRuns(content) {
		if run >= fenceLen {
			fenceLen = run + 1
		}
	}
	fence := strings.Repeat("`", fenceLen)
	pad := ""
	if content == "" || strings.HasPrefix(content, "`") || strings.HasSuffix(content, "`") ||
		(strings.HasPrefix(content, " ") && strings.HasSuffix(content, " ")) {
		pad = " "
	}
	return fence + pad + content + pad + fence
}

// textEscaper escapes every character that could re-parse as inline
// syntax.
var textEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	">", `\>`,
	"&", `\&`,
	"~", `\~`,
	"|", `\|`,
	"!", `\!`,
)

func escapeText(s string) string {
	return textEscaper.Replace(s)
}

// escapeLineStarts neutralizes characters that would open a block when a
// paragraph line begins with them.
func escapeLineStarts(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = escapeLineStart(line)
	}
	return strings.Join(lines, "\n")
}

func escapeLineStart(line string) string {
	if line == "" {
		return line
	}
	switch line[0] {
	case '#', '+', '-', '=':
		if len(line) == 1 || line[1] == ' ' || allSame(line) {
			return `\` + line
		}
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		n := 0
		for n < len(line) && n < 9 && line[n] >= '0' && line[n] <= '9' {
			n++
		}
		if n < len(line) && (line[n] == '.' || line[n] == ')') &&
			(n+1 == len(line) || line[n+1] == ' ') {
			return line[:n] + `\` + line[n:]
		}
	}
	return line
}

func allSame(line string) bool {
	for i := 1; i < len(line); i++ {
		if line[i] != line[0] {
			return false
		}
	}
	return true
}
