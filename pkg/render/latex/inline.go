package latex

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdtool/pkg/ast"
)

func (r *renderer[T]) writeInlines(sb *strings.Builder, ins []ast.Inline[T]) {
	for _, in := range ins {
		r.writeInline(sb, in)
	}
}

func (r *renderer[T]) writeInline(sb *strings.Builder, in ast.Inline[T]) {
	switch in := in.(type) {
	case *ast.Text[T]:
		sb.WriteString(escape(in.Content))
	case *ast.Emphasis[T]:
		sb.WriteString("\\emph{")
		r.writeInlines(sb, in.Content)
		sb.WriteString("}")
	case *ast.Strong[T]:
		sb.WriteString("\\textbf{")
		r.writeInlines(sb, in.Content)
		sb.WriteString("}")
	case *ast.Strikethrough[T]:
		sb.WriteString("\\sout{")
		r.writeInlines(sb, in.Content)
		sb.WriteString("}")
	case *ast.Code[T]:
		sb.WriteString("\\texttt{" + escape(in.Content) + "}")
	case *ast.Link[T]:
		fmt.Fprintf(sb, "\\href{%s}{", escapeURL(in.Destination))
		r.writeInlines(sb, in.Content)
		sb.WriteString("}")
	case *ast.Image[T]:
		fmt.Fprintf(sb, "\\includegraphics{%s}", escapeURL(in.Destination))
	case *ast.Autolink[T]:
		if in.Email {
			fmt.Fprintf(sb, "\\href{mailto:%s}{%s}", escapeURL(in.URL), escape(in.URL))
			return
		}
		fmt.Fprintf(sb, "\\url{%s}", escapeURL(in.URL))
	case *ast.HTML[T]:
		// Raw HTML has no LaTeX meaning; drop it.
	case *ast.LineBreak[T]:
		if in.Hard {
			sb.WriteString("\\\\\n")
		} else {
			sb.WriteByte('\n')
		}
	case *ast.FootnoteReference[T]:
		fmt.Fprintf(sb, "\\footnotemark[%s]", escape(in.Label))
	}
}

// latexEscaper escapes the LaTeX special characters in text content.
var latexEscaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	"&", `\&`,
	"%", `\%`,
	"$", `\$`,
	"#", `\#`,
	"_", `\_`,
	"{", `\{`,
	"}", `\}`,
	"~", `\textasciitilde{}`,
	"^", `\textasciicircum{}`,
)

func escape(s string) string {
	return latexEscaper.Replace(s)
}

// escapeURL escapes only the characters that break \href and \url
// arguments.
var urlEscaper = strings.NewReplacer(
	"%", `\%`,
	"#", `\#`,
	"{", `\{`,
	"}", `\}`,
)

func escapeURL(s string) string {
	return urlEscaper.Replace(s)
}
