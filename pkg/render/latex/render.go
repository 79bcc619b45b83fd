package latex

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdtool/pkg/ast"
)

// Render converts a document tree to LaTeX source.
func Render[T any](doc *ast.Document[T], cfg Config) string {
	r := &renderer[T]{cfg: cfg}
	var sb strings.Builder
	r.writeBlocks(&sb, doc.Blocks)
	return sb.String()
}

type renderer[T any] struct {
	cfg Config
}

// sectioning maps heading levels to LaTeX sectioning commands.
var sectioning = []string{
	"section", "subsection", "subsubsection", "paragraph", "subparagraph",
	"subparagraph",
}

func (r *renderer[T]) writeBlocks(sb *strings.Builder, blocks []ast.Block[T]) {
	for _, b := range blocks {
		r.writeBlock(sb, b)
	}
}

func (r *renderer[T]) writeBlock(sb *strings.Builder, b ast.Block[T]) {
	switch b := b.(type) {
	case *ast.Paragraph[T]:
		r.writeInlines(sb, b.Content)
		sb.WriteString("\n\n")
	case *ast.Heading[T]:
		level := b.Level
		if level < 1 {
			level = 1
		}
		if level > len(sectioning) {
			level = len(sectioning)
		}
		fmt.Fprintf(sb, `\%s{`, sectioning[level-1])
		r.writeInlines(sb, b.Content)
		sb.WriteString("}\n\n")
	case *ast.ThematicBreak[T]:
		sb.WriteString("\\noindent\\rule{\\linewidth}{0.4pt}\n\n")
	case *ast.BlockQuote[T]:
		sb.WriteString("\\begin{quote}\n")
		r.writeBlocks(sb, b.Blocks)
		sb.WriteString("\\end{quote}\n\n")
	case *ast.List[T]:
		r.writeList(sb, b)
	case *ast.CodeBlock[T]:
		r.writeCodeBlock(sb, b)
	case *ast.HTMLBlock[T]:
		// HTML has no LaTeX meaning; keep it visible as a comment.
		for line := range strings.Lines(b.Content) {
			sb.WriteString("% ")
			sb.WriteString(strings.TrimSuffix(line, "\n"))
			sb.WriteByte('\n')
		}
		sb.WriteByte('\n')
	case *ast.Table[T]:
		r.writeTable(sb, b)
	case *ast.FootnoteDefinition[T]:
		// Definitions render in place as a titled paragraph; references
		// render as \footnotemark.
		fmt.Fprintf(sb, "\\paragraph{%s}\n", escape(b.Label))
		r.writeBlocks(sb, b.Blocks)
	case *ast.GitHubAlert[T]:
		title := b.Alert.String()
		if b.Alert == ast.AlertCustom {
			title = b.CustomName
		}
		sb.WriteString("\\begin{quote}\n")
		fmt.Fprintf(sb, "\\textbf{%s}\n\n", escape(titleCase(title)))
		r.writeBlocks(sb, b.Blocks)
		sb.WriteString("\\end{quote}\n\n")
	case *ast.LinkReferenceDefinition[T], *ast.Empty[T]:
		// Nothing to render.
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

func (r *renderer[T]) writeList(sb *strings.Builder, l *ast.List[T]) {
	env := "itemize"
	if l.Ordered {
		env = "enumerate"
	}
	fmt.Fprintf(sb, "\\begin{%s}\n", env)
	if l.Ordered && l.Start != 1 {
		fmt.Fprintf(sb, "\\setcounter{enumi}{%d}\n", l.Start-1)
	}
	for _, item := range l.Items {
		switch item.Task {
		case ast.TaskUnchecked:
			sb.WriteString("\\item[$\\square$] ")
		case ast.TaskChecked:
			sb.WriteString("\\item[$\\boxtimes$] ")
		default:
			sb.WriteString("\\item ")
		}
		var inner strings.Builder
		r.writeBlocks(&inner, item.Blocks)
		sb.WriteString(strings.TrimRight(inner.String(), "\n"))
		sb.WriteByte('\n')
	}
	fmt.Fprintf(sb, "\\end{%s}\n\n", env)
}

func (r *renderer[T]) writeCodeBlock(sb *strings.Builder, cb *ast.CodeBlock[T]) {
	lang := ""
	if cb.Fenced && cb.Info != "" {
		lang = strings.Fields(cb.Info)[0]
	}
	literal := cb.Literal
	if literal != "" && !strings.HasSuffix(literal, "\n") {
		literal += "\n"
	}
	switch r.cfg.codeStyle {
	case CodeListings:
		if lang != "" {
			fmt.Fprintf(sb, "\\begin{lstlisting}[language=%s]\n", lang)
		} else {
			sb.WriteString("\\begin{lstlisting}\n")
		}
		sb.WriteString(literal)
		sb.WriteString("\\end{lstlisting}\n\n")
	case CodeMinted:
		if lang == "" {
			lang = "text"
		}
		fmt.Fprintf(sb, "\\begin{minted}{%s}\n", lang)
		sb.WriteString(literal)
		sb.WriteString("\\end{minted}\n\n")
	default:
		sb.WriteString("\\begin{verbatim}\n")
		sb.WriteString(literal)
		sb.WriteString("\\end{verbatim}\n\n")
	}
}

func (r *renderer[T]) writeTable(sb *strings.Builder, t *ast.Table[T]) {
	spec := make([]byte, len(t.Alignments))
	for i, a := range t.Alignments {
		switch a {
		case ast.AlignCenter:
			spec[i] = 'c'
		case ast.AlignRight:
			spec[i] = 'r'
		default:
			spec[i] = 'l'
		}
	}

	env := "tabular"
	if r.cfg.tableStyle == TableLongtable {
		env = "longtable"
	}
	fmt.Fprintf(sb, "\\begin{%s}{%s}\n", env, spec)

	topRule, midRule, bottomRule := "\\hline", "\\hline", "\\hline"
	if r.cfg.tableStyle == TableBooktabs {
		topRule, midRule, bottomRule = "\\toprule", "\\midrule", "\\bottomrule"
	}

	sb.WriteString(topRule + "\n")
	r.writeTableRow(sb, t.Header)
	sb.WriteString(midRule + "\n")
	for _, row := range t.Rows {
		r.writeTableRow(sb, row)
	}
	sb.WriteString(bottomRule + "\n")
	fmt.Fprintf(sb, "\\end{%s}\n\n", env)
}

func (r *renderer[T]) writeTableRow(sb *strings.Builder, row ast.TableRow[T]) {
	for i, cell := range row {
		if i > 0 {
			sb.WriteString(" & ")
		}
		r.writeInlines(sb, cell)
	}
	sb.WriteString(" \\\\\n")
}
