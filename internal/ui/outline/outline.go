package outline

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"

	"github.com/yaklabco/mdtool/pkg/ast"
)

// Render writes a structural outline of the document followed by element
// counts.
func Render(w io.Writer, doc *ast.Document[ast.None], styles *Styles) {
	width := outputWidth(w)
	r := &printer{w: w, styles: styles, width: width}
	fmt.Fprintln(w, styles.Title.Render("Document outline"))
	r.blocks(doc.Blocks, 0)
	r.summary(doc)
}

type printer struct {
	w      io.Writer
	styles *Styles
	width  int
}

func outputWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		if cols, _, err := term.GetSize(int(f.Fd())); err == nil && cols > 20 {
			return cols
		}
	}
	return 80
}

func (p *printer) blocks(blocks []ast.Block[ast.None], depth int) {
	for _, b := range blocks {
		p.block(b, depth)
	}
}

func (p *printer) block(b ast.Block[ast.None], depth int) {
	indent := p.styles.Tree.Render(strings.Repeat("  ", depth) + "- ")
	label := p.styles.Kind.Render(b.Kind().String())
	detail := blockDetail(b)
	snippet := p.snippet(b, depth)

	line := indent + label
	if detail != "" {
		line += " " + p.styles.Dim.Render(detail)
	}
	if snippet != "" {
		line += " " + p.styles.Snippet.Render(snippet)
	}
	fmt.Fprintln(p.w, line)

	for _, nested := range ast.ChildBlocks(b) {
		p.blocks(nested, depth+1)
	}
}

func blockDetail(b ast.Block[ast.None]) string {
	switch b := b.(type) {
	case *ast.Heading[ast.None]:
		return fmt.Sprintf("(level %d)", b.Level)
	case *ast.List[ast.None]:
		if b.Ordered {
			return fmt.Sprintf("(ordered from %d, %d items)", b.Start, len(b.Items))
		}
		return fmt.Sprintf("(bullet %q, %d items)", string(b.BulletMarker), len(b.Items))
	case *ast.CodeBlock[ast.None]:
		if b.Fenced && b.Info != "" {
			return fmt.Sprintf("(%s)", b.Info)
		}
	case *ast.Table[ast.None]:
		return fmt.Sprintf("(%d columns, %d rows)", len(b.Alignments), len(b.Rows))
	case *ast.LinkReferenceDefinition[ast.None]:
		return fmt.Sprintf("[%s] -> %s", b.Label, b.Destination)
	case *ast.FootnoteDefinition[ast.None]:
		return fmt.Sprintf("[^%s]", b.Label)
	case *ast.GitHubAlert[ast.None]:
		name := b.Alert.String()
		if b.Alert == ast.AlertCustom {
			name = b.CustomName
		}
		return "[!" + name + "]"
	}
	return ""
}

func (p *printer) snippet(b ast.Block[ast.None], depth int) string {
	var text string
	for _, seq := range ast.InlineContent(b) {
		text = inlineText(seq)
		break
	}
	if cb, ok := b.(*ast.CodeBlock[ast.None]); ok {
		text = strings.SplitN(cb.Literal, "\n", 2)[0]
	}
	if text == "" {
		return ""
	}
	budget := p.width - depth*2 - 30
	if budget < 10 {
		budget = 10
	}
	if len(text) > budget {
		cut := budget - 1
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut] + "…"
	}
	return text
}

func inlineText(ins []ast.Inline[ast.None]) string {
	var sb strings.Builder
	for _, in := range ins {
		switch in := in.(type) {
		case *ast.Text[ast.None]:
			sb.WriteString(in.Content)
		case *ast.Code[ast.None]:
			sb.WriteString(in.Content)
		case *ast.Autolink[ast.None]:
			sb.WriteString(in.URL)
		case *ast.LineBreak[ast.None]:
			sb.WriteByte(' ')
		default:
			sb.WriteString(inlineText(ast.ChildInlines(in)))
		}
	}
	return sb.String()
}

func (p *printer) summary(doc *ast.Document[ast.None]) {
	blockCounts := make(map[string]int)
	ast.WalkBlocks(doc, func(b ast.Block[ast.None]) error {
		blockCounts[b.Kind().String()]++
		return nil
	})
	inlineCounts := make(map[string]int)
	ast.WalkInlines(doc, func(in ast.Inline[ast.None]) error {
		inlineCounts[in.Kind().String()]++
		return nil
	})

	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, p.styles.Title.Render("Element counts"))
	p.countLines("blocks", blockCounts)
	p.countLines("inlines", inlineCounts)
}

func (p *printer) countLines(section string, counts map[string]int) {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(p.w, p.styles.Dim.Render(section+":"))
	for _, name := range names {
		fmt.Fprintf(p.w, "  %s %s\n",
			p.styles.Count.Render(fmt.Sprintf("%4d", counts[name])),
			p.styles.Kind.Render(name))
	}
}
