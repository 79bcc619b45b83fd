package html

import (
	"fmt"
	stdhtml "html"
	"strings"

	"github.com/yaklabco/mdtool/pkg/ast"
)

// Render converts a document tree to HTML. Footnote definitions are
// collected into a trailing footnotes section and link reference
// definitions are elided.
func Render[T any](doc *ast.Document[T], cfg Config) string {
	r := &renderer[T]{
		cfg:           cfg,
		footnoteIndex: make(map[string]int),
	}
	ast.WalkBlocks(doc, func(b ast.Block[T]) error {
		if fd, ok := b.(*ast.FootnoteDefinition[T]); ok {
			if _, seen := r.footnoteIndex[fd.Label]; !seen {
				r.footnoteIndex[fd.Label] = len(r.footnotes) + 1
				r.footnotes = append(r.footnotes, fd)
			}
		}
		return nil
	})

	var sb strings.Builder
	r.writeBlocks(&sb, doc.Blocks, false)
	r.writeFootnoteSection(&sb)
	return sb.String()
}

type renderer[T any] struct {
	cfg Config

	footnoteIndex map[string]int
	footnotes     []*ast.FootnoteDefinition[T]
}

// writeBlocks renders a block sequence. In tight mode single paragraphs
// are unwrapped, per the tight-list rendering rule.
func (r *renderer[T]) writeBlocks(sb *strings.Builder, blocks []ast.Block[T], tight bool) {
	for _, b := range blocks {
		r.writeBlock(sb, b, tight)
	}
}

func (r *renderer[T]) writeBlock(sb *strings.Builder, b ast.Block[T], tight bool) {
	switch b := b.(type) {
	case *ast.Paragraph[T]:
		if tight {
			r.writeInlines(sb, b.Content)
			sb.WriteByte('\n')
			return
		}
		sb.WriteString("<p>")
		r.writeInlines(sb, b.Content)
		sb.WriteString("</p>\n")
	case *ast.Heading[T]:
		r.writeHeading(sb, b)
	case *ast.ThematicBreak[T]:
		sb.WriteString("<hr />\n")
	case *ast.BlockQuote[T]:
		sb.WriteString("<blockquote>\n")
		r.writeBlocks(sb, b.Blocks, false)
		sb.WriteString("</blockquote>\n")
	case *ast.List[T]:
		r.writeList(sb, b)
	case *ast.CodeBlock[T]:
		r.writeCodeBlock(sb, b)
	case *ast.HTMLBlock[T]:
		sb.WriteString(b.Content)
		sb.WriteByte('\n')
	case *ast.Table[T]:
		r.writeTable(sb, b)
	case *ast.GitHubAlert[T]:
		r.writeAlert(sb, b)
	case *ast.LinkReferenceDefinition[T], *ast.FootnoteDefinition[T], *ast.Empty[T]:
		// Not rendered in place.
	}
}

func (r *renderer[T]) writeHeading(sb *strings.Builder, h *ast.Heading[T]) {
	level := h.Level
	if level < 1 {
		level = 1
	}
	if level > 6 {
		level = 6
	}
	if r.cfg.headingIDs {
		fmt.Fprintf(sb, `<h%d id="%s">`, level,
			stdhtml.EscapeString(r.cfg.anchorPrefix+slugify(plainText(h.Content))))
	} else {
		fmt.Fprintf(sb, "<h%d>", level)
	}
	r.writeInlines(sb, h.Content)
	fmt.Fprintf(sb, "</h%d>\n", level)
}

func (r *renderer[T]) writeList(sb *strings.Builder, l *ast.List[T]) {
	tag := "ul"
	if l.Ordered {
		tag = "ol"
	}
	switch {
	case l.Ordered && l.Start != 1:
		fmt.Fprintf(sb, "<%s start=\"%d\">\n", tag, l.Start)
	default:
		fmt.Fprintf(sb, "<%s>\n", tag)
	}
	for _, item := range l.Items {
		sb.WriteString("<li>")
		switch item.Task {
		case ast.TaskUnchecked:
			sb.WriteString(`<input type="checkbox" disabled="" /> `)
		case ast.TaskChecked:
			sb.WriteString(`<input type="checkbox" disabled="" checked="" /> `)
		}
		if l.Tight {
			r.writeBlocks(sb, item.Blocks, true)
			trimTrailingNewline(sb)
		} else {
			sb.WriteByte('\n')
			r.writeBlocks(sb, item.Blocks, false)
		}
		sb.WriteString("</li>\n")
	}
	fmt.Fprintf(sb, "</%s>\n", tag)
}

// trimTrailingNewline is a small helper for tight list items, whose
// content should hug the closing tag.
func trimTrailingNewline(sb *strings.Builder) {
	s := sb.String()
	if strings.HasSuffix(s, "\n") {
		sb.Reset()
		sb.WriteString(s[:len(s)-1])
	}
}

func (r *renderer[T]) writeCodeBlock(sb *strings.Builder, cb *ast.CodeBlock[T]) {
	lang := ""
	if cb.Fenced && cb.Info != "" {
		lang = strings.Fields(cb.Info)[0]
	}
	if lang != "" {
		fmt.Fprintf(sb, `<pre><code class="language-%s">`, stdhtml.EscapeString(lang))
	} else {
		sb.WriteString("<pre><code>")
	}
	sb.WriteString(stdhtml.EscapeString(cb.Literal))
	sb.WriteString("</code></pre>\n")
}

func (r *renderer[T]) writeTable(sb *strings.Builder, t *ast.Table[T]) {
	sb.WriteString("<table>\n<thead>\n<tr>\n")
	for i, cell := range t.Header {
		r.writeCell(sb, "th", alignmentAt(t.Alignments, i), cell)
	}
	sb.WriteString("</tr>\n</thead>\n")
	if len(t.Rows) > 0 {
		sb.WriteString("<tbody>\n")
		for _, row := range t.Rows {
			sb.WriteString("<tr>\n")
			for i, cell := range row {
				r.writeCell(sb, "td", alignmentAt(t.Alignments, i), cell)
			}
			sb.WriteString("</tr>\n")
		}
		sb.WriteString("</tbody>\n")
	}
	sb.WriteString("</table>\n")
}

func alignmentAt(aligns []ast.Alignment, i int) ast.Alignment {
	if i < len(aligns) {
		return aligns[i]
	}
	return ast.AlignNone
}

func (r *renderer[T]) writeCell(sb *strings.Builder, tag string, align ast.Alignment, cell ast.TableCell[T]) {
	if align == ast.AlignNone {
		fmt.Fprintf(sb, "<%s>", tag)
	} else {
		fmt.Fprintf(sb, `<%s align="%s">`, tag, align)
	}
	r.writeInlines(sb, cell)
	fmt.Fprintf(sb, "</%s>\n", tag)
}

var alertTitles = map[ast.AlertKind]string{
	ast.AlertNote:      "Note",
	ast.AlertTip:       "Tip",
	ast.AlertImportant: "Important",
	ast.AlertWarning:   "Warning",
	ast.AlertCaution:   "Caution",
}

func (r *renderer[T]) writeAlert(sb *strings.Builder, a *ast.GitHubAlert[T]) {
	title := alertTitles[a.Alert]
	if a.Alert == ast.AlertCustom {
		title = a.CustomName
	}
	class := strings.ToLower(title)
	fmt.Fprintf(sb, "<div class=\"markdown-alert markdown-alert-%s\">\n", stdhtml.EscapeString(class))
	fmt.Fprintf(sb, "<p class=\"markdown-alert-title\">%s</p>\n", stdhtml.EscapeString(title))
	r.writeBlocks(sb, a.Blocks, false)
	sb.WriteString("</div>\n")
}

func (r *renderer[T]) writeFootnoteSection(sb *strings.Builder) {
	if len(r.footnotes) == 0 {
		return
	}
	sb.WriteString("<section class=\"footnotes\">\n<ol>\n")
	for _, fd := range r.footnotes {
		idx := r.footnoteIndex[fd.Label]
		fmt.Fprintf(sb, "<li id=\"fn-%d\">\n", idx)
		r.writeBlocks(sb, fd.Blocks, false)
		fmt.Fprintf(sb, "<a href=\"#fnref-%d\" class=\"footnote-backref\">&#8617;</a>\n</li>\n", idx)
	}
	sb.WriteString("</ol>\n</section>\n")
}

func (r *renderer[T]) writeInlines(sb *strings.Builder, ins []ast.Inline[T]) {
	for _, in := range ins {
		r.writeInline(sb, in)
	}
}

func (r *renderer[T]) writeInline(sb *strings.Builder, in ast.Inline[T]) {
	switch in := in.(type) {
	case *ast.Text[T]:
		sb.WriteString(stdhtml.EscapeString(in.Content))
	case *ast.Emphasis[T]:
		sb.WriteString("<em>")
		r.writeInlines(sb, in.Content)
		sb.WriteString("</em>")
	case *ast.Strong[T]:
		sb.WriteString("<strong>")
		r.writeInlines(sb, in.Content)
		sb.WriteString("</strong>")
	case *ast.Strikethrough[T]:
		sb.WriteString("<del>")
		r.writeInlines(sb, in.Content)
		sb.WriteString("</del>")
	case *ast.Code[T]:
		sb.WriteString("<code>")
		sb.WriteString(stdhtml.EscapeString(in.Content))
		sb.WriteString("</code>")
	case *ast.Link[T]:
		sb.WriteString(`<a href="` + stdhtml.EscapeString(in.Destination) + `"`)
		if in.Title != "" {
			sb.WriteString(` title="` + stdhtml.EscapeString(in.Title) + `"`)
		}
		sb.WriteString(">")
		r.writeInlines(sb, in.Content)
		sb.WriteString("</a>")
	case *ast.Image[T]:
		sb.WriteString(`<img src="` + stdhtml.EscapeString(in.Destination) + `"`)
		sb.WriteString(` alt="` + stdhtml.EscapeString(plainText(in.Alt)) + `"`)
		if in.Title != "" {
			sb.WriteString(` title="` + stdhtml.EscapeString(in.Title) + `"`)
		}
		sb.WriteString(" />")
	case *ast.Autolink[T]:
		href := in.URL
		if in.Email {
			href = "mailto:" + href
		}
		sb.WriteString(`<a href="` + stdhtml.EscapeString(href) + `">` +
			stdhtml.EscapeString(in.URL) + "</a>")
	case *ast.HTML[T]:
		sb.WriteString(in.Content)
	case *ast.LineBreak[T]:
		if in.Hard {
			sb.WriteString("<br />\n")
		} else {
			sb.WriteByte('\n')
		}
	case *ast.FootnoteReference[T]:
		if idx, ok := r.footnoteIndex[in.Label]; ok {
			fmt.Fprintf(sb,
				`<sup class="footnote-ref"><a href="#fn-%d" id="fnref-%d">%d</a></sup>`,
				idx, idx, idx)
		} else {
			sb.WriteString(stdhtml.EscapeString("[^" + in.Label + "]"))
		}
	}
}

// plainText flattens inline content to its text, for alt attributes and
// anchor slugs.
func plainText[T any](ins []ast.Inline[T]) string {
	var sb strings.Builder
	for _, in := range ins {
		switch in := in.(type) {
		case *ast.Text[T]:
			sb.WriteString(in.Content)
		case *ast.Code[T]:
			sb.WriteString(in.Content)
		case *ast.Autolink[T]:
			sb.WriteString(in.URL)
		case *ast.LineBreak[T]:
			sb.WriteByte(' ')
		default:
			sb.WriteString(plainText(ast.ChildInlines(in)))
		}
	}
	return sb.String()
}

// slugify lowercases text and replaces non-alphanumeric runs with
// hyphens.
func slugify(s string) string {
	var sb strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			if pendingDash && sb.Len() > 0 {
				sb.WriteByte('-')
			}
			pendingDash = false
			sb.WriteRune(r)
		default:
			pendingDash = true
		}
	}
	return sb.String()
}
