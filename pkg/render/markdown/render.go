package markdown

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mdtool/pkg/ast"
)

// Render converts a document tree to Markdown text. User data is
// ignored, so any instantiation of the tree can be rendered.
func Render[T any](doc *ast.Document[T], cfg Config) string {
	r := &renderer[T]{cfg: cfg}
	texts := r.renderBlocks(doc.Blocks)
	if len(texts) == 0 {
		return ""
	}
	return strings.Join(texts, "\n\n") + "\n"
}

type renderer[T any] struct {
	cfg Config
}

// renderBlocks renders each block to its text, dropping Empty
// placeholders.
func (r *renderer[T]) renderBlocks(blocks []ast.Block[T]) []string {
	var texts []string
	for _, b := range blocks {
		if b.Kind() == ast.BlockEmpty {
			continue
		}
		texts = append(texts, r.renderBlock(b))
	}
	return texts
}

func (r *renderer[T]) renderBlock(b ast.Block[T]) string {
	switch b := b.(type) {
	case *ast.Paragraph[T]:
		return escapeLineStarts(r.renderInlines(b.Content))
	case *ast.Heading[T]:
		return r.renderHeading(b)
	case *ast.ThematicBreak[T]:
		return "---"
	case *ast.BlockQuote[T]:
		return prefixLines(strings.Join(r.renderBlocks(b.Blocks), "\n\n"), ">")
	case *ast.List[T]:
		return r.renderList(b)
	case *ast.CodeBlock[T]:
		return r.renderCodeBlock(b)
	case *ast.HTMLBlock[T]:
		return b.Content
	case *ast.Table[T]:
		return r.renderTable(b)
	case *ast.LinkReferenceDefinition[T]:
		s := "[" + b.Label + "]: " + destinationText(b.Destination)
		if b.Title != "" {
			s += ` "` + escapeTitle(b.Title) + `"`
		}
		return s
	case *ast.FootnoteDefinition[T]:
		return r.renderFootnoteDefinition(b)
	case *ast.GitHubAlert[T]:
		return r.renderAlert(b)
	default:
		return ""
	}
}

func (r *renderer[T]) renderHeading(h *ast.Heading[T]) string {
	content := r.renderInlines(h.Content)
	if h.Style == ast.HeadingSetext {
		marker := "="
		if h.Level == 2 {
			marker = "-"
		}
		width := 3
		if w := len(content); w > width {
			width = w
		}
		return escapeLineStarts(content) + "\n" + strings.Repeat(marker, width)
	}

	// A trailing # run would re-parse as a closing sequence.
	content = escapeTrailingHashes(content)
	hashes := strings.Repeat("#", h.Level)
	if content == "" {
		return hashes
	}
	return hashes + " " + content
}

func escapeTrailingHashes(s string) string {
	end := len(s)
	for end > 0 && s[end-1] == '#' {
		end--
	}
	if end == len(s) {
		return s
	}
	var sb strings.Builder
	sb.WriteString(s[:end])
	for range len(s) - end {
		sb.WriteString(`\#`)
	}
	return sb.String()
}

func (r *renderer[T]) renderCodeBlock(cb *ast.CodeBlock[T]) string {
	literal := cb.Literal
	if literal != "" && !strings.HasSuffix(literal, "\n") {
		literal += "\n"
	}
	if !cb.Fenced {
		var sb strings.Builder
		for line := range strings.Lines(literal) {
			line = strings.TrimSuffix(line, "\n")
			if line != "" {
				sb.WriteString("    ")
				sb.WriteString(line)
			}
			sb.WriteByte('\n')
		}
		return strings.TrimSuffix(sb.String(), "\n")
	}

	// Grow the fence past any backtick run inside the literal.
	fenceLen := 3
	for run := range backtickRuns(literal) {
		if run >= fenceLen {
			fenceLen = run + 1
		}
	}
	fence := strings.Repeat("`", fenceLen)
	return fence + cb.Info + "\n" + literal + fence
}

// backtickRuns yields the length of every backtick run in s.
func backtickRuns(s string) func(func(int) bool) {
	return func(yield func(int) bool) {
		n := 0
		for i := 0; i <= len(s); i++ {
			if i < len(s) && s[i] == '`' {
				n++
				continue
			}
			if n > 0 && !yield(n) {
				return
			}
			n = 0
		}
	}
}

func (r *renderer[T]) renderList(l *ast.List[T]) string {
	lead := strings.Repeat(" ", r.cfg.spacesBeforeListItem)

	// Blocks inside a tight item stay unseparated so the list re-parses
	// as tight.
	innerSep := "\n\n"
	if l.Tight {
		innerSep = "\n"
	}

	var items []string
	for idx, item := range l.Items {
		var marker string
		if l.Ordered {
			marker = fmt.Sprintf("%s%d%c ", lead, l.Start+idx, l.Delimiter)
		} else {
			marker = fmt.Sprintf("%s%c ", lead, l.BulletMarker)
		}
		content := strings.Join(r.renderBlocks(item.Blocks), innerSep)
		if item.Task != ast.TaskNone {
			box := "[ ] "
			if item.Task == ast.TaskChecked {
				box = "[x] "
			}
			content = box + content
		}
		items = append(items, marker+indentContinuation(content, len(marker)))
	}
	sep := "\n"
	if !l.Tight {
		sep = "\n\n"
	}
	return strings.Join(items, sep)
}

func (r *renderer[T]) renderFootnoteDefinition(fd *ast.FootnoteDefinition[T]) string {
	marker := "[^" + fd.Label + "]: "
	content := strings.Join(r.renderBlocks(fd.Blocks), "\n\n")
	return marker + indentContinuation(content, 4)
}

func (r *renderer[T]) renderAlert(a *ast.GitHubAlert[T]) string {
	name := a.Alert.String()
	if a.Alert == ast.AlertCustom {
		name = a.CustomName
	}
	body := strings.Join(r.renderBlocks(a.Blocks), "\n\n")
	out := "> [!" + name + "]"
	if body != "" {
		out += "\n" + prefixLines(body, ">")
	}
	return out
}

func (r *renderer[T]) renderTable(t *ast.Table[T]) string {
	header := make([]string, len(t.Header))
	widths := make([]int, len(t.Alignments))
	for i, cell := range t.Header {
		header[i] = r.renderInlines(cell)
		if len(header[i]) > widths[i] {
			widths[i] = len(header[i])
		}
	}
	rows := make([][]string, len(t.Rows))
	for ri, row := range t.Rows {
		rows[ri] = make([]string, len(row))
		for ci, cell := range row {
			rows[ri][ci] = r.renderInlines(cell)
			if ci < len(widths) && len(rows[ri][ci]) > widths[ci] {
				widths[ci] = len(rows[ri][ci])
			}
		}
	}
	for i := range widths {
		if widths[i] < 3 {
			widths[i] = 3
		}
	}

	var sb strings.Builder
	writeRow := func(cells []string) {
		sb.WriteByte('|')
		for i, w := range widths {
			c := ""
			if i < len(cells) {
				c = cells[i]
			}
			sb.WriteByte(' ')
			sb.WriteString(c)
			sb.WriteString(strings.Repeat(" ", w-len(c)))
			sb.WriteString(" |")
		}
		sb.WriteByte('\n')
	}

	writeRow(header)
	sb.WriteByte('|')
	for i, a := range t.Alignments {
		w := widths[i]
		switch a {
		case ast.AlignLeft:
			sb.WriteString(" :" + strings.Repeat("-", w-1) + " |")
		case ast.AlignCenter:
			sb.WriteString(" :" + strings.Repeat("-", w-2) + ": |")
		case ast.AlignRight:
			sb.WriteString(" " + strings.Repeat("-", w-1) + ": |")
		default:
			sb.WriteString(" " + strings.Repeat("-", w) + " |")
		}
	}
	sb.WriteByte('\n')
	for _, row := range rows {
		writeRow(row)
	}
	return strings.TrimSuffix(sb.String(), "\n")
}

// prefixLines prepends a blockquote-style prefix to every line; blank
// lines get the bare marker.
func prefixLines(s, marker string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l == "" {
			lines[i] = marker
		} else {
			lines[i] = marker + " " + l
		}
	}
	return strings.Join(lines, "\n")
}

// indentContinuation indents every line after the first by n spaces.
func indentContinuation(s string, n int) string {
	lines := strings.Split(s, "\n")
	pad := strings.Repeat(" ", n)
	for i := 1; i < len(lines); i++ {
		if lines[i] != "" {
			lines[i] = pad + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}
