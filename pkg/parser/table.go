package parser

import (
	"strings"

	"github.com/yaklabco/mdtool/pkg/ast"
)

// looksLikeTableHeader reports whether header followed by delim forms a
// pipe-table opening: a header row and a delimiter row with matching cell
// counts.
func looksLikeTableHeader(header, delim string) bool {
	if !strings.ContainsRune(header, '|') || !strings.ContainsRune(delim, '|') {
		return false
	}
	if indentation(header) > 3 || indentation(delim) > 3 {
		return false
	}
	aligns, ok := parseDelimiterRow(delim)
	return ok && len(aligns) == len(splitTableRow(header))
}

func (p *parser) tryTable(lines []string) (block, int, bool) {
	if p.ignoredBlock(ast.BlockTable) {
		return nil, 0, false
	}
	if len(lines) < 2 || !looksLikeTableHeader(lines[0], lines[1]) {
		return nil, 0, false
	}

	aligns, _ := parseDelimiterRow(lines[1])
	headerCells := splitTableRow(lines[0])

	var bodyRows [][]string
	n := 2
	for n < len(lines) {
		l := lines[n]
		if isBlank(l) || p.startsBlock(l, lines[n:]) {
			break
		}
		bodyRows = append(bodyRows, splitTableRow(l))
		n++
	}

	if p.skippedBlock(ast.BlockTable) {
		return &ast.Empty[ast.None]{}, n, true
	}

	tbl := &ast.Table[ast.None]{Alignments: aligns}
	tbl.Header = p.makeTableRow(headerCells, len(aligns))
	for _, cells := range bodyRows {
		tbl.Rows = append(tbl.Rows, p.makeTableRow(cells, len(aligns)))
	}
	return tbl, n, true
}

// makeTableRow pads short rows with empty cells and truncates long ones
// to the header width, deferring inline parsing of each cell.
func (p *parser) makeTableRow(cells []string, width int) ast.TableRow[ast.None] {
	row := make(ast.TableRow[ast.None], width)
	for i := 0; i < width; i++ {
		row[i] = ast.TableCell[ast.None]{}
		if i >= len(cells) {
			continue
		}
		cell := &row[i]
		p.deferInline(cells[i], func(ins []inline) { *cell = ins })
	}
	return row
}

// parseDelimiterRow parses a `|---|:--:|` row into column alignments.
func parseDelimiterRow(line string) ([]ast.Alignment, bool) {
	cells := splitTableRow(line)
	if len(cells) == 0 {
		return nil, false
	}
	aligns := make([]ast.Alignment, 0, len(cells))
	for _, cell := range cells {
		c := strings.TrimSpace(cell)
		if c == "" {
			return nil, false
		}
		left := strings.HasPrefix(c, ":")
		right := strings.HasSuffix(c, ":")
		dashes := strings.TrimSuffix(strings.TrimPrefix(c, ":"), ":")
		if dashes == "" || strings.Trim(dashes, "-") != "" {
			return nil, false
		}
		switch {
		case left && right:
			aligns = append(aligns, ast.AlignCenter)
		case left:
			aligns = append(aligns, ast.AlignLeft)
		case right:
			aligns = append(aligns, ast.AlignRight)
		default:
			aligns = append(aligns, ast.AlignNone)
		}
	}
	return aligns, true
}

// splitTableRow splits a row on unescaped pipes, dropping the outer empty
// cells produced by leading and trailing pipes and trimming each cell.
func splitTableRow(line string) []string {
	line = strings.TrimSpace(line)
	var cells []string
	var sb strings.Builder
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '\\' && i+1 < len(line) && line[i+1] == '|':
			// Keep the escape for the inline parser to resolve.
			sb.WriteString(`\|`)
			i++
		case c == '|':
			cells = append(cells, strings.TrimSpace(sb.String()))
			sb.Reset()
		default:
			sb.WriteByte(c)
		}
	}
	cells = append(cells, strings.TrimSpace(sb.String()))

	// `|a|b|` and `a|b` denote the same two columns.
	if len(cells) > 0 && cells[0] == "" {
		cells = cells[1:]
	}
	if len(cells) > 0 && cells[len(cells)-1] == "" {
		cells = cells[:len(cells)-1]
	}
	return cells
}
