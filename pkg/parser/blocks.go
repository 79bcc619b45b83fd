package parser

import (
	"strings"

	"github.com/yaklabco/mdtool/pkg/ast"
)

// parseBlocks runs the block grammar over a line window. It is re-entered
// for container interiors (blockquotes, list items, footnote definitions,
// alerts) with the container prefix already stripped.
func (p *parser) parseBlocks(lines []string) []block {
	var out []block
	i := 0
	for i < len(lines) && p.err == nil {
		if len(p.cfg.customBlocks) > 0 {
			if blocks, rest, ok := p.tryCustomBlocks(lines[i:]); ok {
				out = append(out, blocks...)
				if p.err == nil {
					out = append(out, p.parseBlocks(rest)...)
				}
				return out
			}
		}

		line := lines[i]
		if isBlank(line) {
			i++
			continue
		}

		if isThematicBreak(line) && !p.ignoredBlock(ast.BlockThematicBreak) {
			out = append(out, p.emitBlock(ast.BlockThematicBreak, &ast.ThematicBreak[ast.None]{}))
			i++
			continue
		}

		if level, content, ok := atxHeading(line); ok && !p.ignoredBlock(ast.BlockHeading) {
			out = append(out, p.makeHeading(ast.HeadingATX, level, content))
			i++
			continue
		}

		if blk, n, ok := p.tryFencedCode(lines[i:]); ok {
			out = append(out, blk)
			i += n
			continue
		}

		if blk, n, ok := p.tryHTMLBlock(lines[i:]); ok {
			out = append(out, blk)
			i += n
			continue
		}

		if blk, n, ok := p.tryRefDef(lines[i:]); ok {
			out = append(out, blk)
			i += n
			continue
		}

		if blk, n, ok := p.tryFootnoteDef(lines[i:]); ok {
			out = append(out, blk)
			i += n
			continue
		}

		if blk, n, ok := p.tryGitHubAlert(lines[i:]); ok {
			out = append(out, blk)
			i += n
			continue
		}

		if blk, n, ok := p.tryBlockQuote(lines[i:]); ok {
			out = append(out, blk)
			i += n
			continue
		}

		if blk, n, ok := p.tryList(lines[i:]); ok {
			out = append(out, blk)
			i += n
			continue
		}

		if blk, n, ok := p.tryTable(lines[i:]); ok {
			out = append(out, blk)
			i += n
			continue
		}

		if blk, n, ok := p.tryIndentedCode(lines[i:]); ok {
			out = append(out, blk)
			i += n
			continue
		}

		blk, n := p.parseParagraph(lines[i:])
		if blk != nil {
			out = append(out, blk)
		}
		i += n
	}
	return out
}

func (p *parser) ignoredBlock(kind ast.BlockKind) bool {
	return p.cfg.blockBehavior(kind).Kind == BehaviorIgnore
}

func (p *parser) skippedBlock(kind ast.BlockKind) bool {
	return p.cfg.blockBehavior(kind).Kind == BehaviorSkip
}

// emitBlock routes a freshly recognized block through the Skip policy.
// Map and FlatMap run later, once inline content has been resolved.
func (p *parser) emitBlock(kind ast.BlockKind, b block) block {
	if p.skippedBlock(kind) {
		return &ast.Empty[ast.None]{}
	}
	return b
}

func (p *parser) makeHeading(style ast.HeadingStyle, level int, raw string) block {
	if p.skippedBlock(ast.BlockHeading) {
		return &ast.Empty[ast.None]{}
	}
	h := &ast.Heading[ast.None]{Style: style, Level: level}
	p.deferInline(raw, func(ins []inline) { h.Content = ins })
	return h
}

func (p *parser) tryCustomBlocks(lines []string) ([]block, []string, bool) {
	src := strings.Join(lines, "\n") + "\n"
	for _, cp := range p.cfg.customBlocks {
		blocks, rest, ok := cp(src)
		if !ok {
			continue
		}
		if len(rest) == len(src) {
			// A zero-length consume counts as a failed match.
			continue
		}
		if len(rest) > len(src) {
			p.failCustom("custom block parser")
			return nil, nil, true
		}
		return blocks, splitLines(rest), true
	}
	return nil, nil, false
}

// splitLines splits already-preprocessed text back into lines.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}

func (p *parser) tryFencedCode(lines []string) (block, int, bool) {
	marker, length, indent, info, ok := fenceOpen(lines[0])
	if !ok || p.ignoredBlock(ast.BlockCode) {
		return nil, 0, false
	}

	var literal strings.Builder
	n := 1
	for n < len(lines) {
		if fenceClose(lines[n], marker, length) {
			n++
			break
		}
		literal.WriteString(stripIndent(lines[n], indent))
		literal.WriteByte('\n')
		n++
	}

	blk := p.emitBlock(ast.BlockCode, &ast.CodeBlock[ast.None]{
		Fenced:  true,
		Info:    info,
		Literal: literal.String(),
	})
	return blk, n, true
}

func (p *parser) tryIndentedCode(lines []string) (block, int, bool) {
	if indentation(lines[0]) < 4 || isBlank(lines[0]) || p.ignoredBlock(ast.BlockCode) {
		return nil, 0, false
	}

	var content []string
	n := 0
	lastCode := 0
	for n < len(lines) {
		switch {
		case indentation(lines[n]) >= 4 && !isBlank(lines[n]):
			content = append(content, stripIndent(lines[n], 4))
			lastCode = len(content)
		case isBlank(lines[n]):
			content = append(content, "")
		default:
			n = trimTo(n, len(content), lastCode)
			goto done
		}
		n++
	}
	n = trimTo(n, len(content), lastCode)

done:
	content = content[:lastCode]
	blk := p.emitBlock(ast.BlockCode, &ast.CodeBlock[ast.None]{
		Literal: strings.Join(content, "\n") + "\n",
	})
	return blk, n, true
}

// trimTo backs the consumed-line count off the trailing blank lines that
// were tentatively collected into an indented code block.
func trimTo(consumed, collected, kept int) int {
	return consumed - (collected - kept)
}

func (p *parser) tryBlockQuote(lines []string) (block, int, bool) {
	if _, ok := blockquoteMarker(lines[0]); !ok || p.ignoredBlock(ast.BlockQuoteKind) {
		return nil, 0, false
	}

	content, n := p.gatherBlockQuote(lines)
	if p.skippedBlock(ast.BlockQuoteKind) {
		return &ast.Empty[ast.None]{}, n, true
	}
	return &ast.BlockQuote[ast.None]{Blocks: p.parseBlocks(content)}, n, true
}

// gatherBlockQuote collects the marker-prefixed lines of a blockquote plus
// lazy paragraph continuation lines, returning the stripped interior.
func (p *parser) gatherBlockQuote(lines []string) (content []string, n int) {
	for n < len(lines) {
		if inner, ok := blockquoteMarker(lines[n]); ok {
			content = append(content, inner)
			n++
			continue
		}
		// Lazy continuation: a non-blank line that cannot start a block of
		// its own continues the quoted paragraph.
		if n > 0 && !isBlank(lines[n]) && len(content) > 0 && !isBlank(content[len(content)-1]) &&
			!p.startsBlock(lines[n], lines[n:]) {
			content = append(content, lines[n])
			n++
			continue
		}
		break
	}
	return content, n
}

func (p *parser) tryGitHubAlert(lines []string) (block, int, bool) {
	first, ok := blockquoteMarker(lines[0])
	if !ok || p.ignoredBlock(ast.BlockGitHubAlert) {
		return nil, 0, false
	}
	kind, custom, ok := parseAlertMarker(first)
	if !ok {
		return nil, 0, false
	}

	content, n := p.gatherBlockQuote(lines)
	if p.skippedBlock(ast.BlockGitHubAlert) {
		return &ast.Empty[ast.None]{}, n, true
	}
	return &ast.GitHubAlert[ast.None]{
		Alert:      kind,
		CustomName: custom,
		Blocks:     p.parseBlocks(content[1:]),
	}, n, true
}

// parseAlertMarker recognizes `[!KIND]` alert markers. The five standard
// kinds match case-insensitively; any other `[!Name]` with an
// alphanumeric-or-underscore name is a custom alert.
func parseAlertMarker(line string) (ast.AlertKind, string, bool) {
	s := strings.TrimSpace(line)
	if !strings.HasPrefix(s, "[!") || !strings.HasSuffix(s, "]") {
		return 0, "", false
	}
	name := s[2 : len(s)-1]
	if name == "" || !isASCIILetter(name[0]) {
		return 0, "", false
	}
	for i := 0; i < len(name); i++ {
		if !isAlphanumeric(name[i]) && name[i] != '_' {
			return 0, "", false
		}
	}
	switch strings.ToUpper(name) {
	case "NOTE":
		return ast.AlertNote, "", true
	case "TIP":
		return ast.AlertTip, "", true
	case "IMPORTANT":
		return ast.AlertImportant, "", true
	case "WARNING":
		return ast.AlertWarning, "", true
	case "CAUTION":
		return ast.AlertCaution, "", true
	default:
		return ast.AlertCustom, name, true
	}
}

func (p *parser) tryFootnoteDef(lines []string) (block, int, bool) {
	if p.ignoredBlock(ast.BlockFootnoteDefinition) {
		return nil, 0, false
	}
	first := lines[0]
	if indentation(first) > 3 {
		return nil, 0, false
	}
	rest := strings.TrimLeft(first, " ")
	if !strings.HasPrefix(rest, "[^") {
		return nil, 0, false
	}
	end := strings.IndexByte(rest, ']')
	if end < 3 || end+1 >= len(rest) || rest[end+1] != ':' {
		return nil, 0, false
	}
	label := rest[2:end]
	if strings.ContainsAny(label, " \t") {
		return nil, 0, false
	}

	content := []string{strings.TrimLeft(rest[end+2:], " ")}
	n := 1
	for n < len(lines) {
		l := lines[n]
		switch {
		case isBlank(l):
			// A blank line ends the definition unless indented content
			// follows.
			if n+1 < len(lines) && indentation(lines[n+1]) >= 4 && !isBlank(lines[n+1]) {
				content = append(content, "")
				n++
				continue
			}
			goto done
		case indentation(l) >= 4:
			content = append(content, stripIndent(l, 4))
			n++
		case !p.startsBlock(l, lines[n:]) && !isBlank(content[len(content)-1]):
			// Lazy paragraph continuation.
			content = append(content, l)
			n++
		default:
			goto done
		}
	}

done:
	if p.skippedBlock(ast.BlockFootnoteDefinition) {
		return &ast.Empty[ast.None]{}, n, true
	}
	return &ast.FootnoteDefinition[ast.None]{
		Label:  label,
		Blocks: p.parseBlocks(content),
	}, n, true
}

// startsBlock reports whether a line opens a block other than a
// paragraph, which is what terminates lazy continuation. Recognizers
// running under the Ignore policy do not interrupt.
func (p *parser) startsBlock(line string, window []string) bool {
	if isThematicBreak(line) && !p.ignoredBlock(ast.BlockThematicBreak) {
		return true
	}
	if _, _, ok := atxHeading(line); ok && !p.ignoredBlock(ast.BlockHeading) {
		return true
	}
	if _, _, _, _, ok := fenceOpen(line); ok && !p.ignoredBlock(ast.BlockCode) {
		return true
	}
	if _, ok := blockquoteMarker(line); ok && !p.ignoredBlock(ast.BlockQuoteKind) {
		return true
	}
	if m, ok := parseListMarker(line); ok && m.canInterruptParagraph() &&
		!p.ignoredBlock(ast.BlockList) {
		return true
	}
	if htmlBlockStart(line, true) > 0 && !p.ignoredBlock(ast.BlockHTML) {
		return true
	}
	if len(window) > 1 && looksLikeTableHeader(line, window[1]) &&
		!p.ignoredBlock(ast.BlockTable) {
		return true
	}
	return false
}

// parseParagraph accumulates paragraph lines, watching for a Setext
// underline and for block openers that interrupt the paragraph.
func (p *parser) parseParagraph(lines []string) (block, int) {
	raw := []string{strings.TrimLeft(lines[0], " ")}
	n := 1
	for n < len(lines) {
		l := lines[n]
		if isBlank(l) {
			break
		}
		if level, ok := setextUnderline(l); ok && !p.ignoredBlock(ast.BlockHeading) {
			content := strings.TrimRight(strings.Join(raw, "\n"), " ")
			return p.makeHeading(ast.HeadingSetext, level, content), n + 1
		}
		if p.startsBlock(l, lines[n:]) {
			break
		}
		raw = append(raw, strings.TrimLeft(l, " "))
		n++
	}

	if p.skippedBlock(ast.BlockParagraph) {
		return &ast.Empty[ast.None]{}, n
	}
	if p.ignoredBlock(ast.BlockParagraph) {
		return nil, n
	}

	para := &ast.Paragraph[ast.None]{}
	content := strings.TrimRight(strings.Join(raw, "\n"), " \n")
	p.deferInline(content, func(ins []inline) { para.Content = ins })
	return para, n
}
