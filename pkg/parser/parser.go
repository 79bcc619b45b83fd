// Package parser implements a CommonMark + GFM Markdown parser producing
// the typed document tree defined in pkg/ast.
//
// Parsing is pure and synchronous: a fully buffered input string goes
// through line preprocessing, the block grammar (which collects link
// reference definitions), and the inline grammar, yielding a Document.
// Per-element behaviors and custom parsers are supplied via Config.
package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/mdtool/pkg/ast"
)

// ErrCustomParser reports a custom parser that violated its consumption
// contract by growing the remaining input.
var ErrCustomParser = errors.New("custom parser returned longer input than it was given")

type (
	block  = ast.Block[ast.None]
	inline = ast.Inline[ast.None]
)

// Parse parses input into a document using cfg. A nil cfg is equivalent
// to NewConfig(). The parser is total on UTF-8 input: malformed syntax is
// absorbed as literal content, and the only error conditions are custom
// parser contract violations.
func Parse(cfg *Config, input string) (*ast.Document[ast.None], error) {
	if cfg == nil {
		cfg = NewConfig()
	}
	p := &parser{
		cfg:  cfg,
		refs: make(map[string]refDef),
	}

	lines := preprocess(input)
	blocks := p.parseBlocks(lines)
	if p.err != nil {
		return nil, p.err
	}

	// The reference table is complete; fill in deferred inline content.
	for _, pend := range p.pending {
		pend.assign(p.parseInlines(pend.raw))
		if p.err != nil {
			return nil, p.err
		}
	}

	blocks = p.finalizeBlocks(blocks)
	return &ast.Document[ast.None]{Blocks: blocks}, nil
}

// refDef is a collected link reference definition.
type refDef struct {
	destination string
	title       string
}

// pendingInline defers inline parsing of a block's raw text until the
// block phase has collected every link reference definition.
type pendingInline struct {
	raw    string
	assign func([]inline)
}

type parser struct {
	cfg  *Config
	refs map[string]refDef

	pending []*pendingInline

	// err records a custom parser contract violation; it aborts the parse.
	err error
}

func (p *parser) deferInline(raw string, assign func([]inline)) {
	p.pending = append(p.pending, &pendingInline{raw: raw, assign: assign})
}

// lookupRef resolves a normalized reference label.
func (p *parser) lookupRef(label string) (refDef, bool) {
	def, ok := p.refs[NormalizeLabel(label)]
	return def, ok
}

// addRef records a definition. The first definition of a label wins.
func (p *parser) addRef(label, destination, title string) {
	key := NormalizeLabel(label)
	if _, exists := p.refs[key]; !exists {
		p.refs[key] = refDef{destination: destination, title: title}
	}
}

func (p *parser) failCustom(context string) {
	if p.err == nil {
		p.err = fmt.Errorf("%s: %w", context, ErrCustomParser)
	}
}

// finalizeBlocks applies Map and FlatMap behaviors bottom-up. Skip and
// Ignore were already applied at recognition time, and Empty placeholders
// are never re-dispatched.
func (p *parser) finalizeBlocks(blocks []block) []block {
	out := make([]block, 0, len(blocks))
	for _, b := range blocks {
		switch b := b.(type) {
		case *ast.BlockQuote[ast.None]:
			b.Blocks = p.finalizeBlocks(b.Blocks)
		case *ast.List[ast.None]:
			for i := range b.Items {
				b.Items[i].Blocks = p.finalizeBlocks(b.Items[i].Blocks)
			}
		case *ast.FootnoteDefinition[ast.None]:
			b.Blocks = p.finalizeBlocks(b.Blocks)
		case *ast.GitHubAlert[ast.None]:
			b.Blocks = p.finalizeBlocks(b.Blocks)
		}

		if b.Kind() == ast.BlockEmpty {
			out = append(out, b)
			continue
		}

		beh := p.cfg.blockBehavior(b.Kind())
		switch beh.Kind {
		case BehaviorMap:
			if beh.Map != nil {
				b = beh.Map(b)
			}
			out = append(out, b)
		case BehaviorFlatMap:
			if beh.FlatMap != nil {
				out = append(out, beh.FlatMap(b)...)
			} else {
				out = append(out, b)
			}
		default:
			out = append(out, b)
		}
	}
	return out
}

// preprocess splits input into lines separated by \n, \r, or \r\n,
// expands tabs to a 4-column tab stop, and replaces NUL bytes with
// U+FFFD. A missing trailing newline is synthesized by the split itself.
func preprocess(input string) []string {
	input = strings.ReplaceAll(input, "\x00", "�")

	var lines []string
	start := 0
	for i := 0; i < len(input); i++ {
		switch input[i] {
		case '\n':
			lines = append(lines, expandTabs(input[start:i]))
			start = i + 1
		case '\r':
			lines = append(lines, expandTabs(input[start:i]))
			if i+1 < len(input) && input[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	if start < len(input) {
		lines = append(lines, expandTabs(input[start:]))
	}
	return lines
}

// expandTabs rewrites tabs assuming a tab stop every 4 columns.
func expandTabs(line string) string {
	if !strings.Contains(line, "\t") {
		return line
	}
	var sb strings.Builder
	col := 0
	for _, r := range line {
		if r == '\t' {
			n := 4 - col%4
			for range n {
				sb.WriteByte(' ')
			}
			col += n
			continue
		}
		sb.WriteRune(r)
		col++
	}
	return sb.String()
}
