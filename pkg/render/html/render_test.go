package html_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdtool/pkg/ast"
	"github.com/yaklabco/mdtool/pkg/parser"
	"github.com/yaklabco/mdtool/pkg/render/html"
)

func renderInput(t *testing.T, input string) string {
	t.Helper()
	doc, err := parser.Parse(parser.NewConfig(), input)
	require.NoError(t, err)
	return html.Render(doc, html.DefaultConfig())
}

func TestRender_Heading(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "<h1>Hello</h1>\n", renderInput(t, "# Hello"))
}

func TestRender_HeadingAnchors(t *testing.T) {
	t.Parallel()

	doc, err := parser.Parse(parser.NewConfig(), "# Some Title")
	require.NoError(t, err)
	got := html.Render(doc, html.DefaultConfig().WithAnchorPrefix("doc-"))
	assert.Equal(t, `<h1 id="doc-some-title">Some Title</h1>`+"\n", got)
}

func TestRender_ParagraphEscapes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "<p>a &lt;b&gt; &amp; c</p>\n", renderInput(t, `a \<b\> & c`))
}

func TestRender_EmphasisStrongStrike(t *testing.T) {
	t.Parallel()

	got := renderInput(t, "*a* **b** ~~c~~")
	assert.Equal(t,
		"<p><em>a</em> <strong>b</strong> <del>c</del></p>\n", got)
}

func TestRender_Link(t *testing.T) {
	t.Parallel()

	got := renderInput(t, `[x](/u "t")`)
	assert.Equal(t, `<p><a href="/u" title="t">x</a></p>`+"\n", got)
}

func TestRender_Image(t *testing.T) {
	t.Parallel()

	got := renderInput(t, "![*alt* text](/i.png)")
	assert.Equal(t, `<p><img src="/i.png" alt="alt text" /></p>`+"\n", got)
}

func TestRender_Autolinks(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		`<p><a href="https://x.example">https://x.example</a></p>`+"\n",
		renderInput(t, "<https://x.example>"))
	assert.Equal(t,
		`<p><a href="mailto:a@b.example">a@b.example</a></p>`+"\n",
		renderInput(t, "<a@b.example>"))
}

func TestRender_CodeBlock(t *testing.T) {
	t.Parallel()

	got := renderInput(t, "```go\nx < 1\n```")
	assert.Equal(t,
		`<pre><code class="language-go">x &lt; 1`+"\n</code></pre>\n", got)
}

func TestRender_TightList(t *testing.T) {
	t.Parallel()

	got := renderInput(t, "- a\n- b")
	assert.Equal(t, "<ul>\n<li>a</li>\n<li>b</li>\n</ul>\n", got)
}

func TestRender_LooseList(t *testing.T) {
	t.Parallel()

	got := renderInput(t, "- a\n\n- b")
	assert.Equal(t,
		"<ul>\n<li>\n<p>a</p>\n</li>\n<li>\n<p>b</p>\n</li>\n</ul>\n", got)
}

func TestRender_OrderedListStart(t *testing.T) {
	t.Parallel()

	got := renderInput(t, "3. a")
	assert.Contains(t, got, `<ol start="3">`)
}

func TestRender_TaskList(t *testing.T) {
	t.Parallel()

	got := renderInput(t, "- [x] done\n- [ ] todo")
	assert.Contains(t, got, `<input type="checkbox" disabled="" checked="" /> done`)
	assert.Contains(t, got, `<input type="checkbox" disabled="" /> todo`)
}

func TestRender_Table(t *testing.T) {
	t.Parallel()

	got := renderInput(t, "|a|b|\n|:-|-:|\n|1|2|")
	assert.Contains(t, got, `<th align="left">a</th>`)
	assert.Contains(t, got, `<th align="right">b</th>`)
	assert.Contains(t, got, `<td align="left">1</td>`)
}

func TestRender_Alert(t *testing.T) {
	t.Parallel()

	got := renderInput(t, "> [!TIP]\n> use it")
	assert.Contains(t, got, `<div class="markdown-alert markdown-alert-tip">`)
	assert.Contains(t, got, `<p class="markdown-alert-title">Tip</p>`)
	assert.Contains(t, got, "<p>use it</p>")
}

func TestRender_Footnotes(t *testing.T) {
	t.Parallel()

	got := renderInput(t, "see[^a]\n\n[^a]: the note")
	assert.Contains(t, got, `<sup class="footnote-ref"><a href="#fn-1" id="fnref-1">1</a></sup>`)
	assert.Contains(t, got, `<li id="fn-1">`)
	assert.Contains(t, got, "<p>the note</p>")
	// The definition itself is elided from the body.
	assert.NotContains(t, got, "[^a]:")
}

func TestRender_UnknownFootnoteStaysLiteral(t *testing.T) {
	t.Parallel()

	got := renderInput(t, "see[^missing]")
	assert.Contains(t, got, "[^missing]")
}

func TestRender_LinkDefinitionElided(t *testing.T) {
	t.Parallel()

	got := renderInput(t, "[x][y]\n\n[y]: /u")
	assert.Equal(t, `<p><a href="/u">x</a></p>`+"\n", got)
}

func TestRender_HTMLPassthrough(t *testing.T) {
	t.Parallel()

	got := renderInput(t, "<div>\nraw\n</div>")
	assert.Equal(t, "<div>\nraw\n</div>\n", got)
}

func TestRender_LineBreaks(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "<p>a<br />\nb</p>\n", renderInput(t, "a  \nb"))
	assert.Equal(t, "<p>a\nb</p>\n", renderInput(t, "a\nb"))
}

func TestRender_GenericUserData(t *testing.T) {
	t.Parallel()

	// Any user-data instantiation renders.
	doc := &ast.Document[int]{Blocks: []ast.Block[int]{
		&ast.Paragraph[int]{
			Content:  []ast.Inline[int]{&ast.Text[int]{Content: "x", UserData: 7}},
			UserData: 7,
		},
	}}
	assert.Equal(t, "<p>x</p>\n", html.Render(doc, html.DefaultConfig()))
}
