package latex_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdtool/pkg/parser"
	"github.com/yaklabco/mdtool/pkg/render/latex"
)

func renderInput(t *testing.T, input string, cfg latex.Config) string {
	t.Helper()
	doc, err := parser.Parse(parser.NewConfig(), input)
	require.NoError(t, err)
	return latex.Render(doc, cfg)
}

func TestRender_Sectioning(t *testing.T) {
	t.Parallel()

	got := renderInput(t, "# A\n\n## B\n\n### C", latex.DefaultConfig())
	assert.Contains(t, got, `\section{A}`)
	assert.Contains(t, got, `\subsection{B}`)
	assert.Contains(t, got, `\subsubsection{C}`)
}

func TestRender_TextEscaping(t *testing.T) {
	t.Parallel()

	got := renderInput(t, "50% of $10 & a_b", latex.DefaultConfig())
	assert.Contains(t, got, `50\% of \$10 \& a\_b`)
}

func TestRender_InlineMarkup(t *testing.T) {
	t.Parallel()

	got := renderInput(t, "*a* **b** `c` ~~d~~", latex.DefaultConfig())
	assert.Contains(t, got, `\emph{a}`)
	assert.Contains(t, got, `\textbf{b}`)
	assert.Contains(t, got, `\texttt{c}`)
	assert.Contains(t, got, `\sout{d}`)
}

func TestRender_Link(t *testing.T) {
	t.Parallel()

	got := renderInput(t, "[x](https://e.example)", latex.DefaultConfig())
	assert.Contains(t, got, `\href{https://e.example}{x}`)
}

func TestRender_CodeBlockStyles(t *testing.T) {
	t.Parallel()

	input := "```go\nx := 1\n```"

	verbatim := renderInput(t, input, latex.DefaultConfig())
	assert.Contains(t, verbatim, "\\begin{verbatim}\nx := 1\n\\end{verbatim}")

	listings := renderInput(t, input,
		latex.DefaultConfig().WithCodeBlockStyle(latex.CodeListings))
	assert.Contains(t, listings, `\begin{lstlisting}[language=go]`)

	minted := renderInput(t, input,
		latex.DefaultConfig().WithCodeBlockStyle(latex.CodeMinted))
	assert.Contains(t, minted, `\begin{minted}{go}`)
}

func TestRender_TableStyles(t *testing.T) {
	t.Parallel()

	input := "|a|b|\n|:-|-:|\n|1|2|"

	tabular := renderInput(t, input, latex.DefaultConfig())
	assert.Contains(t, tabular, `\begin{tabular}{lr}`)
	assert.Contains(t, tabular, `\hline`)
	assert.Contains(t, tabular, "a & b \\\\")

	longtable := renderInput(t, input,
		latex.DefaultConfig().WithTableStyle(latex.TableLongtable))
	assert.Contains(t, longtable, `\begin{longtable}{lr}`)

	booktabs := renderInput(t, input,
		latex.DefaultConfig().WithTableStyle(latex.TableBooktabs))
	assert.Contains(t, booktabs, `\toprule`)
	assert.Contains(t, booktabs, `\midrule`)
	assert.Contains(t, booktabs, `\bottomrule`)
}

func TestRender_Lists(t *testing.T) {
	t.Parallel()

	bullets := renderInput(t, "- a\n- b", latex.DefaultConfig())
	assert.Contains(t, bullets, "\\begin{itemize}\n\\item a\n\\item b\n\\end{itemize}")

	ordered := renderInput(t, "4. a", latex.DefaultConfig())
	assert.Contains(t, ordered, `\begin{enumerate}`)
	assert.Contains(t, ordered, `\setcounter{enumi}{3}`)

	tasks := renderInput(t, "- [ ] a\n- [x] b", latex.DefaultConfig())
	assert.Contains(t, tasks, `\item[$\square$] a`)
	assert.Contains(t, tasks, `\item[$\boxtimes$] b`)
}

func TestRender_Alert(t *testing.T) {
	t.Parallel()

	got := renderInput(t, "> [!WARNING]\n> danger", latex.DefaultConfig())
	assert.Contains(t, got, `\begin{quote}`)
	assert.Contains(t, got, `\textbf{Warning}`)
	assert.Contains(t, got, "danger")
}

func TestRender_BlockQuote(t *testing.T) {
	t.Parallel()

	got := renderInput(t, "> quoted", latex.DefaultConfig())
	assert.Contains(t, got, "\\begin{quote}\nquoted\n\n\\end{quote}")
}
