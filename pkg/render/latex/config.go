// Package latex renders a document tree to LaTeX source.
package latex

// TableStyle selects the environment used for tables.
type TableStyle uint8

const (
	// TableTabular renders plain tabular environments.
	TableTabular TableStyle = iota

	// TableLongtable renders longtable environments for page-spanning
	// tables.
	TableLongtable

	// TableBooktabs renders tabular with booktabs rules.
	TableBooktabs
)

// CodeBlockStyle selects the environment used for code blocks.
type CodeBlockStyle uint8

const (
	// CodeVerbatim renders verbatim environments.
	CodeVerbatim CodeBlockStyle = iota

	// CodeListings renders lstlisting environments with a language
	// option.
	CodeListings

	// CodeMinted renders minted environments.
	CodeMinted
)

// Config controls the LaTeX output.
type Config struct {
	tableStyle TableStyle
	codeStyle  CodeBlockStyle
}

// DefaultConfig returns the default rendering configuration: tabular
// tables and verbatim code blocks.
func DefaultConfig() Config {
	return Config{}
}

// WithTableStyle selects the table environment.
func (c Config) WithTableStyle(style TableStyle) Config {
	c.tableStyle = style
	return c
}

// WithCodeBlockStyle selects the code block environment.
func (c Config) WithCodeBlockStyle(style CodeBlockStyle) Config {
	c.codeStyle = style
	return c
}
