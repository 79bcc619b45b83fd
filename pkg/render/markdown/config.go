// Package markdown renders a document tree back to Markdown text. The
// output is canonical: rendering, re-parsing, and rendering again is
// byte-stable.
package markdown

// Config controls the Markdown output format.
type Config struct {
	spacesBeforeListItem int
	emptyLineBeforeList  bool
}

// DefaultConfig returns the default rendering configuration: one space of
// list-item indentation and an empty line before lists.
func DefaultConfig() Config {
	return Config{
		spacesBeforeListItem: 1,
		emptyLineBeforeList:  true,
	}
}

// WithSpacesBeforeListItem sets the number of spaces before each list
// marker. Values outside 0-3 are clamped; 4 or more would turn items
// into indented code.
func (c Config) WithSpacesBeforeListItem(spaces int) Config {
	if spaces < 0 {
		spaces = 0
	}
	if spaces > 3 {
		spaces = 3
	}
	c.spacesBeforeListItem = spaces
	return c
}

// WithEmptyLineBeforeList records whether a blank line precedes lists
// that follow other blocks. Render does not read this setting: it always
// separates blocks, lists included, with a blank line.
func (c Config) WithEmptyLineBeforeList(enabled bool) Config {
	c.emptyLineBeforeList = enabled
	return c
}
