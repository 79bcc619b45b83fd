// Package html renders a document tree to semantic HTML. Text content is
// escaped; HTML carried in the tree passes through verbatim.
package html

// Config controls the HTML output.
type Config struct {
	anchorPrefix string
	headingIDs   bool
}

// DefaultConfig returns the default rendering configuration.
func DefaultConfig() Config {
	return Config{}
}

// WithAnchorPrefix sets the prefix for generated heading anchor IDs and
// enables them.
func (c Config) WithAnchorPrefix(prefix string) Config {
	c.anchorPrefix = prefix
	c.headingIDs = true
	return c
}

// WithHeadingIDs enables slugified id attributes on headings.
func (c Config) WithHeadingIDs(enabled bool) Config {
	c.headingIDs = enabled
	return c
}
