package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdtool/pkg/config"
	"github.com/yaklabco/mdtool/pkg/parser"
	"github.com/yaklabco/mdtool/pkg/render/latex"
)

func TestFromYAML(t *testing.T) {
	t.Parallel()

	data := []byte(`
format: latex
skip_blocks:
  - html-block
ignore_inlines:
  - emphasis
latex:
  table_style: booktabs
  code_block_style: listings
markdown:
  spaces_before_list_item: 0
`)
	cfg, err := config.FromYAML(data)
	require.NoError(t, err)

	assert.Equal(t, config.FormatLaTeX, cfg.Format)
	assert.Equal(t, []string{"html-block"}, cfg.SkipBlocks)
	assert.Equal(t, []string{"emphasis"}, cfg.IgnoreInlines)
}

func TestFromYAML_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.FromYAML([]byte("{}"))
	require.NoError(t, err)
	assert.Equal(t, config.FormatMarkdown, cfg.Format)
}

func TestFromYAML_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
	}{
		{"bad format", "format: pdf"},
		{"bad block kind", "skip_blocks: [nonsense]"},
		{"bad inline kind", "ignore_inlines: [nonsense]"},
		{"bad table style", "latex: {table_style: fancy}"},
		{"bad code style", "latex: {code_block_style: fancy}"},
		{"bad yaml", "format: [unclosed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := config.FromYAML([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestToYAML_RoundTrip(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Format = config.FormatHTML
	cfg.SkipBlocks = []string{"table"}

	data, err := cfg.ToYAML()
	require.NoError(t, err)

	loaded, err := config.FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, cfg.Format, loaded.Format)
	assert.Equal(t, cfg.SkipBlocks, loaded.SkipBlocks)
}

func TestParserConfig_AppliesPolicies(t *testing.T) {
	t.Parallel()

	cfg, err := config.FromYAML([]byte("skip_blocks: [heading]\nignore_blocks: [thematic-break]"))
	require.NoError(t, err)

	doc, err := parser.Parse(cfg.ParserConfig(), "# h\n\n---")
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 2)
	assert.Equal(t, "empty", doc.Blocks[0].Kind().String())
	assert.Equal(t, "paragraph", doc.Blocks[1].Kind().String())
}

func TestRendererConfigs(t *testing.T) {
	t.Parallel()

	cfg, err := config.FromYAML([]byte(`
latex:
  table_style: longtable
html:
  anchor_prefix: x-
`))
	require.NoError(t, err)

	// The mapped configs build without error and honor the styles.
	_ = cfg.MarkdownConfig()
	_ = cfg.HTMLConfig()
	lc := cfg.LaTeXConfig()
	_ = lc
	assert.Equal(t, latex.DefaultConfig().WithTableStyle(latex.TableLongtable), lc)
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	// No file: defaults.
	cfg, err := config.Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, config.FormatMarkdown, cfg.Format)

	// With file: loaded.
	path := filepath.Join(dir, config.DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte("format: html"), 0o644))
	cfg, err = config.Discover(dir)
	require.NoError(t, err)
	assert.Equal(t, config.FormatHTML, cfg.Format)
}

func TestLoadFile_Missing(t *testing.T) {
	t.Parallel()

	_, err := config.LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
