package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdtool/internal/cli"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "test", Commit: "abc", Date: "now"})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestConvert_StdinToMarkdown(t *testing.T) {
	out, err := execute(t, "#   Hello\n", "convert")
	require.NoError(t, err)
	assert.Equal(t, "# Hello\n", out)
}

func TestConvert_FileToHTML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.md")
	require.NoError(t, os.WriteFile(path, []byte("# Title"), 0o644))

	out, err := execute(t, "", "convert", path, "--to", "html")
	require.NoError(t, err)
	assert.Equal(t, "<h1>Title</h1>\n", out)
}

func TestConvert_ToLatex(t *testing.T) {
	out, err := execute(t, "*x*", "convert", "--to", "latex")
	require.NoError(t, err)
	assert.Contains(t, out, `\emph{x}`)
}

func TestConvert_UnknownFormat(t *testing.T) {
	_, err := execute(t, "x", "convert", "--to", "pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}

func TestConvert_OutputFile(t *testing.T) {
	dir := t.TempDir()
	outPath := filepath.Join(dir, "out.html")

	_, err := execute(t, "# H", "convert", "--to", "html", "-o", outPath)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "<h1>H</h1>\n", string(data))
}

func TestConvert_MissingInputFile(t *testing.T) {
	_, err := execute(t, "", "convert", filepath.Join(t.TempDir(), "nope.md"))
	require.Error(t, err)
}

func TestConvert_OptionsFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "opts.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("format: html"), 0o644))

	out, err := execute(t, "# H", "convert", "--config", cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "<h1>H</h1>\n", out)
}

func TestConvert_BadOptionsFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "opts.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("format: pdf"), 0o644))

	_, err := execute(t, "x", "convert", "--config", cfgPath)
	require.Error(t, err)
}

func TestInspect_Outline(t *testing.T) {
	out, err := execute(t, "# Title\n\n- a\n- b\n", "inspect", "--color", "never")
	require.NoError(t, err)
	assert.Contains(t, out, "Document outline")
	assert.Contains(t, out, "heading")
	assert.Contains(t, out, "list")
	assert.Contains(t, out, "Element counts")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "mdtool")
	assert.Contains(t, out, "test")
	assert.Contains(t, out, "abc")
}

func TestConvert_Help(t *testing.T) {
	out, err := execute(t, "", "convert", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "Convert a Markdown document")
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "--to")
}

func TestRootHelp_ListsCommands(t *testing.T) {
	out, err := execute(t, "", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "Available Commands:")
	assert.Contains(t, out, "convert")
	assert.Contains(t, out, "inspect")
	assert.Contains(t, out, "version")
	assert.Contains(t, out, "Flags:")
}
