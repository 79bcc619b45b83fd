// Package outline renders a styled structural outline of a parsed
// document for the inspect command.
package outline

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles contains the styled renderers for outline output.
type Styles struct {
	Kind    lipgloss.Style
	Snippet lipgloss.Style
	Tree    lipgloss.Style
	Count   lipgloss.Style
	Title   lipgloss.Style
	Dim     lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return &Styles{}
	}
	return &Styles{
		Kind:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true),
		Snippet: lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		Tree:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Count:   lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		Title:   lipgloss.NewStyle().Bold(true).Underline(true),
		Dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// ColorEnabled decides whether to colorize output for the given mode
// ("auto", "always", "never") and writer.
func ColorEnabled(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		f, ok := w.(*os.File)
		return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
	}
}
