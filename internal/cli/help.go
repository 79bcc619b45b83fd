package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/yaklabco/mdtool/internal/ui/outline"
)

// helpStyles holds the Lipgloss styles used for --help output.
type helpStyles struct {
	Heading lipgloss.Style
	Command lipgloss.Style
	Dim     lipgloss.Style
}

func newHelpStyles(colorEnabled bool) *helpStyles {
	if !colorEnabled {
		return &helpStyles{}
	}
	return &helpStyles{
		Heading: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Command: lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		Dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// applyHelpStyles installs a styled help renderer on root and, through
// cobra's help-func inheritance, on every subcommand.
func applyHelpStyles(root *cobra.Command, colorMode string, w io.Writer) {
	styles := newHelpStyles(outline.ColorEnabled(colorMode, w))
	root.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		writeHelp(cmd.OutOrStdout(), cmd, styles)
	})
}

func writeHelp(w io.Writer, cmd *cobra.Command, s *helpStyles) {
	description := cmd.Long
	if description == "" {
		description = cmd.Short
	}
	if description != "" {
		fmt.Fprintln(w, description)
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, s.Heading.Render("Usage:"))
	if cmd.Runnable() {
		fmt.Fprintf(w, "  %s\n", s.Command.Render(cmd.UseLine()))
	}
	if cmd.HasAvailableSubCommands() {
		fmt.Fprintf(w, "  %s\n", s.Command.Render(cmd.CommandPath()+" [command]"))
	}

	if len(cmd.Aliases) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, s.Heading.Render("Aliases:"))
		fmt.Fprintf(w, "  %s\n", s.Dim.Render(strings.Join(cmd.Aliases, ", ")))
	}

	if cmd.HasExample() {
		fmt.Fprintln(w)
		fmt.Fprintln(w, s.Heading.Render("Examples:"))
		fmt.Fprintln(w, s.Dim.Render(cmd.Example))
	}

	if cmd.HasAvailableSubCommands() {
		fmt.Fprintln(w)
		fmt.Fprintln(w, s.Heading.Render("Available Commands:"))
		for _, sub := range cmd.Commands() {
			if !sub.IsAvailableCommand() && sub.Name() != "help" {
				continue
			}
			fmt.Fprintf(w, "  %s %s\n",
				s.Command.Render(padRight(sub.Name(), cmd.NamePadding())),
				sub.Short)
		}
	}

	if cmd.HasAvailableLocalFlags() {
		fmt.Fprintln(w)
		fmt.Fprintln(w, s.Heading.Render("Flags:"))
		fmt.Fprint(w, trimTrailingBlank(cmd.LocalFlags().FlagUsages()))
	}
	if cmd.HasAvailableInheritedFlags() {
		fmt.Fprintln(w)
		fmt.Fprintln(w, s.Heading.Render("Global Flags:"))
		fmt.Fprint(w, trimTrailingBlank(cmd.InheritedFlags().FlagUsages()))
	}

	if cmd.HasAvailableSubCommands() {
		fmt.Fprintln(w)
		fmt.Fprintln(w, s.Dim.Render(
			fmt.Sprintf("Use %q for more information about a command.",
				cmd.CommandPath()+" [command] --help")))
	}
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// trimTrailingBlank keeps pflag's aligned usage block but drops its
// trailing blank line so sections stay evenly spaced.
func trimTrailingBlank(s string) string {
	return strings.TrimRight(s, "\n") + "\n"
}
