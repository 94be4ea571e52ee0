// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// Rule state styles
	Enabled  lipgloss.Style
	Disabled lipgloss.Style
	Excluded lipgloss.Style
	Styled   lipgloss.Style

	// Rule components
	RuleID  lipgloss.Style
	Alias   lipgloss.Style
	Options lipgloss.Style
	Unknown lipgloss.Style

	// Message styles
	Error   lipgloss.Style
	Warning lipgloss.Style

	// Summary styles
	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style

	// Table styles
	TableHeader    lipgloss.Style
	TableLegend    lipgloss.Style
	TableSeparator lipgloss.Style

	// Misc
	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

// newColorStyles creates styles with ANSI 256 colors.
func newColorStyles() *Styles {
	return &Styles{
		Enabled:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Disabled: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Excluded: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		Styled:   lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),

		RuleID:  lipgloss.NewStyle().Bold(true),
		Alias:   lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		Options: lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Unknown: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),

		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),

		SummaryTitle: lipgloss.NewStyle().Bold(true),
		SummaryValue: lipgloss.NewStyle(),

		TableHeader:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7")),
		TableLegend:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true),
		TableSeparator: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),

		Dim:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

// newNoColorStyles creates styles with no color formatting.
func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Enabled:        plain,
		Disabled:       plain,
		Excluded:       plain,
		Styled:         plain,
		RuleID:         plain,
		Alias:          plain,
		Options:        plain,
		Unknown:        plain,
		Error:          plain,
		Warning:        plain,
		SummaryTitle:   plain,
		SummaryValue:   plain,
		TableHeader:    plain,
		TableLegend:    plain,
		TableSeparator: plain,
		Dim:            plain,
		Bold:           plain,
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		// https://no-color.org/
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
