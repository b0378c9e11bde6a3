package grid

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/henri123lemoine/propgrid/internal/ui"
)

// Styles holds the grid's presentation. Hosts can pass their own to
// restyle the grid; nothing in Styles changes behavior.
type Styles struct {
	// Container wraps the whole table.
	Container lipgloss.Style
	Border    lipgloss.Style
	Header    lipgloss.Style
	Name      lipgloss.Style
	Value     lipgloss.Style

	// Focus marks the row receiving keyboard input.
	Focus lipgloss.Style

	Muted     lipgloss.Style
	Checked   lipgloss.Style
	Unchecked lipgloss.Style
	Option    lipgloss.Style
	Highlight lipgloss.Style
}

// DefaultStyles returns the styles for the default palette.
func DefaultStyles() Styles {
	return StylesForTheme("auto")
}

// StylesForTheme returns styles built from the named theme's palette.
func StylesForTheme(theme string) Styles {
	p := ui.PaletteFor(theme)
	return Styles{
		Container: lipgloss.NewStyle(),
		Border:    lipgloss.NewStyle().Foreground(p.Secondary),
		Header:    lipgloss.NewStyle().Bold(true).Foreground(p.Muted).Padding(0, 1),
		Name:      lipgloss.NewStyle().Foreground(p.Text).Padding(0, 1),
		Value:     lipgloss.NewStyle().Foreground(p.Text).Padding(0, 1),
		Focus:     lipgloss.NewStyle().Foreground(p.Highlight).Bold(true),
		Muted:     lipgloss.NewStyle().Foreground(p.Muted),
		Checked:   lipgloss.NewStyle().Foreground(p.Success),
		Unchecked: lipgloss.NewStyle().Foreground(p.Muted),
		Option:    lipgloss.NewStyle().Foreground(p.Text),
		Highlight: lipgloss.NewStyle().Foreground(p.Highlight).Bold(true),
	}
}
