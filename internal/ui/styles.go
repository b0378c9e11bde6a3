// Package ui handles terminal UI rendering.
package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette is a set of colors for one theme.
type Palette struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Danger    lipgloss.Color
	Muted     lipgloss.Color
	Highlight lipgloss.Color
	Text      lipgloss.Color
}

var (
	darkPalette = Palette{
		Primary:   lipgloss.Color("4"),   // Blue
		Secondary: lipgloss.Color("8"),   // Gray
		Success:   lipgloss.Color("2"),   // Green (dimmer)
		Warning:   lipgloss.Color("3"),   // Yellow (dimmer)
		Danger:    lipgloss.Color("1"),   // Red (dimmer)
		Muted:     lipgloss.Color("245"), // Light gray
		Highlight: lipgloss.Color("6"),   // Cyan
		Text:      lipgloss.Color("252"), // Light text
	}

	lightPalette = Palette{
		Primary:   lipgloss.Color("25"),
		Secondary: lipgloss.Color("250"),
		Success:   lipgloss.Color("28"),
		Warning:   lipgloss.Color("130"),
		Danger:    lipgloss.Color("160"),
		Muted:     lipgloss.Color("242"),
		Highlight: lipgloss.Color("31"),
		Text:      lipgloss.Color("235"),
	}
)

// PaletteFor returns the palette for theme: "light", "dark" or "auto".
// "auto" asks the terminal for its background.
func PaletteFor(theme string) Palette {
	switch theme {
	case "light":
		return lightPalette
	case "dark":
		return darkPalette
	}
	if lipgloss.HasDarkBackground() {
		return darkPalette
	}
	return lightPalette
}

// Styles
var (
	// Box styles
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(darkPalette.Secondary).
			Padding(0, 1)

	// Header style
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(darkPalette.Muted)

	// Path style
	PathStyle = lipgloss.NewStyle().
			Foreground(darkPalette.Muted)

	// Help style
	HelpStyle = lipgloss.NewStyle().
			Foreground(darkPalette.Muted)

	// Status line after an edit
	StatusStyle = lipgloss.NewStyle().
			Foreground(darkPalette.Success)

	// Error style
	ErrorStyle = lipgloss.NewStyle().
			Foreground(darkPalette.Danger)

	// Divider style
	DividerStyle = lipgloss.NewStyle().
			Foreground(darkPalette.Secondary)
)

// ApplyTheme restyles the package styles for theme.
func ApplyTheme(theme string) {
	p := PaletteFor(theme)
	BoxStyle = BoxStyle.BorderForeground(p.Secondary)
	HeaderStyle = HeaderStyle.Foreground(p.Muted)
	PathStyle = PathStyle.Foreground(p.Muted)
	HelpStyle = HelpStyle.Foreground(p.Muted)
	StatusStyle = StatusStyle.Foreground(p.Success)
	ErrorStyle = ErrorStyle.Foreground(p.Danger)
	DividerStyle = DividerStyle.Foreground(p.Secondary)
}

// Symbols
const (
	SymbolCursor  = "›"
	SymbolDivider = "─"
)
