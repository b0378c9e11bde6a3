package ui

import (
	"fmt"
	"path/filepath"
	"strings"
)

// RenderParams contains all parameters needed for rendering.
type RenderParams struct {
	Width  int
	Height int

	// Source is the document path, empty for in-memory items.
	Source string

	Grid        string
	TotalRows   int
	VisibleRows int
	Filtering   bool
	FilterInput string
	FilterValue string
	Status      string
	Err         error
	Help        string
}

// MinWidth is the absolute minimum terminal width we try to support.
const MinWidth = 30

// MinHeight is the absolute minimum terminal height we try to support.
const MinHeight = 8

// Render renders the full UI around an already rendered grid.
func Render(p RenderParams) string {
	if p.Width < MinWidth {
		p.Width = MinWidth
	}
	if p.Height < MinHeight {
		p.Height = MinHeight
	}

	var b strings.Builder
	contentWidth := p.Width - 4 // Account for box borders and padding

	// Header
	source := "(in memory)"
	if p.Source != "" {
		source = filepath.Base(p.Source)
	}
	header := HeaderStyle.Render("PROPERTIES") + "  " + PathStyle.Render(source)
	if p.VisibleRows != p.TotalRows {
		header += "  " + PathStyle.Render(fmt.Sprintf("%d/%d", p.VisibleRows, p.TotalRows))
	}
	b.WriteString(header + "\n")
	b.WriteString(divider(contentWidth) + "\n")

	if p.Filtering {
		b.WriteString("/" + p.FilterInput + "\n")
	} else if p.FilterValue != "" {
		b.WriteString(PathStyle.Render("filter: "+p.FilterValue) + "\n")
	}

	if p.Err != nil {
		b.WriteString(ErrorStyle.Render("Error: "+p.Err.Error()) + "\n")
	}

	if p.TotalRows == 0 {
		b.WriteString(PathStyle.Render("No properties.") + "\n")
	} else if p.VisibleRows == 0 {
		b.WriteString(PathStyle.Render("No properties match the filter.") + "\n")
	}
	b.WriteString(p.Grid + "\n")

	// Footer
	b.WriteString(divider(contentWidth) + "\n")
	if p.Status != "" {
		b.WriteString(StatusStyle.Render(p.Status) + "\n")
	}
	b.WriteString(HelpStyle.Render(p.Help))

	return wrapInBox(b.String(), p.Width)
}

func divider(width int) string {
	if width < 1 {
		width = 1
	}
	return DividerStyle.Render(strings.Repeat(SymbolDivider, width))
}

// wrapInBox wraps content in the application box.
func wrapInBox(content string, width int) string {
	return BoxStyle.Width(width - 2).Render(content)
}

// FormatChange formats an edit for the status line.
func FormatChange(name string, value any) string {
	return fmt.Sprintf("%s = %v", name, value)
}
