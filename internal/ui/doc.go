// Package ui provides rendering functions for the propgrid terminal UI.
//
// It contains the Render function which takes RenderParams and produces
// the chrome around the property grid, plus the color palettes and
// Lipgloss styles shared with the grid. Rendering is pure; state lives in
// the app package.
package ui
