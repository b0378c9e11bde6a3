// Package debug provides debug logging for propgrid.
//
// When enabled via the --debug flag, it logs every change notification,
// document load and save to a file, since the terminal is owned by the UI.
package debug
