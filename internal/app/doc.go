// Package app provides the Bubble Tea host application for propgrid.
//
// The host owns a document.Document, hands its items to a grid.Model and
// applies every change the grid reports back to the document. On top of
// the grid it adds a fuzzy name filter, reloading from disk and a help
// footer.
//
// The main type is Model, which implements the Bubble Tea interface
// (Init, Update, View).
package app
