// Package property provides the data model shared by the property grid
// and its hosts.
//
// Hosts describe their data as an ordered list of Item values. FormatRows
// turns that list into display rows identified by position, and Classify
// maps a dynamic value onto the closed set of kinds the grid knows how to
// edit: numbers, text, booleans and option lists. Values of any other type
// classify as KindUnsupported and render as an empty cell.
package property
