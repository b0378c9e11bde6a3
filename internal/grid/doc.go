// Package grid provides a Bubble Tea property grid.
//
// The grid renders a two-column table, "Name" and "Value", with one row per
// item. Each value cell holds an Input whose control is chosen from the
// value's kind: a numeric field, a text field, a checkbox or an option
// list. Values of any other kind leave the cell empty. Every edit is
// reported through Options.OnChange as (row name, new value); the grid never
// writes back to the host's items.
//
// Controls are keyed by row ID, so re-supplying items keeps the local state
// of rows whose value kind did not change.
package grid
