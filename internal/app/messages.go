// Package app contains the main application state and logic.
package app

import (
	"github.com/henri123lemoine/propgrid/internal/document"
)

// Message types for the bubbletea app.

// DocumentLoadedMsg is sent when a document has been (re)loaded from disk.
type DocumentLoadedMsg struct {
	Doc *document.Document
	Err error
}
