package app

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/henri123lemoine/propgrid/internal/config"
	"github.com/henri123lemoine/propgrid/internal/debug"
	"github.com/henri123lemoine/propgrid/internal/document"
	"github.com/henri123lemoine/propgrid/internal/grid"
	"github.com/henri123lemoine/propgrid/internal/property"
	"github.com/henri123lemoine/propgrid/internal/ui"
)

// State represents the current UI state.
type State int

const (
	StateBrowse State = iota
	StateFilter
)

// Lines used by the chrome around the grid: box borders, header, two
// dividers, filter, status and the short help line.
const chromeHeight = 9

// Model is the main application model.
type Model struct {
	// Configuration
	config *config.Config

	// Data
	doc *document.Document

	// Components
	grid        grid.Model
	filterInput textinput.Model
	help        help.Model
	keys        KeyMap

	// State
	state State
	err   error

	// UI
	width  int
	height int

	// Exit behavior
	shouldQuit bool
}

// New creates a new Model editing doc.
func New(cfg *config.Config, doc *document.Document) Model {
	keys := KeyMapFromConfig(&cfg.Keys)
	styles := grid.StylesForTheme(cfg.UI.Theme)
	gridKeys := keys.Grid

	g := grid.New(doc.Items(), grid.Options{
		Compact:     cfg.UI.Compact,
		Styles:      &styles,
		KeyMap:      &gridKeys,
		OnRowChange: recordChange(doc),
	})

	filterInput := textinput.New()
	filterInput.Prompt = ""
	filterInput.Placeholder = "filter..."
	filterInput.CharLimit = 50

	h := help.New()
	h.ShowAll = cfg.UI.ShowHelp

	return Model{
		config:      cfg,
		doc:         doc,
		grid:        g,
		filterInput: filterInput,
		help:        h,
		keys:        keys,
		state:       StateBrowse,
	}
}

// recordChange applies edits reported by the grid to doc. Items are
// addressed by position since names may repeat.
func recordChange(doc *document.Document) func(index int, name string, value any) {
	return func(index int, name string, value any) {
		if !doc.ApplyAt(index, value) {
			debug.Log("change for property %q at %d ignored", name, index)
			return
		}
		debug.Log("change %s", ui.FormatChange(name, value))
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeGrid()
		return m, nil

	case tea.KeyMsg:
		// ctrl+c always quits, even mid-edit
		if msg.Type == tea.KeyCtrlC {
			m.shouldQuit = true
			return m, tea.Quit
		}
		if m.state == StateFilter {
			return m.handleFilterKeys(msg)
		}
		return m.handleBrowseKeys(msg)

	case DocumentLoadedMsg:
		if msg.Err != nil {
			m.err = msg.Err
			return m, nil
		}
		m.err = nil
		m.doc.Replace(msg.Doc)
		m.grid.SetItems(m.doc.Items())
		m.applyFilter()
		debug.Log("reloaded %d properties from %s", len(m.doc.Items()), m.doc.Path())
		return m, nil
	}

	// Anything else (cursor blinks) belongs to the focused input
	if m.state == StateFilter {
		var cmd tea.Cmd
		m.filterInput, cmd = m.filterInput.Update(msg)
		return m, cmd
	}
	var cmd tea.Cmd
	m.grid, cmd = m.grid.Update(msg)
	return m, cmd
}

// handleBrowseKeys handles keys while the grid has focus.
func (m Model) handleBrowseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While a cell is being edited every key belongs to the grid
	if !m.grid.Editing() {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.shouldQuit = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Filter):
			m.state = StateFilter
			return m, m.filterInput.Focus()
		case key.Matches(msg, m.keys.Reload):
			if m.doc.Path() == "" {
				return m, nil
			}
			return m, loadDocument(m.doc.Path())
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			m.resizeGrid()
			return m, nil
		case key.Matches(msg, m.keys.Cancel) && m.filterInput.Value() != "":
			m.filterInput.Reset()
			m.applyFilter()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.grid, cmd = m.grid.Update(msg)
	return m, cmd
}

// handleFilterKeys handles key presses in filter mode.
func (m Model) handleFilterKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.state = StateBrowse
		m.filterInput.Reset()
		m.filterInput.Blur()
		m.applyFilter()
		return m, nil
	case key.Matches(msg, m.keys.Accept):
		m.state = StateBrowse
		m.filterInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	m.applyFilter()
	return m, cmd
}

// rowSource implements fuzzy.Source over row names.
type rowSource []property.Row

func (r rowSource) String(i int) string {
	return r[i].Name
}

func (r rowSource) Len() int {
	return len(r)
}

// applyFilter narrows the grid to rows whose names fuzzy-match the filter.
func (m *Model) applyFilter() {
	filter := m.filterInput.Value()
	if filter == "" {
		m.grid.ShowAll()
		return
	}

	rows := m.grid.Rows()
	matches := fuzzy.FindFrom(filter, rowSource(rows))

	ids := make([]string, 0, len(matches))
	for _, match := range matches {
		ids = append(ids, rows[match.Index].ID)
	}
	m.grid.SetVisible(ids)
}

// resizeGrid gives the grid whatever the chrome leaves over.
func (m *Model) resizeGrid() {
	if m.width == 0 && m.height == 0 {
		return
	}
	chrome := chromeHeight
	if m.help.ShowAll {
		chrome += len(m.keys.FullHelp()[0]) - 1
	}
	m.help.Width = m.width - 4
	m.grid.SetSize(m.width-4, m.height-chrome)
}

// View renders the UI.
func (m Model) View() string {
	status := ""
	if c, ok := m.doc.LastChange(); ok {
		status = ui.FormatChange(c.Name, c.Value)
	}

	return ui.Render(ui.RenderParams{
		Width:       m.width,
		Height:      m.height,
		Source:      m.doc.Path(),
		Grid:        m.grid.View(),
		TotalRows:   len(m.grid.Rows()),
		VisibleRows: len(m.grid.VisibleRows()),
		Filtering:   m.state == StateFilter,
		FilterInput: m.filterInput.View(),
		FilterValue: m.filterInput.Value(),
		Status:      status,
		Err:         m.err,
		Help:        m.help.View(m.keys),
	})
}

// ShouldQuit returns true if the app should quit.
func (m Model) ShouldQuit() bool {
	return m.shouldQuit
}

// Document returns the document being edited.
func (m Model) Document() *document.Document {
	return m.doc
}

// Commands

func loadDocument(path string) tea.Cmd {
	return func() tea.Msg {
		defer debug.Timed("load " + path)()
		doc, err := document.Load(path)
		return DocumentLoadedMsg{Doc: doc, Err: err}
	}
}
