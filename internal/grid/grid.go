package grid

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/henri123lemoine/propgrid/internal/property"
	"github.com/henri123lemoine/propgrid/internal/ui"
)

// Column headers.
const (
	NameHeader  = "Name"
	ValueHeader = "Value"
)

// Options configures a grid.
type Options struct {
	// Compact drops the separators between rows.
	Compact bool

	// Styles overrides DefaultStyles when set.
	Styles *Styles

	// KeyMap overrides DefaultKeyMap when set.
	KeyMap *KeyMap

	// OnChange receives every edit as (row name, new value).
	OnChange func(name string, value any)

	// OnRowChange receives every edit with the index of the edited item.
	// Hosts with duplicate names use it to tell the rows apart.
	OnRowChange func(index int, name string, value any)
}

// Model is a two-column property grid.
type Model struct {
	rows    []property.Row
	visible []int
	inputs  map[string]*Input

	cursor  int
	offset  int
	editing bool

	compact     bool
	styles      Styles
	keys        KeyMap
	onChange    func(name string, value any)
	onRowChange func(index int, name string, value any)

	width  int
	height int
}

// New creates a grid for items.
func New(items []property.Item, opts Options) Model {
	m := Model{
		inputs:      make(map[string]*Input),
		compact:     opts.Compact,
		styles:      DefaultStyles(),
		keys:        DefaultKeyMap(),
		onChange:    opts.OnChange,
		onRowChange: opts.OnRowChange,
	}
	if opts.Styles != nil {
		m.styles = *opts.Styles
	}
	if opts.KeyMap != nil {
		m.keys = *opts.KeyMap
	}
	m.SetItems(items)
	return m
}

// SetItems replaces the grid's items. A control keeps its local state only
// while its row is supplied with the value it was built from; any other
// value rebuilds it.
func (m *Model) SetItems(items []property.Item) {
	m.rows = property.FormatRows(items)

	seen := make(map[string]bool, len(m.rows))
	for i, row := range m.rows {
		seen[row.ID] = true
		in, ok := m.inputs[row.ID]
		if ok && in.BuiltFrom(property.Classify(row.Value)) {
			in.onChange = m.bind(i, row)
			in.keys = m.keys
			continue
		}
		if ok && in.Focused() {
			m.editing = false
		}
		in = NewInput(row.Value, m.bind(i, row))
		in.keys = m.keys
		m.inputs[row.ID] = in
	}
	for id, in := range m.inputs {
		if !seen[id] {
			if in.Focused() {
				m.editing = false
			}
			delete(m.inputs, id)
		}
	}

	m.ShowAll()
}

// bind returns the change handler for row. The name is captured here so a
// later edit reports the name the row had when it was formatted.
func (m *Model) bind(index int, row property.Row) func(any) {
	name := row.Name
	notify, notifyRow := m.onChange, m.onRowChange
	return func(v any) {
		if notify != nil {
			notify(name, v)
		}
		if notifyRow != nil {
			notifyRow(index, name, v)
		}
	}
}

// ShowAll displays every row.
func (m *Model) ShowAll() {
	visible := make([]int, len(m.rows))
	for i := range m.rows {
		visible[i] = i
	}
	m.setVisible(visible)
}

// SetVisible displays only the rows with the given IDs, in the given order.
// Unknown IDs are ignored.
func (m *Model) SetVisible(ids []string) {
	index := make(map[string]int, len(m.rows))
	for i, row := range m.rows {
		index[row.ID] = i
	}
	visible := make([]int, 0, len(ids))
	for _, id := range ids {
		if i, ok := index[id]; ok {
			visible = append(visible, i)
		}
	}
	m.setVisible(visible)
}

func (m *Model) setVisible(visible []int) {
	m.stopEditing()
	m.visible = visible
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.offset = 0
	m.ensureVisible()
}

// SetSize sets the space the grid may use. Zero means unbounded.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.ensureVisible()
}

// SetCompact switches between the compact and regular layouts.
func (m *Model) SetCompact(compact bool) {
	m.compact = compact
	m.ensureVisible()
}

// Compact reports whether the compact layout is used.
func (m Model) Compact() bool {
	return m.compact
}

// SetStyles replaces the grid's styles.
func (m *Model) SetStyles(s Styles) {
	m.styles = s
}

// KeyMap returns the grid's bindings, e.g. for a help view.
func (m Model) KeyMap() KeyMap {
	return m.keys
}

// Rows returns the formatted rows.
func (m Model) Rows() []property.Row {
	rows := make([]property.Row, len(m.rows))
	copy(rows, m.rows)
	return rows
}

// VisibleRows returns the rows currently displayed, in display order.
func (m Model) VisibleRows() []property.Row {
	rows := make([]property.Row, len(m.visible))
	for i, idx := range m.visible {
		rows[i] = m.rows[idx]
	}
	return rows
}

// Focused returns the row receiving keyboard input.
func (m Model) Focused() (property.Row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.visible) {
		return property.Row{}, false
	}
	return m.rows[m.visible[m.cursor]], true
}

// Input returns the control for the row with the given ID.
func (m Model) Input(id string) *Input {
	return m.inputs[id]
}

// Editing reports whether keys currently go to a control.
func (m Model) Editing() bool {
	return m.editing
}

// Init returns no initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles a message. Keys move the focus or, while editing, go to
// the focused control.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.editing {
			if in := m.focusedInput(); in != nil {
				return m, in.Update(msg)
			}
		}
		return m, nil
	}

	if m.editing {
		return m.handleEditKeys(keyMsg)
	}
	return m.handleNavKeys(keyMsg)
}

// handleNavKeys handles keys while no control is focused.
func (m Model) handleNavKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Home):
		m.cursor = 0
	case key.Matches(msg, m.keys.End):
		m.cursor = len(m.visible) - 1
		if m.cursor < 0 {
			m.cursor = 0
		}
	case key.Matches(msg, m.keys.Toggle):
		if in := m.focusedInput(); in != nil && in.Kind() == property.KindBoolean {
			in.Toggle()
		}
	case key.Matches(msg, m.keys.Edit):
		in := m.focusedInput()
		if in == nil || !in.Editable() {
			return m, nil
		}
		if in.Kind() == property.KindBoolean {
			in.Toggle()
			return m, nil
		}
		m.editing = true
		cmd := in.Focus()
		m.ensureVisible()
		return m, cmd
	}
	m.ensureVisible()
	return m, nil
}

// handleEditKeys handles keys while a control is focused.
func (m Model) handleEditKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	in := m.focusedInput()
	if in == nil {
		m.editing = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.stopEditing()
		return m, nil
	case key.Matches(msg, m.keys.Commit) && in.Kind() != property.KindOptionList:
		m.stopEditing()
		return m, nil
	}

	cmd := in.Update(msg)
	if !in.Focused() {
		m.editing = false
	}
	return m, cmd
}

func (m *Model) stopEditing() {
	if !m.editing {
		return
	}
	if in := m.focusedInput(); in != nil {
		in.Blur()
	}
	m.editing = false
}

func (m Model) focusedInput() *Input {
	row, ok := m.Focused()
	if !ok {
		return nil
	}
	return m.inputs[row.ID]
}

// visibleCount returns how many rows, starting at the scroll offset, fit
// in the current height. At least one row is always shown.
func (m Model) visibleCount() int {
	if m.height <= 0 {
		return len(m.visible) - m.offset
	}
	// Header, its separator, the outer borders and two scroll hints.
	budget := m.height - 6
	n := 0
	for i := m.offset; i < len(m.visible); i++ {
		cost := m.rowLines(i)
		if n > 0 && cost > budget {
			break
		}
		budget -= cost
		n++
	}
	if n < 1 {
		n = 1
	}
	return n
}

// rowLines returns the lines the i-th visible row takes, separator included.
func (m Model) rowLines(i int) int {
	lines := 1
	if in := m.inputs[m.rows[m.visible[i]].ID]; in != nil {
		lines = in.lines()
	}
	if !m.compact {
		lines++
	}
	return lines
}

// ensureVisible keeps the cursor inside the scroll window.
func (m *Model) ensureVisible() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	for m.offset < m.cursor && m.cursor >= m.offset+m.visibleCount() {
		m.offset++
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// View renders the table.
func (m Model) View() string {
	s := m.styles

	start := m.offset
	end := start + m.visibleCount()
	if end > len(m.visible) {
		end = len(m.visible)
	}
	if start > end {
		start = end
	}

	valueWidth := 0
	if m.width > 0 {
		valueWidth = m.width/2 - 4
	}

	cells := make([][]string, 0, end-start)
	for i := start; i < end; i++ {
		row := m.rows[m.visible[i]]
		marker := "  "
		if i == m.cursor {
			marker = s.Focus.Render(ui.SymbolCursor + " ")
		}
		value := ""
		if in := m.inputs[row.ID]; in != nil {
			value = in.render(s, valueWidth)
		}
		cells = append(cells, []string{marker + row.Name, value})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(s.Border).
		BorderRow(!m.compact).
		Headers(NameHeader, ValueHeader).
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return s.Header
			case col == 0:
				return s.Name
			default:
				return s.Value
			}
		})
	if m.width > 0 {
		t = t.Width(m.width)
	}

	var b strings.Builder
	if start > 0 {
		b.WriteString(s.Muted.Render(fmt.Sprintf("  ↑ %d more above", start)) + "\n")
	}
	b.WriteString(t.String())
	if end < len(m.visible) {
		b.WriteString("\n" + s.Muted.Render(fmt.Sprintf("  ↓ %d more below", len(m.visible)-end)))
	}
	return s.Container.Render(b.String())
}
