package grid

import (
	"fmt"
	"math"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/henri123lemoine/propgrid/internal/property"
)

type change struct {
	Name  string
	Value any
}

type recorder struct {
	changes []change
}

func (r *recorder) onChange(name string, value any) {
	r.changes = append(r.changes, change{Name: name, Value: value})
}

func exampleItems() []property.Item {
	return []property.Item{
		property.Pair("Width", 100),
		property.Pair("Visible", true),
		property.Pair("Color", []string{"red", "green", "blue"}),
	}
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyBack  = tea.KeyMsg{Type: tea.KeyBackspace}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		m, _ = m.Update(msg)
	}
	return m
}

func TestNewFormatsRows(t *testing.T) {
	m := New(exampleItems(), Options{})

	rows := m.Rows()
	require.Len(t, rows, 3)
	for i, row := range rows {
		assert.Equal(t, fmt.Sprint(i), row.ID)
	}
	assert.Equal(t, "Width", rows[0].Name)
	assert.Equal(t, "Color", rows[2].Name)

	assert.Equal(t, property.KindNumber, m.Input("0").Kind())
	assert.Equal(t, property.KindBoolean, m.Input("1").Kind())
	assert.Equal(t, property.KindOptionList, m.Input("2").Kind())
	assert.False(t, m.Editing())
}

func TestRenderingTwiceIsIdempotent(t *testing.T) {
	a := New(exampleItems(), Options{})
	b := New(exampleItems(), Options{})

	assert.Equal(t, a.Rows(), b.Rows())
	assert.Equal(t, a.View(), b.View())

	a.SetItems(exampleItems())
	assert.Equal(t, b.Rows(), a.Rows())
}

func TestEditNumber(t *testing.T) {
	rec := &recorder{}
	m := New(exampleItems(), Options{OnChange: rec.onChange})

	m = send(m, keyEnter)
	require.True(t, m.Editing())

	// "100" -> "" one keystroke at a time, then type "150"
	m = send(m, keyBack, keyBack, keyBack, runes("150"))

	require.Len(t, rec.changes, 4)
	assert.Equal(t, change{"Width", 10.0}, rec.changes[0])
	assert.Equal(t, change{"Width", 1.0}, rec.changes[1])
	assert.Equal(t, "Width", rec.changes[2].Name)
	assert.True(t, math.IsNaN(rec.changes[2].Value.(float64)), "empty number field reports NaN")
	assert.Equal(t, change{"Width", 150.0}, rec.changes[3])

	m = send(m, keyEnter)
	assert.False(t, m.Editing())
	assert.Equal(t, 150.0, m.Input("0").Value())
	assert.Len(t, rec.changes, 4, "leaving the field is not an edit")
}

func TestEditNumberMalformedIsPropagated(t *testing.T) {
	rec := &recorder{}
	m := New([]property.Item{property.Pair("Size", 3)}, Options{OnChange: rec.onChange})

	m = send(m, keyEnter, runes("x"))

	require.Len(t, rec.changes, 1)
	assert.True(t, math.IsNaN(rec.changes[0].Value.(float64)))
	assert.True(t, math.IsNaN(m.Input("0").Value().(float64)))
}

func TestEditText(t *testing.T) {
	rec := &recorder{}
	m := New([]property.Item{property.Pair("Title", "Report")}, Options{OnChange: rec.onChange})

	// j and k are text while editing, not navigation
	m = send(m, keyEnter, runes("jk"), keyEsc)

	require.Len(t, rec.changes, 1)
	assert.Equal(t, change{"Title", "Reportjk"}, rec.changes[0])
	assert.False(t, m.Editing())
}

func TestToggleBoolean(t *testing.T) {
	rec := &recorder{}
	m := New(exampleItems(), Options{OnChange: rec.onChange})

	m = send(m, keyDown, keySpace)
	require.Len(t, rec.changes, 1)
	assert.Equal(t, change{"Visible", false}, rec.changes[0])

	m = send(m, keyEnter)
	require.Len(t, rec.changes, 2)
	assert.Equal(t, change{"Visible", true}, rec.changes[1])
	assert.False(t, m.Editing(), "booleans toggle without entering edit mode")
}

func TestSelectOption(t *testing.T) {
	rec := &recorder{}
	m := New(exampleItems(), Options{OnChange: rec.onChange})

	m = send(m, keyDown, keyDown, keyEnter)
	require.True(t, m.Editing())
	assert.Empty(t, rec.changes, "opening the list is not an edit")

	m = send(m, keyDown, keyEnter)

	require.Len(t, rec.changes, 1)
	assert.Equal(t, change{"Color", "green"}, rec.changes[0])
	assert.False(t, m.Editing())

	in := m.Input("2")
	assert.Equal(t, property.KindOptionList, in.Kind(), "the control stays an option list")
	assert.Equal(t, "green", in.Value())
	assert.Equal(t, []string{"red", "green", "blue"}, in.Options())
}

func TestCancelOptionList(t *testing.T) {
	rec := &recorder{}
	m := New(exampleItems(), Options{OnChange: rec.onChange})

	m = send(m, keyDown, keyDown, keyEnter, keyDown, keyEsc)

	assert.Empty(t, rec.changes)
	assert.False(t, m.Editing())
	assert.Contains(t, m.View(), "▾ red")
}

func TestUnsupportedValues(t *testing.T) {
	rec := &recorder{}
	items := []property.Item{
		property.Pair("Meta", map[string]any{"a": 1}),
		property.Pair("Missing", nil),
		property.Pair("Nested", []any{[]any{"a"}}),
	}
	m := New(items, Options{OnChange: rec.onChange})

	for i := range items {
		in := m.Input(fmt.Sprint(i))
		require.NotNil(t, in)
		assert.Equal(t, property.KindUnsupported, in.Kind())
		assert.False(t, in.Editable())
		assert.Empty(t, in.View())
	}

	m = send(m, keyEnter, keySpace, runes("abc"), keyDown, keyEnter, keySpace)

	assert.Empty(t, rec.changes)
	assert.False(t, m.Editing())
}

func TestNoCallbackIsAllowed(t *testing.T) {
	m := New(exampleItems(), Options{})

	assert.NotPanics(t, func() {
		m = send(m, keyDown, keySpace)
		m = send(m, keyUp, keyEnter, runes("5"), keyEnter)
	})

	assert.Equal(t, false, m.Input("1").Value())
	assert.Equal(t, 1005.0, m.Input("0").Value())
}

func TestDuplicateNamesAreIndependent(t *testing.T) {
	rec := &recorder{}
	items := []property.Item{property.Pair("flag", true), property.Pair("flag", true)}
	m := New(items, Options{OnChange: rec.onChange})

	m = send(m, keyDown, keySpace)

	assert.Equal(t, []change{{"flag", false}}, rec.changes)
	assert.Equal(t, true, m.Input("0").Value())
	assert.Equal(t, false, m.Input("1").Value())
}

func TestSetItemsRebuildsOnKindChange(t *testing.T) {
	rec := &recorder{}
	m := New(exampleItems(), Options{OnChange: rec.onChange})

	items := exampleItems()
	items[0].Value = "wide"
	m.SetItems(items)

	in := m.Input("0")
	assert.Equal(t, property.KindText, in.Kind())
	assert.Equal(t, "wide", in.Value())

	m = send(m, keyEnter, runes("r"))
	assert.Equal(t, []change{{"Width", "wider"}}, rec.changes)
}

func TestSetItemsKeepsStateForUnchangedValue(t *testing.T) {
	m := New(exampleItems(), Options{})
	m = send(m, keyDown, keySpace)
	require.Equal(t, false, m.Input("1").Value())

	before := m.Input("1")
	m.SetItems(exampleItems())

	assert.Same(t, before, m.Input("1"))
	assert.Equal(t, false, m.Input("1").Value())
}

func TestSetItemsRebuildsOnValueChange(t *testing.T) {
	m := New(exampleItems(), Options{})
	m = send(m, keyEnter, keyBack, runes("5"), keyEnter)
	require.Equal(t, 105.0, m.Input("0").Value())

	items := exampleItems()
	items[0].Value = 250
	m.SetItems(items)

	assert.Equal(t, 250.0, m.Input("0").Value())
	assert.Contains(t, m.View(), "250")
	assert.NotContains(t, m.View(), "105")
}

func TestSetItemsReplacesOptions(t *testing.T) {
	rec := &recorder{}
	m := New([]property.Item{property.Pair("C", []string{"a", "b"})}, Options{OnChange: rec.onChange})

	m.SetItems([]property.Item{property.Pair("C", []string{"x", "y", "z"})})
	assert.Equal(t, []string{"x", "y", "z"}, m.Input("0").Options())

	m = send(m, keyEnter, keyEnter)
	assert.Equal(t, []change{{"C", "x"}}, rec.changes)
}

func TestOnRowChangeReportsIndex(t *testing.T) {
	type rowChange struct {
		Index int
		Name  string
		Value any
	}
	var got []rowChange
	rec := &recorder{}
	m := New([]property.Item{property.Pair("a", true), property.Pair("a", true)}, Options{
		OnChange: rec.onChange,
		OnRowChange: func(index int, name string, value any) {
			got = append(got, rowChange{index, name, value})
		},
	})

	send(m, keyDown, keySpace)

	assert.Equal(t, []rowChange{{1, "a", false}}, got)
	assert.Equal(t, []change{{"a", false}}, rec.changes, "OnChange still fires")
}

func TestSetItemsRebindsName(t *testing.T) {
	rec := &recorder{}
	m := New([]property.Item{property.Pair("A", true)}, Options{OnChange: rec.onChange})

	m.SetItems([]property.Item{property.Pair("B", true)})
	m = send(m, keySpace)

	assert.Equal(t, []change{{"B", false}}, rec.changes)
}

func TestSetItemsDropsRemovedRows(t *testing.T) {
	m := New(exampleItems(), Options{})
	m = send(m, keyDown, keyDown)

	m.SetItems(exampleItems()[:1])

	assert.Nil(t, m.Input("1"))
	assert.Nil(t, m.Input("2"))
	row, ok := m.Focused()
	require.True(t, ok)
	assert.Equal(t, "0", row.ID)
}

func TestSetItemsEndsEditingOfRebuiltRow(t *testing.T) {
	m := New(exampleItems(), Options{})
	m = send(m, keyEnter)
	require.True(t, m.Editing())

	items := exampleItems()
	items[0].Value = false
	m.SetItems(items)

	assert.False(t, m.Editing())
	assert.Equal(t, property.KindBoolean, m.Input("0").Kind())
}

func TestNavigation(t *testing.T) {
	m := New(exampleItems(), Options{})

	row, _ := m.Focused()
	assert.Equal(t, "0", row.ID)

	m = send(m, keyUp)
	row, _ = m.Focused()
	assert.Equal(t, "0", row.ID, "clamped at the top")

	m = send(m, runes("G"))
	row, _ = m.Focused()
	assert.Equal(t, "2", row.ID)

	m = send(m, keyDown)
	row, _ = m.Focused()
	assert.Equal(t, "2", row.ID, "clamped at the bottom")

	m = send(m, runes("k"), runes("g"))
	row, _ = m.Focused()
	assert.Equal(t, "0", row.ID)
}

func TestSetVisible(t *testing.T) {
	m := New(exampleItems(), Options{})

	m.SetVisible([]string{"2", "0", "nope"})

	visible := m.VisibleRows()
	require.Len(t, visible, 2)
	assert.Equal(t, "Color", visible[0].Name)
	assert.Equal(t, "2", visible[0].ID, "filtering never renumbers rows")
	assert.Equal(t, "Width", visible[1].Name)

	row, ok := m.Focused()
	require.True(t, ok)
	assert.Equal(t, "2", row.ID)

	m.SetVisible(nil)
	_, ok = m.Focused()
	assert.False(t, ok)
	m = send(m, keyEnter, keySpace)
	assert.False(t, m.Editing())

	m.ShowAll()
	assert.Len(t, m.VisibleRows(), 3)
}

func TestView(t *testing.T) {
	m := New(exampleItems(), Options{})
	view := m.View()

	assert.Contains(t, view, NameHeader)
	assert.Contains(t, view, ValueHeader)
	assert.Contains(t, view, "Width")
	assert.Contains(t, view, "100")
	assert.Contains(t, view, "[x]")
	assert.Contains(t, view, "▾ red")
}

func TestViewOpenOptionList(t *testing.T) {
	m := New(exampleItems(), Options{})
	m = send(m, keyDown, keyDown, keyEnter)

	view := m.View()
	assert.Contains(t, view, "red")
	assert.Contains(t, view, "green")
	assert.Contains(t, view, "blue")
}

func TestViewEmpty(t *testing.T) {
	m := New(nil, Options{})

	assert.Empty(t, m.Rows())
	view := m.View()
	assert.Contains(t, view, NameHeader)
	assert.Contains(t, view, ValueHeader)

	_, ok := m.Focused()
	assert.False(t, ok)
	assert.NotPanics(t, func() { send(m, keyDown, keyEnter, keySpace) })
}

func TestCompactIsDenser(t *testing.T) {
	regular := New(exampleItems(), Options{})
	compact := New(exampleItems(), Options{Compact: true})

	assert.True(t, compact.Compact())
	assert.Less(t,
		strings.Count(compact.View(), "\n"),
		strings.Count(regular.View(), "\n"),
	)

	regular.SetCompact(true)
	assert.Equal(t, compact.View(), regular.View())
}

func TestScrolling(t *testing.T) {
	items := make([]property.Item, 20)
	for i := range items {
		items[i] = property.Pair(fmt.Sprintf("p%02d", i), i)
	}
	m := New(items, Options{Compact: true})
	m.SetSize(80, 10)

	view := m.View()
	assert.Contains(t, view, "p00")
	assert.NotContains(t, view, "p19")
	assert.Contains(t, view, "more below")

	m = send(m, runes("G"))
	view = m.View()
	assert.Contains(t, view, "p19")
	assert.NotContains(t, view, "p00")
	assert.Contains(t, view, "more above")
}

func TestOpenOptionListFitsHeight(t *testing.T) {
	items := []property.Item{property.Pair("Color", []string{"o1", "o2", "o3", "o4", "o5"})}
	for i := 1; i <= 6; i++ {
		items = append(items, property.Pair(fmt.Sprintf("p%d", i), i))
	}
	m := New(items, Options{Compact: true})
	m.SetSize(80, 10)
	require.Contains(t, m.View(), "p3")

	m = send(m, keyEnter)
	require.True(t, m.Editing())

	view := m.View()
	assert.LessOrEqual(t, lipgloss.Height(view), 10)
	assert.Contains(t, view, "o5")
	assert.Contains(t, view, "↓ 6 more below")
	assert.NotContains(t, view, "p1")

	m = send(m, keyEsc)
	assert.Contains(t, m.View(), "p3", "closing the list frees the space again")
}

func TestCustomKeyMapAndStyles(t *testing.T) {
	km := DefaultKeyMap()
	km.Toggle.SetKeys("t")
	st := DefaultStyles()

	rec := &recorder{}
	m := New(exampleItems(), Options{KeyMap: &km, Styles: &st, OnChange: rec.onChange})

	m = send(m, keyDown, keySpace)
	assert.Empty(t, rec.changes)

	m = send(m, runes("t"))
	assert.Equal(t, []change{{"Visible", false}}, rec.changes)
	assert.Equal(t, []string{"t"}, m.KeyMap().Toggle.Keys())
}
