package grid

import (
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/henri123lemoine/propgrid/internal/property"
	"github.com/henri123lemoine/propgrid/internal/ui"
)

// Input is the editing control for a single value. Its kind is fixed when
// it is created; a value of another kind needs a new Input.
type Input struct {
	kind  property.Kind
	value any

	// source is the value the control was built from.
	source property.Value

	// Number and text
	field textinput.Model

	// Boolean
	checked bool

	// Option list
	options   []string
	selected  int
	highlight int
	open      bool

	focused  bool
	keys     KeyMap
	onChange func(any)
}

// NewInput creates the control for value. onChange is called with every
// new value the user produces; it may be nil.
func NewInput(value any, onChange func(any)) *Input {
	v := property.Classify(value)
	in := &Input{
		kind:     v.Kind,
		value:    v.Raw(),
		source:   v,
		keys:     DefaultKeyMap(),
		onChange: onChange,
	}

	switch v.Kind {
	case property.KindNumber:
		in.field = newField()
		in.field.SetValue(formatNumber(v.Number))
	case property.KindText:
		in.field = newField()
		in.field.SetValue(v.Text)
	case property.KindBoolean:
		in.checked = v.Bool
	case property.KindOptionList:
		in.options = v.Options
	}

	return in
}

func newField() textinput.Model {
	ti := textinput.New()
	ti.Prompt = ""
	return ti
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// parseNumber never fails: unparsable input becomes NaN.
func parseNumber(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// Kind returns the kind the control was built for.
func (in *Input) Kind() property.Kind {
	return in.kind
}

// Value returns the control's current local value.
func (in *Input) Value() any {
	return in.value
}

// BuiltFrom reports whether the control was created for a value equal to v.
func (in *Input) BuiltFrom(v property.Value) bool {
	return in.source.Equal(v)
}

// lines returns how many lines the control renders.
func (in *Input) lines() int {
	if in.kind == property.KindOptionList && in.open && len(in.options) > 1 {
		return len(in.options)
	}
	return 1
}

// Editable reports whether the control accepts input at all.
func (in *Input) Editable() bool {
	return in.kind != property.KindUnsupported
}

// Focused reports whether the control is receiving keys.
func (in *Input) Focused() bool {
	return in.focused
}

// Options returns the choices of an option list.
func (in *Input) Options() []string {
	return in.options
}

// Focus starts editing. Booleans are toggled directly and never focus.
func (in *Input) Focus() tea.Cmd {
	switch in.kind {
	case property.KindNumber, property.KindText:
		in.focused = true
		in.field.CursorEnd()
		return in.field.Focus()
	case property.KindOptionList:
		in.focused = true
		in.open = true
		in.highlight = in.selected
	}
	return nil
}

// Blur stops editing. An open option list closes without selecting.
func (in *Input) Blur() {
	in.focused = false
	in.open = false
	if in.kind == property.KindNumber || in.kind == property.KindText {
		in.field.Blur()
	}
}

// Toggle flips a boolean control.
func (in *Input) Toggle() {
	if in.kind != property.KindBoolean {
		return
	}
	in.checked = !in.checked
	in.set(in.checked)
}

// Select picks the option at index i. Picking the current option again is
// not an edit.
func (in *Input) Select(i int) {
	if in.kind != property.KindOptionList || i < 0 || i >= len(in.options) {
		return
	}
	if i == in.selected && in.isString() {
		return
	}
	in.selected = i
	in.highlight = i
	in.set(in.options[i])
}

// isString reports whether a selection has already replaced the initial
// list value.
func (in *Input) isString() bool {
	_, ok := in.value.(string)
	return ok
}

// Update handles a key while the control is focused.
func (in *Input) Update(msg tea.Msg) tea.Cmd {
	if !in.focused {
		return nil
	}

	switch in.kind {
	case property.KindNumber, property.KindText:
		before := in.field.Value()
		var cmd tea.Cmd
		in.field, cmd = in.field.Update(msg)
		if after := in.field.Value(); after != before {
			if in.kind == property.KindNumber {
				in.set(parseNumber(after))
			} else {
				in.set(after)
			}
		}
		return cmd

	case property.KindOptionList:
		keyMsg, ok := msg.(tea.KeyMsg)
		if !ok {
			return nil
		}
		switch {
		case key.Matches(keyMsg, in.keys.Up):
			if in.highlight > 0 {
				in.highlight--
			}
		case key.Matches(keyMsg, in.keys.Down):
			if in.highlight < len(in.options)-1 {
				in.highlight++
			}
		case key.Matches(keyMsg, in.keys.Commit):
			in.Select(in.highlight)
			in.Blur()
		}
	}
	return nil
}

// set stores a new local value and reports it.
func (in *Input) set(v any) {
	in.value = v
	if in.onChange != nil {
		in.onChange(v)
	}
}

// View renders the control with the default styles.
func (in *Input) View() string {
	return in.render(DefaultStyles(), 0)
}

func (in *Input) render(s Styles, width int) string {
	switch in.kind {
	case property.KindNumber, property.KindText:
		if width > 0 {
			in.field.Width = width
		}
		return in.field.View()

	case property.KindBoolean:
		if in.checked {
			return s.Checked.Render("[x]")
		}
		return s.Unchecked.Render("[ ]")

	case property.KindOptionList:
		if len(in.options) == 0 {
			return s.Muted.Render("▾ (no options)")
		}
		if !in.open {
			return s.Muted.Render("▾ ") + s.Option.Render(in.options[in.selected])
		}
		lines := make([]string, len(in.options))
		for i, opt := range in.options {
			if i == in.highlight {
				lines[i] = s.Highlight.Render(ui.SymbolCursor + " " + opt)
			} else {
				lines[i] = "  " + s.Option.Render(opt)
			}
		}
		return strings.Join(lines, "\n")
	}
	return ""
}
