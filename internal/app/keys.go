package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/henri123lemoine/propgrid/internal/config"
	"github.com/henri123lemoine/propgrid/internal/grid"
)

// KeyMap defines all keybindings.
type KeyMap struct {
	// Grid holds the navigation and editing bindings passed to the grid.
	Grid grid.KeyMap

	// Actions
	Filter key.Binding
	Reload key.Binding

	// General
	Cancel key.Binding
	Accept key.Binding
	Quit   key.Binding
	Help   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Grid: grid.DefaultKeyMap(),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear"),
		),
		Accept: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "apply filter"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// KeyMapFromConfig creates a KeyMap from config settings.
func KeyMapFromConfig(cfg *config.KeysConfig) KeyMap {
	km := DefaultKeyMap()

	override := func(b *key.Binding, keys, desc string) {
		if keys == "" {
			return
		}
		parsed := config.ParseKeys(keys)
		if len(parsed) == 0 {
			return
		}
		*b = key.NewBinding(
			key.WithKeys(parsed...),
			key.WithHelp(helpKeys(keys), desc),
		)
	}

	override(&km.Grid.Up, cfg.Up, "up")
	override(&km.Grid.Down, cfg.Down, "down")
	override(&km.Grid.Home, cfg.Home, "first")
	override(&km.Grid.End, cfg.End, "last")
	override(&km.Grid.Edit, cfg.Edit, "edit")
	override(&km.Grid.Toggle, cfg.Toggle, "toggle")
	override(&km.Filter, cfg.Filter, "filter")
	override(&km.Reload, cfg.Reload, "reload")
	override(&km.Help, cfg.Help, "help")
	override(&km.Quit, cfg.Quit, "quit")

	return km
}

// helpKeys makes a configured key list readable in the help line.
func helpKeys(keys string) string {
	parsed := config.ParseKeys(keys)
	for i, k := range parsed {
		if k == " " {
			parsed[i] = "space"
		}
	}
	return strings.Join(parsed, "/")
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Grid.Up, k.Grid.Down, k.Grid.Edit, k.Grid.Toggle, k.Filter, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	full := k.Grid.FullHelp()
	return append(full, []key.Binding{k.Filter, k.Reload, k.Help, k.Quit})
}
