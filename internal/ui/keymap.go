package ui

import "github.com/charmbracelet/bubbles/key"

type keymap struct {
	quit       key.Binding
	config     key.Binding
	help       key.Binding
	search     key.Binding
	accept     key.Binding
	back       key.Binding
	up         key.Binding
	down       key.Binding
	left       key.Binding
	right      key.Binding
	nextTab    key.Binding
	prevTab    key.Binding
	refresh    key.Binding
	clearCache key.Binding
}

// TODO make configurable.
var defaultKeyMap = keymap{
	quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "Quit"),
	),
	config: key.NewBinding(
		key.WithKeys("E"),
		key.WithHelp("E", "Conf"),
	),
	help: key.NewBinding(
		key.WithKeys("h", "H"),
		key.WithHelp("h", "Help"),
	),
	search: key.NewBinding(
		key.WithKeys("/", "ctrl+f"),
		key.WithHelp("/", "Search"),
	),
	accept: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "Select"),
	),
	back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "Back"),
	),
	up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑", "Up"),
	),
	down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓", "Down"),
	),
	left: key.NewBinding(
		key.WithKeys("left", "pgup"),
		key.WithHelp("←", "Prev Page"),
	),
	right: key.NewBinding(
		key.WithKeys("right", "pgdown"),
		key.WithHelp("→", "Next Page"),
	),
	nextTab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "Next Tab"),
	),
	prevTab: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift tab", "Prev Tab"),
	),
	refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "Refresh"),
	),
	clearCache: key.NewBinding(
		key.WithKeys("ctrl+x"),
		key.WithHelp("ctrl+x", "Clear Cache"),
	),
}
