package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings of the directory TUI.
type KeyMap struct {
	Next key.Binding
	Prev key.Binding
	Up   key.Binding
	Down key.Binding

	Search      key.Binding // Start typing a search query.
	ClearSearch key.Binding // Drop the query; also leaves search and detail.
	Accept      key.Binding // Keep the query and return to the list.

	SortField key.Binding
	SortOrder key.Binding
	View      key.Binding

	// Columns toggles models.Columns in display order.
	Columns [4]key.Binding

	Open    key.Binding
	Back    key.Binding // Leave the detail view.
	Delete  key.Binding
	Confirm key.Binding
	Cancel  key.Binding
	Reload  key.Binding

	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set.
var DefaultKeyMap = KeyMap{
	Next: key.NewBinding(
		key.WithKeys("n", "right"),
		key.WithHelp("n/→", "next page"),
	),
	Prev: key.NewBinding(
		key.WithKeys("p", "left"),
		key.WithHelp("p/←", "prev page"),
	),
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	ClearSearch: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear"),
	),
	Accept: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "done"),
	),
	SortField: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "sort field"),
	),
	SortOrder: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "order"),
	),
	View: key.NewBinding(
		key.WithKeys("v"),
		key.WithHelp("v", "list/grid"),
	),
	Columns: [4]key.Binding{
		key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "avatar")),
		key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "first name")),
		key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "last name")),
		key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "email")),
	},
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "details"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc", "backspace"),
		key.WithHelp("esc", "back"),
	),
	Delete: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "delete"),
	),
	Confirm: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "yes"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "esc"),
		key.WithHelp("n", "no"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.Search, k.SortField, k.SortOrder, k.View, k.Open, k.Delete, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Up, k.Down, k.Reload},
		{k.Search, k.ClearSearch, k.SortField, k.SortOrder, k.View},
		k.Columns[:],
		{k.Open, k.Delete, k.Quit},
	}
}
