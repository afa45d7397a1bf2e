package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the bindings of the portfolio screen.
type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Open    key.Binding
	Profile key.Binding
	Refresh key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Open:    key.NewBinding(key.WithKeys("enter", "o"), key.WithHelp("enter", "open repository")),
		Profile: key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "open GitHub profile")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k KeyMap) bindings() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Open, k.Profile, k.Refresh, k.Quit}
}
