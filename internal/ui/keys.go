package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the scan view's keyboard shortcuts
type KeyMap struct {
	Abort key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Abort: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "abort scan"),
		),
	}
}

// ShortHelp returns a brief help string
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Abort}
}
