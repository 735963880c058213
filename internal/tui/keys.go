// internal/tui/keys.go
package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the chart view bindings.
type keyMap struct {
	Left  key.Binding
	Right key.Binding
	Leave key.Binding
	Sort  key.Binding
	Reset key.Binding
	Quit  key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Left:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "previous bar")),
		Right: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next bar")),
		Leave: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear hover")),
		Sort:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		Reset: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Sort, k.Reset, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Left, k.Right, k.Leave}, {k.Sort, k.Reset, k.Quit}}
}
