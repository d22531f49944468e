// internal/tui/keys.go
package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	NextTab   key.Binding
	PrevTab   key.Binding
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	Open      key.Binding
	PrevRun   key.Binding
	NextRun   key.Binding
	Criterion key.Binding
	Secondary key.Binding
	Close     key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		NextTab:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next competition")),
		PrevTab:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous")),
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Open:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "trace")),
		PrevRun:   key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev run")),
		NextRun:   key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next run")),
		Criterion: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "criterion")),
		Secondary: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "tokens/cost")),
		Close:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextTab, k.Open, k.Secondary, k.Close, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab, k.Secondary},
		{k.Up, k.Down, k.Left, k.Right},
		{k.Open, k.PrevRun, k.NextRun, k.Criterion},
		{k.Close, k.Quit},
	}
}
