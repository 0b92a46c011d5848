package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up, Down   key.Binding
	Add        key.Binding
	Toggle     key.Binding
	Remove     key.Binding
	Timer      key.Binding
	TimerReset key.Binding
	Class      key.Binding
	Reload     key.Binding
	Help       key.Binding
	Quit       key.Binding
	Confirm    key.Binding
	Cancel     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Add:        key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add todo")),
		Toggle:     key.NewBinding(key.WithKeys(" ", "space", "x"), key.WithHelp("space", "done")),
		Remove:     key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "remove")),
		Timer:      key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "start/pause timer")),
		TimerReset: key.NewBinding(key.WithKeys("P"), key.WithHelp("P", "reset timer")),
		Class:      key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "next class")),
		Reload:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload data")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Confirm:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "ok")),
		Cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.Remove, k.Timer, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Add, k.Toggle, k.Remove},
		{k.Timer, k.TimerReset},
		{k.Class, k.Reload, k.Help, k.Quit},
	}
}
