package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Left        key.Binding
	Right       key.Binding
	Activate    key.Binding
	Minimize    key.Binding
	Restore     key.Binding
	Close       key.Binding
	MinimizeAll key.Binding
	RestoreAll  key.Binding
	New         key.Binding
	Refresh     key.Binding
	Help        key.Binding
	Quit        key.Binding
}

var keys = keyMap{
	Left:        key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev")),
	Right:       key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next")),
	Activate:    key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "select")),
	Minimize:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "minimize")),
	Restore:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restore")),
	Close:       key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "close")),
	MinimizeAll: key.NewBinding(key.WithKeys("M"), key.WithHelp("M", "minimize all")),
	RestoreAll:  key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "restore all")),
	New:         key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new window")),
	Refresh:     key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "refresh")),
	Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Activate, k.Minimize, k.Close, k.New, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Activate},
		{k.Minimize, k.Restore, k.Close},
		{k.MinimizeAll, k.RestoreAll, k.New},
		{k.Refresh, k.Help, k.Quit},
	}
}
