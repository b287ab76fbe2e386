package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	NextMode key.Binding
	PickMode key.Binding
	Up       key.Binding
	Down     key.Binding
	Focus    key.Binding
	Toggle   key.Binding
	Clear    key.Binding
	Reload   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		NextMode: key.NewBinding(key.WithKeys("tab", "m"), key.WithHelp("tab/m", "next mode")),
		PickMode: key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8"), key.WithHelp("1-8", "pick mode")),
		Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "down")),
		Focus:    key.NewBinding(key.WithKeys("h", "l", "left", "right"), key.WithHelp("h/l", "switch pane")),
		Toggle:   key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle layer")),
		Clear:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear agent layers")),
		Reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextMode, k.Down, k.Toggle, k.Reload, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextMode, k.PickMode},
		{k.Up, k.Down, k.Focus},
		{k.Toggle, k.Clear},
		{k.Reload, k.Help, k.Quit},
	}
}
