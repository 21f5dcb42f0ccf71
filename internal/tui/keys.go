package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	PrevMonth key.Binding
	NextMonth key.Binding
	Today     key.Binding
	Jump      key.Binding
	Folder    key.Binding
	Tags      key.Binding
	ClearTags key.Binding
	NextCard  key.Binding
	Open      key.Binding
	Toggle    key.Binding
	Close     key.Binding
	Quit      key.Binding
}

var keys = keyMap{
	Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev day")),
	Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next day")),
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "prev week")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next week")),
	PrevMonth: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev month")),
	NextMonth: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next month")),
	Today:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
	Jump:      key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "go to month")),
	Folder:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "folder")),
	Tags:      key.NewBinding(key.WithKeys("#"), key.WithHelp("#", "tags")),
	ClearTags: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear tags")),
	NextCard:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next note")),
	Open:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
	Toggle:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
	Close:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevMonth, k.NextMonth, k.Today, k.Jump, k.Folder, k.Tags, k.NextCard, k.Open, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.PrevMonth, k.NextMonth, k.Today, k.Jump},
		{k.Folder, k.Tags, k.ClearTags},
		{k.NextCard, k.Open, k.Close, k.Quit},
	}
}
