package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the bindings of the tree view.
type KeyMap struct {
	Up         key.Binding
	Down       key.Binding
	Top        key.Binding
	Bottom     key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	Left       key.Binding
	Right      key.Binding
	Toggle     key.Binding
	Parent     key.Binding
	OpenAll    key.Binding
	CloseAll   key.Binding
	Deselect   key.Binding
	Copy       key.Binding
	Detail     key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// DefaultKeyMap uses arrow keys plus vim-style letters.
var DefaultKeyMap = KeyMap{
	Up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Top:        key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
	Bottom:     key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
	PageUp:     key.NewBinding(key.WithKeys("pgup", "ctrl+b"), key.WithHelp("pgup", "page up")),
	PageDown:   key.NewBinding(key.WithKeys("pgdown", "ctrl+f"), key.WithHelp("pgdn", "page down")),
	ScrollUp:   key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "scroll up")),
	ScrollDown: key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "scroll down")),
	Left:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "collapse")),
	Right:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "expand")),
	Toggle:     key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "toggle")),
	Parent:     key.NewBinding(key.WithKeys("p", "backspace"), key.WithHelp("p", "parent")),
	OpenAll:    key.NewBinding(key.WithKeys("E"), key.WithHelp("E", "expand all")),
	CloseAll:   key.NewBinding(key.WithKeys("C"), key.WithHelp("C", "collapse all")),
	Deselect:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "deselect")),
	Copy:       key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy path")),
	Detail:     key.NewBinding(key.WithKeys("d", "tab"), key.WithHelp("d", "details")),
	Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Toggle, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.Bottom, k.PageUp, k.PageDown},
		{k.Left, k.Right, k.Toggle, k.Parent, k.OpenAll, k.CloseAll},
		{k.ScrollUp, k.ScrollDown, k.Deselect, k.Copy, k.Detail},
		{k.Help, k.Quit},
	}
}
