package axisui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Left        key.Binding
	Right       key.Binding
	PageLeft    key.Binding
	PageRight   key.Binding
	ZoomIn      key.Binding
	ZoomOut     key.Binding
	CursorLeft  key.Binding
	CursorRight key.Binding
	Cancel      key.Binding
	Reset       key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.ZoomIn, k.ZoomOut, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.PageLeft, k.PageRight},
		{k.ZoomIn, k.ZoomOut, k.CursorLeft, k.CursorRight},
		{k.Cancel, k.Reset, k.Help, k.Quit},
	}
}

var keys = keyMap{
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "pan left"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "pan right"),
	),
	PageLeft: key.NewBinding(
		key.WithKeys("H", "shift+left"),
		key.WithHelp("H", "pan left 10%"),
	),
	PageRight: key.NewBinding(
		key.WithKeys("L", "shift+right"),
		key.WithHelp("L", "pan right 10%"),
	),
	ZoomIn: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "zoom in"),
	),
	ZoomOut: key.NewBinding(
		key.WithKeys("-", "_"),
		key.WithHelp("-", "zoom out"),
	),
	CursorLeft: key.NewBinding(
		key.WithKeys("["),
		key.WithHelp("[", "cursor left"),
	),
	CursorRight: key.NewBinding(
		key.WithKeys("]"),
		key.WithHelp("]", "cursor right"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "undo gesture"),
	),
	Reset: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reset"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
