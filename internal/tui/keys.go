package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the organizing session. Any printable
// key not listed here is dispatched as a shortcut lookup.
type KeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Skip   key.Binding
	Define key.Binding
	Yank   key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default bindings: the original's arrow keys plus
// vim-style alternates.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next file"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous file"),
		),
		Skip: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "keep here, remember"),
		),
		Define: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "add shortcut"),
		),
		Yank: key.NewBinding(
			key.WithKeys("Y"),
			key.WithHelp("Y", "copy path"),
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
}
