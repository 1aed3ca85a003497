// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the application.
type KeyMap struct {
	// Suggestion navigation
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding

	// Desk actions
	Import   key.Binding
	Export   key.Binding
	AddGuest key.Binding

	// Board navigation
	NextProgram key.Binding
	PrevProgram key.Binding
	EditMax     key.Binding

	// Result card actions
	MarkPresent key.Binding
	MarkAbsent  key.Binding
	Reassign    key.Binding

	// General
	Help       key.Binding
	Escape     key.Binding
	Quit       key.Binding
	ClearQuery key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑", "previous suggestion"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓", "next suggestion"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select / search"),
		),

		Import: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "import roster file"),
		),
		Export: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "export roster"),
		),
		AddGuest: key.NewBinding(
			key.WithKeys("ctrl+a"),
			key.WithHelp("ctrl+a", "add walk-in"),
		),

		NextProgram: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next program card"),
		),
		PrevProgram: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous program card"),
		),
		EditMax: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("ctrl+e", "edit program capacity"),
		),

		MarkPresent: key.NewBinding(
			key.WithKeys("ctrl+j"),
			key.WithHelp("ctrl+j", "mark present"),
		),
		MarkAbsent: key.NewBinding(
			key.WithKeys("ctrl+k"),
			key.WithHelp("ctrl+k", "mark absent"),
		),
		Reassign: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "change program"),
		),

		Help: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("ctrl+g", "help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "dismiss"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		ClearQuery: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "clear search"),
		),
	}
}
