package models

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
)

// keyMap defines every dashboard binding. Period bindings are positional:
// the digit 1..N selects the Nth configured period.
type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Select    key.Binding
	Periods   []key.Binding
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
	Ack       key.Binding
}

// newKeyMap builds the bindings for the given period list.
func newKeyMap(periods []string) keyMap {
	km := keyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "row up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "row down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select market"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Ack: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "acknowledge"),
		),
	}

	for i, p := range periods {
		km.Periods = append(km.Periods, key.NewBinding(
			key.WithKeys(fmt.Sprintf("%d", i+1)),
			key.WithHelp(fmt.Sprintf("%d", i+1), p),
		))
	}
	return km
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		k.Periods,
		{k.Help, k.Quit, k.ForceQuit},
	}
}
