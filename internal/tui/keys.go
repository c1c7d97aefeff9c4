package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func matches(msg tea.KeyMsg, b key.Binding) bool {
	return key.Matches(msg, b)
}

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	CycleMode key.Binding
	Confirm   key.Binding
	Abort     key.Binding

	// Vim-style aliases, only honored when the filter bar is disabled
	// (otherwise the letters belong to the query).
	UpAlias    key.Binding
	DownAlias  key.Binding
	LeftAlias  key.Binding
	RightAlias key.Binding
	QuitAlias  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓", "down")),
		Left:      key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "left")),
		Right:     key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "right")),
		CycleMode: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "mode")),
		Confirm:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Abort:     key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "cancel")),

		UpAlias:    key.NewBinding(key.WithKeys("k")),
		DownAlias:  key.NewBinding(key.WithKeys("j")),
		LeftAlias:  key.NewBinding(key.WithKeys("h")),
		RightAlias: key.NewBinding(key.WithKeys("l")),
		QuitAlias:  key.NewBinding(key.WithKeys("q")),
	}
}
