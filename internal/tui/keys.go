package tui

import (
	"github.com/charmbracelet/bubbles/key"

	"touchbridge/internal/bridge"
)

type keyMap struct {
	Setup     key.Binding
	Save      key.Binding
	Cancel    key.Binding
	NextField key.Binding
	Apply     key.Binding
	Reconnect key.Binding
	Details   key.Binding
	Copy      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Setup:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "setup")),
		Save:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		NextField: key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "field")),
		Apply:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "apply")),
		Reconnect: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reconnect")),
		Details:   key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "details")),
		Copy:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// forMode enables the bindings that make sense in mode.
func (k *keyMap) forMode(mode bridge.Mode) {
	setup := mode == bridge.ModeSetup
	k.Setup.SetEnabled(!setup)
	k.Save.SetEnabled(setup)
	k.Cancel.SetEnabled(setup)
	k.NextField.SetEnabled(setup)
	k.Apply.SetEnabled(setup)
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Setup, k.Save, k.Cancel, k.Apply, k.Reconnect, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Setup, k.Save, k.Cancel},
		{k.NextField, k.Apply},
		{k.Reconnect, k.Details, k.Copy},
		{k.Help, k.Quit},
	}
}
