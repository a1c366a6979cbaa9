// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the catalog TUI.
type KeyMap struct {
	// List view.
	Up     key.Binding
	Down   key.Binding
	Search key.Binding
	View   key.Binding
	Add    key.Binding
	Edit   key.Binding
	Delete key.Binding
	Export key.Binding
	Reload key.Binding
	Quit   key.Binding

	// Export menu.
	ExportJSON   key.Binding
	ExportBibTeX key.Binding
	ExportCSV    key.Binding
	ExportCSL    key.Binding

	// Delete prompt.
	Yes key.Binding
	No  key.Binding

	// Form.
	Next   key.Binding
	Prev   key.Binding
	Submit key.Binding

	// Closes whatever is on top: form, detail, prompt or search bar.
	Back key.Binding

	ForceQuit key.Binding
}

// DefaultKeyMap is the built-in key binding set.
var DefaultKeyMap = KeyMap{
	Up:     key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "up")),
	Down:   key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "down")),
	Search: key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	View:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
	Add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
	Edit:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
	Delete: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	Export: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "export")),
	Reload: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
	Quit:   key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),

	ExportJSON:   key.NewBinding(key.WithKeys("j"), key.WithHelp("j", "json")),
	ExportBibTeX: key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "bibtex")),
	ExportCSV:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "csv")),
	ExportCSL:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "csl")),

	Yes: key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "yes")),
	No:  key.NewBinding(key.WithKeys("n", "N"), key.WithHelp("n", "no")),

	Next:   key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
	Prev:   key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("S-tab", "previous field")),
	Submit: key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("C-s", "save")),

	Back: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),

	ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
}

func helpLine(bindings ...key.Binding) string {
	var out string
	for i, b := range bindings {
		if i > 0 {
			out += "  "
		}
		h := b.Help()
		out += h.Key + " " + h.Desc
	}
	return out
}
