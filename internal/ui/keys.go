package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Tab        key.Binding

	// Navigation
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding

	// Snippet actions
	Edit          key.Binding
	LeaveEditor   key.Binding
	Save          key.Binding
	Undo          key.Binding
	ToggleMD      key.Binding
	TogglePrivate key.Binding
	TogglePreview key.Binding

	// Editor-only bindings; letters are text while editing
	EditorSave key.Binding
	EditorUndo key.Binding

	// Account actions
	ToggleHide key.Binding
	Delete     key.Binding

	// Modals
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Snippets/Accounts"),
		),

		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),

		// Snippet actions
		Edit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Edit snippet"),
		),
		LeaveEditor: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Leave editor"),
		),
		Save: key.NewBinding(
			key.WithKeys("s", "ctrl+s"),
			key.WithHelp("s/ctrl+s", "Save"),
		),
		Undo: key.NewBinding(
			key.WithKeys("u", "ctrl+z"),
			key.WithHelp("u/ctrl+z", "Undo to saved"),
		),
		ToggleMD: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "Toggle markdown"),
		),
		TogglePrivate: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "Toggle private"),
		),
		TogglePreview: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "Toggle preview"),
		),
		EditorSave: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "Save"),
		),
		EditorUndo: key.NewBinding(
			key.WithKeys("ctrl+z"),
			key.WithHelp("ctrl+z", "Undo to saved"),
		),

		// Account actions
		ToggleHide: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "Hide/unhide"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Delete account"),
		),

		// Modals
		Confirm: key.NewBinding(
			key.WithKeys("y", "enter"),
			key.WithHelp("y", "Confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("n", "esc"),
			key.WithHelp("n/esc", "Cancel"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		// Navigation
		{k.Tab, k.Up, k.Down, k.Top, k.Bottom},
		// Snippets
		{k.Edit, k.LeaveEditor, k.Save, k.Undo, k.ToggleMD, k.TogglePrivate, k.TogglePreview},
		// Accounts
		{k.ToggleHide, k.Delete},
		// General
		{k.CycleTheme, k.Help, k.Quit},
	}
}
