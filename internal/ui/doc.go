// Package ui provides the terminal front end of snipdesk.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. Model owns the snippet registry and the
// account controller and is the only code that mutates them, so neither
// needs locking. Network requests never run inside Update:
//
//  1. A key press calls Snippet.BeginSubmit (or a button's Begin) on the loop
//  2. The returned tea.Cmd sends the request with its own timeout
//  3. The result comes back as submitDoneMsg or adminDoneMsg
//  4. Update folds it in with FinishSubmit (or Finish) and sets a footer status
//
// After every Update the model publishes its counts to state.Store, which
// the signal guard in navguard reads from another goroutine.
//
// # Views
//
//   - Snippets: list of weekly forms, the editor pane with Save/Undo and the
//     markdown/private checkboxes, and a live preview pane
//   - Accounts: the manage-users table with hide/unhide and delete buttons
//
// Tab switches views. Quitting with unsaved snippets opens a confirmation
// dialog carrying the same warning the page shows before unload.
//
// # Package Structure
//
//   - app.go: Model, Options, Update and Run
//   - actions.go: commands that run requests off the loop and their messages
//   - snippets_view.go, accounts_view.go: view rendering
//   - header.go: status bar, command bar and footer
//   - modal.go, help.go: overlays
//   - theme.go, style_helpers.go, keys.go, layout.go: styling and constants
package ui
