package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Modal is the interface for modal dialogs.
// The Update method returns the updated modal, a command, and a bool indicating if the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// confirmModal asks a yes/no question. onConfirm runs when the user says yes.
type confirmModal struct {
	title     string
	body      string
	hint      string
	danger    bool
	onConfirm tea.Cmd
	// extra keys that also confirm, e.g. pressing quit twice
	also key.Binding
}

func (c confirmModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil, false
	}
	switch {
	case key.Matches(km, keys.Confirm), c.also.Enabled() && key.Matches(km, c.also):
		return c, c.onConfirm, true
	case key.Matches(km, keys.Cancel):
		return c, nil, true
	}
	return c, nil, false
}

func (c confirmModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	titleStyle := styles.AccentText.Bold(true)
	border := theme.Accent
	if c.danger {
		titleStyle = styles.DangerText
		border = theme.Danger
	}

	content := titleStyle.Render(c.title) + "\n\n" +
		styles.Text.Render(c.body) + "\n\n" +
		styles.MutedText.Render(c.hint)

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		Padding(1, 2).
		Width(min(56, max(width-4, 20)))

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(content),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}

// quitModal is shown when quitting with unsaved snippets.
func quitModal(warning string, keys keyMap) confirmModal {
	return confirmModal{
		title:     "Unsaved snippets",
		body:      warning,
		hint:      "y/q quit anyway · n/esc keep editing",
		danger:    true,
		onConfirm: tea.Quit,
		also:      keys.Quit,
	}
}

// deleteModal confirms deleting the account of row index.
func deleteModal(email string, index int) confirmModal {
	return confirmModal{
		title:  "Delete account",
		body:   "Delete " + email + "? This cannot be undone.",
		hint:   "y delete · n/esc cancel",
		danger: true,
		onConfirm: func() tea.Msg {
			return deleteConfirmedMsg{index: index}
		},
	}
}
