package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/snipdesk/internal/admin"
)

// renderAccounts renders the manage-users table.
func (m Model) renderAccounts() string {
	styles := m.theme.Styles()
	width := max(m.width-2, 1)

	if m.accounts == nil || m.accounts.Len() == 0 {
		return styles.Pane.Width(width).Render(
			styles.MutedText.Render("No account page loaded. Accounts need an admin login."))
	}

	rows := m.accounts.Rows()
	emailW := 12
	for _, r := range rows {
		emailW = max(emailW, lipgloss.Width(r.Email))
	}
	emailW = min(emailW, max(width/2, 12))

	header := styles.FaintText.Render(fmt.Sprintf(" %-*s  %-9s  %-28s  %s", emailW, "EMAIL", "STATE", "HIDE", "DELETE"))
	lines := []string{header}

	visible := max(m.height-3-3, 1)
	start := 0
	if m.accountRow >= visible {
		start = m.accountRow - visible + 1
	}
	end := min(start+visible, len(rows))

	for i := start; i < end; i++ {
		r := rows[i]
		email := fmt.Sprintf(" %-*s  ", emailW, truncate(r.Email, emailW))
		state := m.accountBadge(r)
		hide := buttonText(r.Hide.Label(), 28)
		del := buttonText(r.Delete.Label(), 28)

		if i == m.accountRow {
			email = styles.Selected.Render(email)
		} else {
			email = styles.Text.Render(email)
		}
		lines = append(lines, email+padRight(state, 11)+m.buttonStyle(r.Hide.Phase(), r.Hide.Enabled()).Render(hide)+"  "+
			m.buttonStyle(r.Delete.Phase(), r.Delete.Enabled()).Render(del))
	}

	return styles.Pane.Width(width).Render(strings.Join(lines, "\n"))
}

func (m Model) accountBadge(r admin.Row) string {
	styles := m.theme.Styles()
	switch {
	case r.Hide.Mode() == admin.ModeHidden:
		return styles.StatusStyle("hidden").Render("hidden")
	default:
		return styles.StatusStyle("saved").Render("visible")
	}
}

func (m Model) buttonStyle(phase admin.Phase, enabled bool) lipgloss.Style {
	styles := m.theme.Styles()
	switch {
	case phase == admin.PhaseFailed:
		return styles.DangerText
	case !enabled:
		return styles.FaintText
	case phase == admin.PhaseInFlight:
		return styles.InfoText
	default:
		return styles.AccentText
	}
}

func buttonText(label string, width int) string {
	return fmt.Sprintf("%-*s", width, "[ "+truncate(label, width-4)+" ]")
}

func padRight(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
