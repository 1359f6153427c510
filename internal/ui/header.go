package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// renderHeader renders the status bar.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	compact := m.width < 100

	parts := []string{bg.Render("snipdesk", styles.Logo)}

	if m.server != "" {
		parts = append(parts, bg.Render(truncate(m.server, 40), styles.MutedText))
	}

	total := m.registry.Len()
	dirty := m.registry.CountDirty()
	inFlight := m.registry.InFlight()

	label := "Snippets:"
	if compact {
		label = "S:"
	}
	parts = append(parts,
		bg.Render(label, styles.MutedText)+bg.Space()+bg.Render(fmt.Sprintf("%d", total), styles.Text))

	unsavedStyle := styles.MutedText
	if dirty > 0 {
		unsavedStyle = styles.WarningText.Bold(true)
	}
	label = "Unsaved:"
	if compact {
		label = "U:"
	}
	parts = append(parts,
		bg.Render(label, styles.MutedText)+bg.Space()+bg.Render(fmt.Sprintf("%d", dirty), unsavedStyle))

	if inFlight > 0 {
		parts = append(parts, bg.Render(fmt.Sprintf("Saving %d...", inFlight), styles.InfoText))
	}

	if m.accounts != nil {
		parts = append(parts,
			bg.Render("Accounts:", styles.MutedText)+bg.Space()+
				bg.Render(fmt.Sprintf("%d", m.accounts.Len()), styles.Text))
	}

	if m.store != nil {
		snap := m.store.Snapshot()
		if snap.IsOffline() {
			parts = append(parts, bg.Render("OFFLINE", styles.DangerText))
		}
		if snap.LastError != nil {
			maxErr := 60
			if compact {
				maxErr = 30
			}
			parts = append(parts,
				bg.Render("ERROR", styles.DangerText)+bg.Space()+
					bg.Render(truncate(snap.LastError.Error(), maxErr), styles.DangerText))
		}
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// renderCommandBar renders the key hints for the current view.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	var bindings []key.Binding
	switch {
	case m.editing:
		bindings = []key.Binding{m.keys.LeaveEditor, m.keys.EditorSave, m.keys.EditorUndo}
	case m.currentView == ViewAccounts:
		bindings = []key.Binding{m.keys.Tab, m.keys.Down, m.keys.ToggleHide, m.keys.Delete, m.keys.Help}
	default:
		bindings = []key.Binding{
			m.keys.Tab, m.keys.Edit, m.keys.Save, m.keys.Undo,
			m.keys.ToggleMD, m.keys.TogglePrivate, m.keys.TogglePreview, m.keys.Help,
		}
	}

	colon := bg.Sep(":")
	segments := make([]string, 0, len(bindings)+1)
	for _, b := range bindings {
		h := b.Help()
		segments = append(segments,
			bg.Render(h.Key, styles.AccentText)+colon+bg.Render(h.Desc, styles.MutedText))
	}
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Header.Width(m.width).Render(strings.Join(segments, bg.Spaces(2)))
}

// renderFooter shows the latest status message, or the view name when there
// is none.
func (m Model) renderFooter() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	if m.status != "" {
		style := styles.SuccessText
		if m.statusDanger {
			style = styles.DangerText
		}
		return styles.Footer.Width(m.width).Render(bg.Render(truncate(m.status, max(m.width-2, 1)), style))
	}

	tabs := []string{"Snippets", "Accounts"}
	for i, t := range tabs {
		if View(i) == m.currentView {
			tabs[i] = bg.Render("["+t+"]", styles.AccentText.Bold(true))
		} else {
			tabs[i] = bg.Render(t, styles.FaintText)
		}
	}
	return styles.Footer.Width(m.width).Render(bg.Join(tabs, " "))
}
