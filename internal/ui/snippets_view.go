package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/snipdesk/internal/snippet"
)

// paneLayout holds outer pane sizes, borders included.
type paneLayout struct {
	listH      int
	editorW    int
	editorH    int
	previewW   int
	previewH   int
	sideBySide bool
}

func (m Model) layout() paneLayout {
	avail := max(m.height-3, 0) // header, command bar, footer
	rows := min(max(m.registry.Len(), 1), ListMaxRows)
	l := paneLayout{listH: rows + 2}
	body := max(avail-l.listH, 0)

	switch {
	case m.showPreview && m.width >= LayoutSideBySideWidth:
		l.sideBySide = true
		l.editorW = m.width / 2
		l.previewW = m.width - l.editorW
		l.editorH, l.previewH = body, body
	case m.showPreview:
		l.editorW, l.previewW = m.width, m.width
		l.editorH = body / 2
		l.previewH = body - l.editorH
	default:
		l.editorW, l.editorH = m.width, body
	}
	return l
}

// renderMain composes the chrome around the active view.
func (m Model) renderMain() string {
	var body string
	if m.currentView == ViewAccounts {
		body = m.renderAccounts()
	} else {
		body = m.renderSnippets()
	}
	body = lipgloss.NewStyle().Height(max(m.height-3, 0)).Render(body)
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.renderCommandBar(),
		body,
		m.renderFooter(),
	)
}

func (m Model) renderSnippets() string {
	styles := m.theme.Styles()
	l := m.layout()

	if m.registry.Len() == 0 {
		return styles.Pane.Width(max(m.width-2, 1)).Render(
			styles.MutedText.Render("No snippet forms on this page."))
	}

	list := styles.Pane.Width(max(m.width-2, 1)).Render(m.renderSnippetList(l.listH-2, m.width-2))

	editor := m.renderEditorPane(l.editorW, l.editorH)
	if !m.showPreview || l.previewH <= 0 {
		return lipgloss.JoinVertical(lipgloss.Left, list, editor)
	}
	prev := m.renderPreviewPane(l.previewW, l.previewH)
	if l.sideBySide {
		return lipgloss.JoinVertical(lipgloss.Left, list, lipgloss.JoinHorizontal(lipgloss.Top, editor, prev))
	}
	return lipgloss.JoinVertical(lipgloss.Left, list, editor, prev)
}

// renderSnippetList renders one line per snippet, scrolled so the selection
// stays visible.
func (m Model) renderSnippetList(rows, width int) string {
	styles := m.theme.Styles()
	snippets := m.registry.Snippets()

	start := 0
	if m.selected >= rows {
		start = m.selected - rows + 1
	}
	end := min(start+rows, len(snippets))

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		s := snippets[i]
		badges := m.snippetBadges(s)
		label := fmt.Sprintf(" %-12s ", s.Label())
		room := max(width-lipgloss.Width(label)-lipgloss.Width(badges)-2, 0)
		summary := truncate(firstLine(s.Live().Content), room)
		if summary == "" {
			summary = "(empty)"
		}

		if i == m.selected {
			line := styles.Selected.Width(max(width-lipgloss.Width(badges)-1, 1)).Render(label + summary)
			lines = append(lines, line+" "+badges)
			continue
		}
		lines = append(lines, styles.Text.Render(label)+styles.MutedText.Render(summary)+" "+badges)
	}
	return strings.Join(lines, "\n")
}

func (m Model) snippetBadges(s *snippet.Snippet) string {
	styles := m.theme.Styles()
	var badges []string
	switch s.Phase() {
	case snippet.PhaseInFlight:
		badges = append(badges, styles.StatusStyle("saving").Render("saving"))
	case snippet.PhaseFailed:
		badges = append(badges, styles.StatusStyle("failed").Render("failed"))
	}
	if s.IsDirty() {
		badges = append(badges, styles.StatusStyle("dirty").Render("unsaved"))
	}
	live := s.Live()
	if live.IsMarkdown {
		badges = append(badges, styles.StatusStyle("markdown").Render("md"))
	}
	if live.IsPrivate {
		badges = append(badges, styles.StatusStyle("private").Render("private"))
	}
	return strings.Join(badges, " ")
}

// renderEditorPane shows the live content with the form controls below it.
func (m Model) renderEditorPane(width, height int) string {
	styles := m.theme.Styles()
	s := m.current()
	if s == nil || width <= 2 || height <= 2 {
		return ""
	}
	p := s.Render()
	innerW, innerH := width-2, height-2

	title := styles.AccentText.Bold(true).Render(s.Label())
	if m.editing {
		title += styles.MutedText.Render("  editing")
	}

	var text string
	if m.editing {
		text = m.editor.View()
	} else {
		body := s.Live().Content
		if body == "" {
			body = styles.FaintText.Render("Nothing yet this week.")
		}
		text = lipgloss.NewStyle().Width(innerW).MaxHeight(max(innerH-2, 1)).Render(body)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, title, text)
	content = lipgloss.NewStyle().Height(max(innerH-1, 1)).MaxHeight(max(innerH-1, 1)).Render(content)

	pane := styles.Pane
	if m.editing {
		pane = styles.FocusPane
	}
	return pane.Width(innerW).Height(innerH).Render(content + "\n" + m.renderControls(p))
}

// renderControls draws the save and undo buttons plus the two checkboxes.
func (m Model) renderControls(p snippet.Presentation) string {
	styles := m.theme.Styles()

	saveStyle := styles.FaintText
	switch {
	case p.Phase == snippet.PhaseFailed:
		saveStyle = styles.DangerText
	case p.SaveEnabled:
		saveStyle = styles.AccentText.Bold(true)
	}
	undoStyle := styles.FaintText
	if p.UndoEnabled {
		undoStyle = styles.Text
	}

	return strings.Join([]string{
		saveStyle.Render("[ " + p.SaveLabel + " ]"),
		undoStyle.Render("[ Undo ]"),
		styles.Text.Render(checkbox(p.Markdown) + " markdown"),
		styles.Text.Render(checkbox(p.Private) + " private"),
	}, "  ")
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

func (m Model) renderPreviewPane(width, height int) string {
	styles := m.theme.Styles()
	if width <= 2 || height <= 2 {
		return ""
	}
	title := styles.AccentText.Bold(true).Render("Preview")
	var body string
	if s := m.current(); s != nil && s.Live().Content == "" {
		body = styles.FaintText.Render("Nothing to preview.")
	} else {
		body = m.preview.View()
	}
	return styles.Pane.Width(width - 2).Height(height - 2).Render(title + "\n" + body)
}
