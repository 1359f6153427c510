package ui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/snipdesk/internal/admin"
	"github.com/five82/snipdesk/internal/navguard"
	"github.com/five82/snipdesk/internal/prefs"
	"github.com/five82/snipdesk/internal/preview"
	"github.com/five82/snipdesk/internal/snippet"
	"github.com/five82/snipdesk/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewSnippets View = iota
	ViewAccounts
)

// Options configures the UI.
type Options struct {
	Context        context.Context
	Registry       *snippet.Registry
	Accounts       *admin.Controller
	Submitter      snippet.Submitter
	Store          *state.Store
	Logger         *slog.Logger
	Server         string
	RequestTimeout time.Duration
	ThemeName      string
	ShowPreview    bool
	PrefsPath      string

	// RefreshEvery redraws the header so background reachability checks
	// show up. Zero disables it.
	RefreshEvery time.Duration

	// GuardSignals routes SIGINT/SIGTERM through the unsaved-snippet guard
	// instead of letting Bubble Tea quit at once.
	GuardSignals bool
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	registry  *snippet.Registry
	accounts  *admin.Controller
	submitter snippet.Submitter
	store     *state.Store
	guard     *navguard.Guard
	logger    *slog.Logger
	server    string
	timeout   time.Duration
	prefsPath string
	keys      keyMap

	refreshEvery time.Duration

	// UI state
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool

	// Snippets view
	selected    int
	editing     bool
	editor      textarea.Model
	preview     viewport.Model
	showPreview bool

	// Accounts view
	accountRow int

	// Overlays
	showHelp bool
	modal    Modal

	// Footer status
	status       string
	statusDanger bool
	statusSeq    int
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	themeName := opts.ThemeName
	if themeName == "" {
		themeName = "Nightfox"
	}
	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	editor := textarea.New()
	editor.ShowLineNumbers = false
	editor.CharLimit = 0
	editor.MaxHeight = 0
	editor.Placeholder = "Nothing yet this week."

	return Model{
		ctx:          ctx,
		registry:     opts.Registry,
		accounts:     opts.Accounts,
		submitter:    opts.Submitter,
		store:        opts.Store,
		guard:        navguard.New(opts.Registry),
		logger:       logger,
		server:       opts.Server,
		timeout:      timeout,
		prefsPath:    prefsPath,
		refreshEvery: opts.RefreshEvery,
		keys:         DefaultKeyMap(),
		theme:        GetTheme(themeName),
		currentView:  ViewSnippets,
		editor:       editor,
		preview:      viewport.New(0, 0),
		showPreview:  opts.ShowPreview,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	m.publish()
	return refreshCmd(m.refreshEvery)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.publish()
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resize()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case submitDoneMsg:
		return m.handleSubmitDone(msg)

	case adminDoneMsg:
		return m.handleAdminDone(msg)

	case deleteConfirmedMsg:
		return m.beginDelete(msg.index)

	case guardWarnMsg:
		m.showHelp = false
		m.modal = quitModal(msg.warning, m.keys)
		return m, nil

	case refreshMsg:
		return m, refreshCmd(m.refreshEvery)

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
			m.statusDanger = false
		}
		return m, nil
	}

	// Cursor blink and similar editor messages.
	if m.editing {
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.modal != nil {
		return m.modal.View(m.theme, m.width, m.height)
	}
	return m.renderMain()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	if m.modal != nil {
		modal, cmd, done := m.modal.Update(msg, m.keys)
		if done {
			m.modal = nil
		} else {
			m.modal = modal
		}
		return m, cmd
	}

	if m.editing {
		return m.handleEditorKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.requestQuit()

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		if m.currentView == ViewSnippets {
			m.currentView = ViewAccounts
		} else {
			m.currentView = ViewSnippets
		}
		return m, nil
	}

	switch m.currentView {
	case ViewSnippets:
		return m.handleSnippetKey(msg)
	case ViewAccounts:
		return m.handleAccountKey(msg)
	}
	return m, nil
}

// requestQuit quits at once when nothing is dirty and asks otherwise.
func (m Model) requestQuit() (Model, tea.Cmd) {
	warning, dirty := m.guard.BeforeUnload()
	if !dirty {
		return m, tea.Quit
	}
	m.modal = quitModal(warning, m.keys)
	return m, nil
}

func (m Model) handleSnippetKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	count := m.registry.Len()
	if count == 0 {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.selected < count-1 {
			m.selected++
			m.refreshPreview()
		}
	case key.Matches(msg, m.keys.Up):
		if m.selected > 0 {
			m.selected--
			m.refreshPreview()
		}
	case key.Matches(msg, m.keys.Top):
		m.selected = 0
		m.refreshPreview()
	case key.Matches(msg, m.keys.Bottom):
		m.selected = count - 1
		m.refreshPreview()
	case key.Matches(msg, m.keys.Edit):
		return m.enterEditor()
	case key.Matches(msg, m.keys.Save):
		return m.saveSelected()
	case key.Matches(msg, m.keys.Undo):
		return m.undoSelected()
	case key.Matches(msg, m.keys.ToggleMD):
		if s := m.current(); s != nil {
			s.SetMarkdown(!s.Live().IsMarkdown)
			m.refreshPreview()
		}
	case key.Matches(msg, m.keys.TogglePrivate):
		if s := m.current(); s != nil {
			s.SetPrivate(!s.Live().IsPrivate)
		}
	case key.Matches(msg, m.keys.TogglePreview):
		m.showPreview = !m.showPreview
		m.resize()
		m.savePrefs()
	}
	return m, nil
}

func (m Model) handleEditorKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return m.requestQuit()
	case key.Matches(msg, m.keys.LeaveEditor):
		m.editing = false
		m.editor.Blur()
		return m, nil
	case key.Matches(msg, m.keys.EditorSave):
		return m.saveSelected()
	case key.Matches(msg, m.keys.EditorUndo):
		return m.undoSelected()
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	if s := m.current(); s != nil && m.editor.Value() != s.Live().Content {
		s.SetContent(m.editor.Value())
		m.refreshPreview()
	}
	return m, cmd
}

func (m Model) enterEditor() (Model, tea.Cmd) {
	s := m.current()
	if s == nil {
		return m, nil
	}
	m.editing = true
	m.editor.SetValue(s.Live().Content)
	cmd := m.editor.Focus()
	return m, cmd
}

func (m Model) saveSelected() (Model, tea.Cmd) {
	s := m.current()
	if s == nil {
		return m, nil
	}
	if !s.IsDirty() {
		return m.withStatus("Nothing to save", false)
	}
	if m.submitter == nil {
		return m.withStatus("No server to save to", true)
	}
	sub, err := s.BeginSubmit()
	if errors.Is(err, snippet.ErrSubmitInFlight) {
		return m.withStatus("Still saving "+s.Label(), false)
	}
	if err != nil {
		return m.withStatus(err.Error(), true)
	}
	return m, submitCmd(m.ctx, m.submitter, m.selected, sub, m.timeout)
}

func (m Model) undoSelected() (Model, tea.Cmd) {
	s := m.current()
	if s == nil {
		return m, nil
	}
	s.Undo()
	if m.editing {
		m.editor.SetValue(s.Live().Content)
	}
	m.refreshPreview()
	return m, nil
}

func (m Model) handleSubmitDone(msg submitDoneMsg) (Model, tea.Cmd) {
	s := m.registry.At(msg.index)
	if s == nil {
		return m, nil
	}
	if err := s.FinishSubmit(msg.sub, msg.err); err != nil {
		m.logger.Warn("dropping save result", "label", s.Label(), "submission", msg.sub.ID, "error", err)
		return m, nil
	}
	if m.store != nil {
		m.store.RecordResult(msg.err)
	}
	if msg.index == m.selected {
		m.refreshPreview()
	}
	if msg.err != nil {
		return m.withStatus(fmt.Sprintf("Saving %s failed: %v", s.Label(), msg.err), true)
	}
	return m.withStatus(fmt.Sprintf("Saved %s (%s)", s.Label(), msg.elapsed.Round(time.Millisecond)), false)
}

func (m Model) handleAccountKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if m.accounts == nil || m.accounts.Len() == 0 {
		return m, nil
	}
	count := m.accounts.Len()

	switch {
	case key.Matches(msg, m.keys.Down):
		if m.accountRow < count-1 {
			m.accountRow++
		}
	case key.Matches(msg, m.keys.Up):
		if m.accountRow > 0 {
			m.accountRow--
		}
	case key.Matches(msg, m.keys.Top):
		m.accountRow = 0
	case key.Matches(msg, m.keys.Bottom):
		m.accountRow = count - 1
	case key.Matches(msg, m.keys.ToggleHide):
		row, _ := m.accounts.Row(m.accountRow)
		cmd, err := row.Hide.Begin()
		if err != nil {
			return m.withStatus(row.Email+": "+row.Hide.Label(), false)
		}
		return m, adminCmd(m.ctx, m.accounts, m.accountRow, cmd, m.timeout)
	case key.Matches(msg, m.keys.Delete):
		row, _ := m.accounts.Row(m.accountRow)
		if !row.Delete.Enabled() {
			return m.withStatus(row.Email+": "+row.Delete.Label(), false)
		}
		m.modal = deleteModal(row.Email, m.accountRow)
	}
	return m, nil
}

func (m Model) beginDelete(index int) (Model, tea.Cmd) {
	if m.accounts == nil {
		return m, nil
	}
	row, ok := m.accounts.Row(index)
	if !ok {
		return m, nil
	}
	cmd, err := row.Delete.Begin()
	if err != nil {
		return m.withStatus(row.Email+": "+row.Delete.Label(), false)
	}
	return m, adminCmd(m.ctx, m.accounts, index, cmd, m.timeout)
}

func (m Model) handleAdminDone(msg adminDoneMsg) (Model, tea.Cmd) {
	if m.accounts == nil {
		return m, nil
	}
	row, ok := m.accounts.Row(msg.index)
	if !ok {
		return m, nil
	}
	if msg.cmd.Action == admin.ActionDelete {
		row.Delete.Finish(msg.err)
	} else {
		row.Hide.Finish(msg.err)
	}
	if m.store != nil {
		m.store.RecordResult(msg.err)
	}
	if msg.err != nil {
		return m.withStatus(fmt.Sprintf("%s failed: %v", msg.cmd, msg.err), true)
	}
	return m.withStatus(fmt.Sprintf("%s: done", msg.cmd), false)
}

func (m Model) current() *snippet.Snippet {
	return m.registry.At(m.selected)
}

// withStatus shows text in the footer until StatusTimeout passes or a newer
// status replaces it.
func (m Model) withStatus(text string, danger bool) (Model, tea.Cmd) {
	m.statusSeq++
	m.status = text
	m.statusDanger = danger
	return m, clearStatusCmd(m.statusSeq)
}

func (m *Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, ShowPreview: m.showPreview}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		m.logger.Warn("save prefs", "error", err)
	}
}

// publish shares the snippet counts with goroutines outside the loop.
func (m Model) publish() {
	if m.store == nil {
		return
	}
	counts := state.Counts{
		Dirty:    m.registry.CountDirty(),
		Total:    m.registry.Len(),
		InFlight: m.registry.InFlight(),
	}
	for _, i := range m.registry.DirtyIndices() {
		counts.DirtyLabels = append(counts.DirtyLabels, m.registry.At(i).Label())
	}
	m.store.Publish(counts)
}

// refreshPreview re-renders the selected snippet into the preview pane.
func (m *Model) refreshPreview() {
	s := m.current()
	if s == nil || m.preview.Width <= 0 {
		m.preview.SetContent("")
		return
	}
	p := s.Render()
	if p.Markdown {
		m.preview.SetContent(strings.Join(preview.Lines(p.PreviewHTML, m.preview.Width), "\n"))
	} else {
		// Plain snippets keep their own line breaks.
		m.preview.SetContent(lipgloss.NewStyle().Width(m.preview.Width).Render(s.Live().Content))
	}
	m.preview.GotoTop()
}

// resize lays out the editor and preview for the current window.
func (m *Model) resize() {
	l := m.layout()
	m.editor.SetWidth(max(l.editorW-2, 1))
	m.editor.SetHeight(max(l.editorH-4, 1))
	m.preview.Width = max(l.previewW-2, 0)
	m.preview.Height = max(l.previewH-3, 0)
	m.refreshPreview()
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	m := New(opts)

	progOpts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if opts.GuardSignals {
		progOpts = append(progOpts, tea.WithoutSignalHandler())
	}
	p := tea.NewProgram(m, progOpts...)

	if opts.GuardSignals && opts.Store != nil {
		navguard.Install(ctx, opts.Store, func(warning string) {
			p.Send(guardWarnMsg{warning: warning})
		}, p.Quit)
	}

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
