package ui

import (
	"context"
	"errors"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/snipdesk/internal/admin"
	"github.com/five82/snipdesk/internal/navguard"
	"github.com/five82/snipdesk/internal/prefs"
	"github.com/five82/snipdesk/internal/snippet"
	"github.com/five82/snipdesk/internal/state"
)

type fakeSubmitter struct {
	err   error
	calls int
	last  url.Values
}

func (f *fakeSubmitter) SubmitSnippet(_ context.Context, _ string, form url.Values) error {
	f.calls++
	f.last = form
	return f.err
}

type fakePerformer struct {
	err  error
	cmds []admin.Command
}

func (f *fakePerformer) ManageUser(_ context.Context, cmd admin.Command) error {
	f.cmds = append(f.cmds, cmd)
	return f.err
}

func newTestModel(t *testing.T, sub snippet.Submitter, perf admin.Performer) (Model, *state.Store) {
	t.Helper()
	reg := snippet.NewRegistry([]snippet.Descriptor{
		{Label: "01-06-2025", Endpoint: "http://snip.test/update_snippet", Initial: snippet.Fields{Content: "did things"}},
		{Label: "01-13-2025", Endpoint: "http://snip.test/update_snippet"},
	})
	ctrl := admin.NewController([]admin.Row{
		admin.NewRow("ann@example.com", admin.ModeVisible),
		admin.NewRow("bob@example.com", admin.ModeHidden),
	}, perf, nil)
	store := &state.Store{}

	m := New(Options{
		Registry:    reg,
		Accounts:    ctrl,
		Submitter:   sub,
		Store:       store,
		ShowPreview: true,
		PrefsPath:   filepath.Join(t.TempDir(), "prefs.toml"),
	})
	m, _ = send(t, m, tea.WindowSizeMsg{Width: 130, Height: 40})
	return m, store
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelView_ShowsSnippetsAndCounts(t *testing.T) {
	m, _ := newTestModel(t, &fakeSubmitter{}, &fakePerformer{})

	view := m.View()
	for _, want := range []string{"snipdesk", "01-06-2025", "01-13-2025", "Unsaved:", "did things"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view, got:\n%s", want, view)
		}
	}
}

func TestModelUpdate_TypingMarksDirtyAndPublishes(t *testing.T) {
	m, store := newTestModel(t, &fakeSubmitter{}, &fakePerformer{})

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.editing {
		t.Fatal("expected editor to be active")
	}
	m, _ = send(t, m, runes("!"))

	s := m.current()
	if got := s.Live().Content; got != "did things!" {
		t.Fatalf("live content = %q, want %q", got, "did things!")
	}
	if !s.IsDirty() {
		t.Fatal("expected snippet to be dirty")
	}
	if got := store.CountDirty(); got != 1 {
		t.Fatalf("published dirty count = %d, want 1", got)
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.editing {
		t.Fatal("expected esc to leave the editor")
	}
}

func TestModelUpdate_SaveSuccess(t *testing.T) {
	sub := &fakeSubmitter{}
	m, store := newTestModel(t, sub, &fakePerformer{})
	m.current().SetContent("shipped it")

	m, cmd := send(t, m, runes("s"))
	if cmd == nil {
		t.Fatal("expected submit command")
	}
	if m.current().Phase() != snippet.PhaseInFlight {
		t.Fatalf("phase = %v, want in-flight", m.current().Phase())
	}
	if sub.calls != 0 {
		t.Fatal("request must not run inside Update")
	}

	m, _ = send(t, m, cmd())
	if sub.calls != 1 {
		t.Fatalf("submit calls = %d, want 1", sub.calls)
	}
	if got := sub.last.Get("snippet"); got != "shipped it" {
		t.Fatalf("sent snippet = %q", got)
	}
	s := m.current()
	if s.IsDirty() || s.Saved().Content != "shipped it" {
		t.Fatalf("expected clean saved state, saved=%+v", s.Saved())
	}
	if !strings.HasPrefix(m.status, "Saved 01-06-2025") {
		t.Fatalf("status = %q", m.status)
	}
	if store.Snapshot().LastError != nil {
		t.Fatalf("unexpected last error %v", store.Snapshot().LastError)
	}
}

func TestModelUpdate_SaveFailureKeepsEdits(t *testing.T) {
	sub := &fakeSubmitter{err: errors.New("boom")}
	m, store := newTestModel(t, sub, &fakePerformer{})
	m.current().SetContent("draft")

	m, cmd := send(t, m, runes("s"))
	m, _ = send(t, m, cmd())

	s := m.current()
	if !s.IsDirty() || s.Live().Content != "draft" {
		t.Fatalf("expected edits kept, live=%+v", s.Live())
	}
	if got := s.Render().SaveLabel; got != snippet.LabelSaveFailed {
		t.Fatalf("save label = %q, want %q", got, snippet.LabelSaveFailed)
	}
	if !m.statusDanger {
		t.Fatal("expected danger status")
	}
	if store.Snapshot().LastError == nil {
		t.Fatal("expected failure recorded in store")
	}
}

func TestModelUpdate_SaveWhileInFlightIsRejected(t *testing.T) {
	sub := &fakeSubmitter{}
	m, _ := newTestModel(t, sub, &fakePerformer{})
	m.current().SetContent("one")

	m, first := send(t, m, runes("s"))
	m.current().SetContent("two")
	m, _ = send(t, m, runes("s"))
	if m.status != "Still saving 01-06-2025" {
		t.Fatalf("status = %q", m.status)
	}

	m, _ = send(t, m, first())
	s := m.current()
	if s.Saved().Content != "one" || s.Live().Content != "two" || !s.IsDirty() {
		t.Fatalf("saved=%q live=%q dirty=%v", s.Saved().Content, s.Live().Content, s.IsDirty())
	}
}

func TestModelUpdate_UndoRestoresSaved(t *testing.T) {
	m, store := newTestModel(t, &fakeSubmitter{}, &fakePerformer{})
	m.current().SetContent("oops")
	m, _ = send(t, m, runes("m"))

	m, _ = send(t, m, runes("u"))
	s := m.current()
	if s.IsDirty() || s.Live().Content != "did things" || s.Live().IsMarkdown {
		t.Fatalf("live = %+v", s.Live())
	}
	if got := store.CountDirty(); got != 0 {
		t.Fatalf("published dirty count = %d, want 0", got)
	}
}

func TestModelUpdate_QuitWhenClean(t *testing.T) {
	m, _ := newTestModel(t, &fakeSubmitter{}, &fakePerformer{})

	_, cmd := send(t, m, runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}
}

func TestModelUpdate_QuitWithUnsavedAsks(t *testing.T) {
	m, _ := newTestModel(t, &fakeSubmitter{}, &fakePerformer{})
	m.registry.At(0).SetContent("x")
	m.registry.At(1).SetContent("y")

	m, cmd := send(t, m, runes("q"))
	if cmd != nil || m.modal == nil {
		t.Fatal("expected confirmation dialog instead of quitting")
	}
	if view := m.View(); !strings.Contains(view, "2 unsaved snippets") {
		t.Fatalf("expected warning in dialog, got:\n%s", view)
	}

	m, cmd = send(t, m, runes("n"))
	if m.modal != nil || cmd != nil {
		t.Fatal("expected cancel to close the dialog")
	}

	m, _ = send(t, m, runes("q"))
	_, cmd = send(t, m, runes("q"))
	if cmd == nil {
		t.Fatal("expected second quit to confirm")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}
}

func TestModelUpdate_ToggleHide(t *testing.T) {
	perf := &fakePerformer{}
	m, _ := newTestModel(t, &fakeSubmitter{}, perf)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})

	m, cmd := send(t, m, runes("h"))
	row, _ := m.accounts.Row(0)
	if got := row.Hide.Label(); got != admin.LabelHiding {
		t.Fatalf("label = %q, want %q", got, admin.LabelHiding)
	}

	m, _ = send(t, m, cmd())
	if len(perf.cmds) != 1 || perf.cmds[0].String() != "hide ann@example.com" {
		t.Fatalf("commands = %v", perf.cmds)
	}
	if row.Hide.Mode() != admin.ModeHidden || row.Hide.Label() != admin.LabelUnhide {
		t.Fatalf("mode=%v label=%q", row.Hide.Mode(), row.Hide.Label())
	}
}

func TestModelUpdate_ToggleHideFailure(t *testing.T) {
	perf := &fakePerformer{err: errors.New("500")}
	m, store := newTestModel(t, &fakeSubmitter{}, perf)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = send(t, m, runes("j"))

	m, cmd := send(t, m, runes("h"))
	m, _ = send(t, m, cmd())

	row, _ := m.accounts.Row(1)
	if got := row.Hide.Label(); got != admin.LabelUnhideFailed {
		t.Fatalf("label = %q, want %q", got, admin.LabelUnhideFailed)
	}
	if row.Hide.Mode() != admin.ModeHidden {
		t.Fatal("failed unhide must keep the account hidden")
	}
	if store.Snapshot().ConsecutiveFailures != 1 {
		t.Fatalf("failures = %d, want 1", store.Snapshot().ConsecutiveFailures)
	}
}

func TestModelUpdate_DeleteConfirmFlow(t *testing.T) {
	perf := &fakePerformer{}
	m, _ := newTestModel(t, &fakeSubmitter{}, perf)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	before, _ := m.accounts.Row(0)
	badge := m.accountBadge(before)

	m, cmd := send(t, m, runes("d"))
	if m.modal == nil || cmd != nil {
		t.Fatal("expected delete confirmation")
	}

	m, cmd = send(t, m, runes("y"))
	if cmd == nil {
		t.Fatal("expected confirm command")
	}
	m, cmd = send(t, m, cmd())
	if cmd == nil {
		t.Fatal("expected delete request")
	}
	m, _ = send(t, m, cmd())

	row, _ := m.accounts.Row(0)
	if row.Delete.Label() != admin.LabelDeleted || row.Delete.Enabled() {
		t.Fatalf("label=%q enabled=%v", row.Delete.Label(), row.Delete.Enabled())
	}
	if m.accounts.Len() != 2 {
		t.Fatal("deleted row must stay in the table")
	}
	if got := m.accountBadge(row); got != badge {
		t.Fatalf("state column changed after delete: %q, want %q", got, badge)
	}
	if strings.Contains(m.View(), "deleted ") {
		t.Fatal("view marks the row deleted beyond the button label")
	}

	m, _ = send(t, m, runes("d"))
	if m.modal != nil {
		t.Fatal("deleted row must not ask again")
	}
	if len(perf.cmds) != 1 || perf.cmds[0].Action != admin.ActionDelete {
		t.Fatalf("commands = %v", perf.cmds)
	}
}

func TestModelUpdate_StaleStatusIsKept(t *testing.T) {
	m, _ := newTestModel(t, &fakeSubmitter{}, &fakePerformer{})
	m, _ = m.withStatus("first", false)
	m, _ = m.withStatus("second", false)

	m, _ = send(t, m, clearStatusMsg{seq: m.statusSeq - 1})
	if m.status != "second" {
		t.Fatalf("status = %q, want second", m.status)
	}
	m, _ = send(t, m, clearStatusMsg{seq: m.statusSeq})
	if m.status != "" {
		t.Fatalf("status = %q, want empty", m.status)
	}
}

func TestModelUpdate_CycleThemeSavesPrefs(t *testing.T) {
	m, _ := newTestModel(t, &fakeSubmitter{}, &fakePerformer{})

	m, _ = send(t, m, runes("T"))
	if m.theme.Name != "Kanagawa" {
		t.Fatalf("theme = %q, want Kanagawa", m.theme.Name)
	}
	p, err := prefs.Load(m.prefsPath)
	if err != nil {
		t.Fatalf("load prefs: %v", err)
	}
	if p.Theme != "Kanagawa" || !p.ShowPreview {
		t.Fatalf("prefs = %+v", p)
	}
}

func TestModelUpdate_SignalWarningOpensDialog(t *testing.T) {
	m, _ := newTestModel(t, &fakeSubmitter{}, &fakePerformer{})
	m.current().SetContent("draft")

	m, _ = send(t, m, guardWarnMsg{warning: navguard.Warning(1)})
	if m.modal == nil {
		t.Fatal("expected quit dialog")
	}
	if view := m.View(); !strings.Contains(view, "1 unsaved snippet.") {
		t.Fatalf("expected singular warning, got:\n%s", view)
	}
}
