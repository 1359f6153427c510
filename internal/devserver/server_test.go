package devserver

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/five82/snipdesk/internal/admin"
	"github.com/five82/snipdesk/internal/page"
	"github.com/five82/snipdesk/internal/snipapi"
	"github.com/five82/snipdesk/internal/snippet"
)

var fixedNow = time.Date(2025, time.January, 15, 12, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T, cfg Config) (*Server, *httptest.Server) {
	t.Helper()
	if cfg.Now.IsZero() {
		cfg.Now = fixedNow
	}
	srv := New(cfg)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func TestSeedDemo_WeeksEndOnCurrentMonday(t *testing.T) {
	srv := New(Config{Now: fixedNow})
	want := []string{"12-30-2024", "01-06-2025", "01-13-2025"}
	got := srv.Weeks()
	if len(got) != len(want) {
		t.Fatalf("Weeks() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Weeks() = %v, want %v", got, want)
		}
	}
}

func TestSnippetRoundTrip(t *testing.T) {
	srv, ts := newTestServer(t, Config{})
	client, err := snipapi.NewClient(ts.URL, snipapi.Options{})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx := context.Background()

	body, err := client.FetchPage(ctx, "/?u=ann%40example.com")
	if err != nil {
		t.Fatalf("FetchPage returned error: %v", err)
	}
	descs, err := page.ParseSnippetForms(bytes.NewReader(body), client.BaseURL())
	if err != nil {
		t.Fatalf("ParseSnippetForms returned error: %v", err)
	}
	if len(descs) != 3 {
		t.Fatalf("found %d forms, want 3", len(descs))
	}
	if descs[0].Label != "01-13-2025" {
		t.Fatalf("first form label = %q, want newest week", descs[0].Label)
	}
	if !descs[2].Initial.IsMarkdown {
		t.Fatalf("oldest week should be markdown: %+v", descs[2].Initial)
	}

	reg := snippet.NewRegistry(descs)
	s := reg.At(0)
	s.SetContent("wrote the demo")
	s.SetPrivate(true)
	if err := s.Submit(ctx, client); err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if s.IsDirty() {
		t.Fatalf("snippet dirty after successful submit")
	}

	got, ok := srv.Snippet("ann@example.com", "01-13-2025")
	want := snippet.Fields{Content: "wrote the demo", IsPrivate: true}
	if !ok || got != want {
		t.Fatalf("server snippet = %+v (ok=%v), want %+v", got, ok, want)
	}
}

func TestFailEveryInjectsFailures(t *testing.T) {
	_, ts := newTestServer(t, Config{FailEvery: 2})
	client, _ := snipapi.NewClient(ts.URL, snipapi.Options{})
	ctx := context.Background()

	s := snippet.New(snippet.Descriptor{
		Endpoint: ts.URL + "/update_snippet",
		Initial:  snippet.Fields{Content: "hello"},
		Extra:    url.Values{"week": {"01-13-2025"}, "u": {"ann@example.com"}},
	})
	s.SetContent("one")
	if err := s.Submit(ctx, client); err != nil {
		t.Fatalf("first Submit returned error: %v", err)
	}
	s.SetContent("two")
	err := s.Submit(ctx, client)
	if snipapi.StatusCode(err) != http.StatusInternalServerError {
		t.Fatalf("second Submit error = %v, want injected 500", err)
	}
	if !s.IsDirty() || s.Saved().Content != "one" {
		t.Fatalf("after failure saved = %+v dirty = %v", s.Saved(), s.IsDirty())
	}
	if s.Render().SaveLabel != snippet.LabelSaveFailed {
		t.Fatalf("SaveLabel = %q, want failure label", s.Render().SaveLabel)
	}
}

func TestManageUsers_BothConventions(t *testing.T) {
	for _, conv := range []snipapi.Convention{snipapi.ConventionQuery, snipapi.ConventionForm} {
		t.Run(string(conv), func(t *testing.T) {
			srv, ts := newTestServer(t, Config{})
			client, _ := snipapi.NewClient(ts.URL, snipapi.Options{Convention: conv})
			ctx := context.Background()

			body, err := client.FetchPage(ctx, "/admin/manage_users")
			if err != nil {
				t.Fatalf("FetchPage returned error: %v", err)
			}
			rows, err := page.ParseAccountRows(bytes.NewReader(body))
			if err != nil {
				t.Fatalf("ParseAccountRows returned error: %v", err)
			}
			if len(rows) != 3 || rows[1].Hide.Mode() != admin.ModeHidden {
				t.Fatalf("rows = %d, bob mode = %v", len(rows), rows[1].Hide.Mode())
			}

			ctrl := admin.NewController(rows, client, nil)
			if err := ctrl.ToggleVisibility(ctx, 1); err != nil {
				t.Fatalf("ToggleVisibility returned error: %v", err)
			}
			if err := ctrl.DeleteRow(ctx, 2); err != nil {
				t.Fatalf("DeleteRow returned error: %v", err)
			}

			accounts := srv.Accounts()
			if accounts[1].Hidden {
				t.Fatalf("bob still hidden on server")
			}
			if !accounts[2].Deleted {
				t.Fatalf("cy not deleted on server")
			}
			if rows[1].Hide.Label() != admin.LabelHide {
				t.Fatalf("bob label = %q, want %q", rows[1].Hide.Label(), admin.LabelHide)
			}
			if rows[2].Delete.Label() != admin.LabelDeleted {
				t.Fatalf("cy label = %q, want %q", rows[2].Delete.Label(), admin.LabelDeleted)
			}
		})
	}
}

func TestDefaultUser_SkipsDeletedAccounts(t *testing.T) {
	srv, ts := newTestServer(t, Config{})
	client, _ := snipapi.NewClient(ts.URL, snipapi.Options{})
	ctx := context.Background()

	if err := client.ManageUser(ctx, admin.Command{Action: admin.ActionDelete, Target: "ann@example.com"}); err != nil {
		t.Fatalf("ManageUser returned error: %v", err)
	}

	body, err := client.FetchPage(ctx, "/")
	if err != nil {
		t.Fatalf("FetchPage after deleting first account returned error: %v", err)
	}
	descs, err := page.ParseSnippetForms(bytes.NewReader(body), client.BaseURL())
	if err != nil {
		t.Fatalf("ParseSnippetForms returned error: %v", err)
	}
	if len(descs) != 3 || descs[0].Extra.Get("u") != "bob@example.com" {
		t.Fatalf("default page forms = %d, user = %q, want bob", len(descs), descs[0].Extra.Get("u"))
	}

	resp, err := http.PostForm(ts.URL+"/update_snippet", url.Values{
		"week":    {"01-13-2025"},
		"snippet": {"no user given"},
	})
	if err != nil {
		t.Fatalf("PostForm returned error: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("default save status = %d, want 200", resp.StatusCode)
	}
	if got, ok := srv.Snippet("bob@example.com", "01-13-2025"); !ok || got.Content != "no user given" {
		t.Fatalf("bob snippet = %+v (ok=%v)", got, ok)
	}
}

func TestManageUsers_UnknownUserFails(t *testing.T) {
	_, ts := newTestServer(t, Config{})
	client, _ := snipapi.NewClient(ts.URL, snipapi.Options{})

	err := client.ManageUser(context.Background(), admin.Command{Action: admin.ActionHide, Target: "nobody@example.com"})
	if snipapi.StatusCode(err) != http.StatusNotFound {
		t.Fatalf("ManageUser error = %v, want 404", err)
	}
}

func TestCORS_AllowsLocalOrigins(t *testing.T) {
	_, ts := newTestServer(t, Config{})

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/update_snippet", nil)
	if err != nil {
		t.Fatalf("NewRequest returned error: %v", err)
	}
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)

	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("preflight failed: %v", err)
	}
	defer resp.Body.Close()

	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Fatalf("Access-Control-Allow-Origin = %q, want %q", got, "http://localhost:3000")
	}
}
