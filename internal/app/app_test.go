package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/five82/snipdesk/internal/config"
	"github.com/five82/snipdesk/internal/devserver"
	"github.com/five82/snipdesk/internal/snipapi"
)

func newSessionClient(t *testing.T, h http.Handler) *snipapi.Client {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	client, err := snipapi.NewClient(ts.URL, snipapi.Options{})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return client
}

func TestLoadSession_ReadsSnippetsAndAccounts(t *testing.T) {
	srv := devserver.New(devserver.Config{Now: time.Date(2025, time.January, 15, 12, 0, 0, 0, time.UTC)})
	client := newSessionClient(t, srv.Handler())

	cfg := config.Default()
	cfg.User = "ann@example.com"

	sess, err := LoadSession(context.Background(), client, cfg, nil)
	if err != nil {
		t.Fatalf("LoadSession returned error: %v", err)
	}
	if got := sess.Registry.Len(); got != 3 {
		t.Fatalf("snippets = %d, want 3", got)
	}
	if got := sess.Registry.CountDirty(); got != 0 {
		t.Fatalf("dirty = %d, want 0 on load", got)
	}
	if sess.Accounts == nil || sess.Accounts.Len() != 3 {
		t.Fatalf("accounts = %v, want 3 rows", sess.Accounts)
	}

	first := sess.Registry.At(0)
	if !strings.HasPrefix(first.Endpoint(), client.BaseURL().String()) {
		t.Fatalf("endpoint %q not resolved against %q", first.Endpoint(), client.BaseURL())
	}
}

func TestLoadSession_AdminPageIsOptional(t *testing.T) {
	srv := devserver.New(devserver.Config{})
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/admin/") {
			http.Error(w, "forbidden", http.StatusForbidden)
			return
		}
		srv.Handler().ServeHTTP(w, r)
	})
	client := newSessionClient(t, h)

	sess, err := LoadSession(context.Background(), client, config.Default(), nil)
	if err != nil {
		t.Fatalf("LoadSession returned error: %v", err)
	}
	if sess.Accounts != nil {
		t.Fatal("expected no account rows without admin access")
	}
	if sess.Registry.Len() == 0 {
		t.Fatal("expected snippet forms")
	}
}

func TestLoadSession_PageFailureIsFatal(t *testing.T) {
	client := newSessionClient(t, http.NotFoundHandler())

	if _, err := LoadSession(context.Background(), client, config.Default(), nil); err == nil {
		t.Fatal("expected error when the snippet page is missing")
	}
}

func TestNewLogger_WritesJSONAtLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "snipdesk.log")

	logger, closeLog, err := NewLogger(path, "warn")
	if err != nil {
		t.Fatalf("NewLogger returned error: %v", err)
	}
	logger.Info("dropped")
	logger.Warn("kept", "label", "01-13-2025")
	closeLog()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("log lines = %d, want 1: %q", len(lines), data)
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if entry["msg"] != "kept" || entry["label"] != "01-13-2025" {
		t.Fatalf("entry = %v", entry)
	}
}

func TestNewLogger_RejectsUnknownLevel(t *testing.T) {
	if _, _, err := NewLogger("", "loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
