package app

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/five82/snipdesk/internal/admin"
	"github.com/five82/snipdesk/internal/config"
	"github.com/five82/snipdesk/internal/page"
	"github.com/five82/snipdesk/internal/prefs"
	"github.com/five82/snipdesk/internal/preview"
	"github.com/five82/snipdesk/internal/snipapi"
	"github.com/five82/snipdesk/internal/snippet"
	"github.com/five82/snipdesk/internal/state"
	"github.com/five82/snipdesk/internal/ui"
)

// Options configure the snipdesk application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/snipdesk/prefs.toml
	BaseURL    string // overrides base_url from the config file
	PollEvery  int    // seconds between reachability checks; zero uses default
}

// Run loads the snippet page and runs the TUI until the user quits or the
// context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.BaseURL != "" {
		cfg.BaseURL = opts.BaseURL
	}

	logger, closeLog, err := NewLogger(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer closeLog()

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	client, err := snipapi.NewClient(cfg.BaseURL, snipapi.Options{
		Timeout:    cfg.RequestTimeout,
		AdminPath:  cfg.AdminPath,
		Convention: snipapi.Convention(cfg.AdminConvention),
	})
	if err != nil {
		return fmt.Errorf("init snippet client: %w", err)
	}

	sess, err := LoadSession(ctx, client, cfg, logger)
	if err != nil {
		return err
	}
	logger.Info("session loaded",
		"server", client.BaseURL().String(),
		"snippets", sess.Registry.Len(),
		"accounts", sess.accountCount())

	store := &state.Store{}

	interval := defaultPollInterval
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}
	StartPoller(ctx, store, client, cfg.SnippetPage(), interval, logger)

	err = ui.Run(ui.Options{
		Context:        ctx,
		Registry:       sess.Registry,
		Accounts:       sess.Accounts,
		Submitter:      client,
		Store:          store,
		Logger:         logger,
		Server:         client.BaseURL().Host,
		RequestTimeout: cfg.RequestTimeout,
		ThemeName:      userPrefs.Theme,
		ShowPreview:    userPrefs.ShowPreview,
		PrefsPath:      opts.PrefsPath,
		RefreshEvery:   interval,
		GuardSignals:   true,
	})

	if snap := store.Snapshot(); snap.Dirty > 0 {
		logger.Warn("exiting with unsaved snippets", "count", snap.Dirty, "labels", snap.DirtyLabels)
	}
	return err
}

// Session is what the TUI works on: the snippet forms of one page and, when
// the admin page is readable, its account rows.
type Session struct {
	Registry *snippet.Registry
	Accounts *admin.Controller
}

func (s Session) accountCount() int {
	if s.Accounts == nil {
		return 0
	}
	return s.Accounts.Len()
}

// LoadSession fetches and parses the snippet page. The admin page is
// optional; a failure there only leaves Accounts nil.
func LoadSession(ctx context.Context, client *snipapi.Client, cfg config.Config, logger *slog.Logger) (Session, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	pagePath := cfg.SnippetPage()
	pageURL, err := client.Resolve(pagePath)
	if err != nil {
		return Session{}, fmt.Errorf("resolve snippet page: %w", err)
	}
	body, err := client.FetchPage(ctx, pagePath)
	if err != nil {
		return Session{}, fmt.Errorf("fetch snippet page: %w", err)
	}
	descs, err := page.ParseSnippetForms(bytes.NewReader(body), pageURL)
	if err != nil {
		return Session{}, fmt.Errorf("parse snippet page: %w", err)
	}

	sess := Session{
		Registry: snippet.NewRegistry(descs,
			snippet.WithRenderer(preview.New()),
			snippet.WithLogger(logger),
		),
	}

	adminBody, err := client.FetchPage(ctx, cfg.AdminPath)
	if err != nil {
		logger.Info("admin page unavailable", "path", cfg.AdminPath, "status", snipapi.StatusCode(err), "error", err)
		return sess, nil
	}
	rows, err := page.ParseAccountRows(bytes.NewReader(adminBody))
	if err != nil {
		logger.Warn("admin page unreadable", "path", cfg.AdminPath, "error", err)
		return sess, nil
	}
	sess.Accounts = admin.NewController(rows, client, logger)
	return sess, nil
}

// NewLogger opens a JSON log at path. The returned func closes the file. An
// empty path discards everything.
func NewLogger(path, level string) (*slog.Logger, func(), error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}
	if path == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return newJSONLogger(f, lvl), func() { _ = f.Close() }, nil
}

func newJSONLogger(w io.Writer, lvl slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}))
}
