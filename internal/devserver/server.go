package devserver

import (
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/five82/snipdesk/internal/admin"
	"github.com/five82/snipdesk/internal/snippet"
)

// Config holds demo server settings.
type Config struct {
	// FailEvery makes every Nth mutating request fail with a 500. Zero
	// disables injected failures.
	FailEvery int
	// Latency delays every mutating request.
	Latency time.Duration
	// Now seeds the demo weeks. Zero means time.Now.
	Now    time.Time
	Logger *slog.Logger
}

// Server is an in-memory stand-in for the snippet server.
type Server struct {
	cfg       Config
	store     *store
	router    chi.Router
	logger    *slog.Logger
	mutations atomic.Int64
}

// New builds a demo server seeded with sample accounts and snippets.
func New(cfg Config) *Server {
	if cfg.Now.IsZero() {
		cfg.Now = time.Now()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &Server{cfg: cfg, store: newStore(), logger: logger}
	seedDemo(s.store, cfg.Now)
	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	// Lets the original browser pages, served from another local port, talk
	// to the demo server.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	r.Get("/", s.handleSnippetPage)
	r.Post("/update_snippet", s.handleUpdateSnippet)
	r.Get("/admin/manage_users", s.handleManageUsers)
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeStatus(w, http.StatusOK, "ok")
	})

	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// Serve answers requests on ln until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		<-errCh
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// Snippet returns the stored snippet for email and week.
func (s *Server) Snippet(email, week string) (snippet.Fields, bool) {
	return s.store.get(email, week)
}

// Accounts returns a copy of every account, deleted ones included.
func (s *Server) Accounts() []Account {
	return s.store.snapshotAccounts()
}

// Weeks returns the demo weeks, oldest first.
func (s *Server) Weeks() []string {
	out := make([]string, len(s.store.weeks))
	copy(out, s.store.weeks)
	return out
}

func (s *Server) handleSnippetPage(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("u")
	if email == "" {
		email = s.store.defaultEmail()
	}
	weeks, ok := s.store.weekViews(email)
	if !ok {
		http.Error(w, "no such user", http.StatusNotFound)
		return
	}
	s.render(w, snippetPageTmpl, struct {
		Email string
		Weeks []weekView
	}{email, weeks})
}

func (s *Server) handleUpdateSnippet(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeStatus(w, http.StatusBadRequest, "bad form")
		return
	}
	if s.injectFailure(w) {
		return
	}
	email := r.PostForm.Get("u")
	if email == "" {
		email = s.store.defaultEmail()
	}
	fields := snippet.Fields{
		Content:    r.PostForm.Get("snippet"),
		IsMarkdown: r.PostForm.Get("is_markdown") == "True",
		IsPrivate:  r.PostForm.Get("private") == "True",
	}
	if err := s.store.put(email, r.PostForm.Get("week"), fields); err != nil {
		writeStatus(w, http.StatusBadRequest, err.Error())
		return
	}
	writeStatus(w, http.StatusOK, "ok")
}

// handleManageUsers accepts a command either as a bare query key
// ("?hide%20<email>") or as a submit-button pair ("?hide+<email>=Hide").
// Both decode to a query key holding the command. Without a command it
// renders the admin page.
func (s *Server) handleManageUsers(w http.ResponseWriter, r *http.Request) {
	var cmds []admin.Command
	for key := range r.URL.Query() {
		if cmd, err := admin.ParseCommand(key); err == nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		s.render(w, adminPageTmpl, struct{ Accounts []Account }{s.store.snapshotAccounts()})
		return
	}
	if s.injectFailure(w) {
		return
	}
	for _, cmd := range cmds {
		if err := s.store.apply(cmd); err != nil {
			writeStatus(w, http.StatusNotFound, err.Error())
			return
		}
		s.logger.Info("admin command applied", "command", cmd.String())
	}
	writeStatus(w, http.StatusOK, "ok")
}

func (s *Server) injectFailure(w http.ResponseWriter) bool {
	if s.cfg.Latency > 0 {
		time.Sleep(s.cfg.Latency)
	}
	n := s.mutations.Add(1)
	if s.cfg.FailEvery > 0 && n%int64(s.cfg.FailEvery) == 0 {
		writeStatus(w, http.StatusInternalServerError, "injected failure")
		return true
	}
	return false
}

func (s *Server) render(w http.ResponseWriter, tmpl *template.Template, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		s.logger.Error("render page", "template", tmpl.Name(), "error", err)
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("demo request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"request_id", r.Header.Get("X-Request-Id"),
			"duration", time.Since(start),
		)
	})
}

func writeStatus(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(struct {
		Status  int    `json:"status"`
		Message string `json:"message"`
	}{code, msg})
}
