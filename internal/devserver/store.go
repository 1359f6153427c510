package devserver

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/five82/snipdesk/internal/admin"
	"github.com/five82/snipdesk/internal/snippet"
)

// WeekFormat is how weeks appear in forms and URLs.
const WeekFormat = "01-02-2006"

// Account is a user known to the demo server.
type Account struct {
	Email   string
	Hidden  bool
	Deleted bool
}

type snippetKey struct {
	email string
	week  string
}

// store is the in-memory data behind the demo pages.
type store struct {
	mu       sync.Mutex
	weeks    []string
	accounts []*Account
	snippets map[snippetKey]snippet.Fields
}

func newStore() *store {
	return &store{snippets: map[snippetKey]snippet.Fields{}}
}

// seedDemo fills the store with a few accounts and the three weeks ending
// at the week containing now.
func seedDemo(s *store, now time.Time) {
	monday := now.AddDate(0, 0, -((int(now.Weekday()) + 6) % 7))
	for i := 2; i >= 0; i-- {
		s.weeks = append(s.weeks, monday.AddDate(0, 0, -7*i).Format(WeekFormat))
	}
	s.accounts = []*Account{
		{Email: "ann@example.com"},
		{Email: "bob@example.com", Hidden: true},
		{Email: "cy@example.com"},
	}
	s.snippets[snippetKey{"ann@example.com", s.weeks[0]}] = snippet.Fields{
		Content:    "- shipped the importer\n- **fixed** the flaky test",
		IsMarkdown: true,
	}
	s.snippets[snippetKey{"ann@example.com", s.weeks[1]}] = snippet.Fields{
		Content:   "Interviewing most of the week.",
		IsPrivate: true,
	}
}

func (s *store) account(email string) *Account {
	for _, a := range s.accounts {
		if a.Email == email && !a.Deleted {
			return a
		}
	}
	return nil
}

// defaultEmail is the first account still present, used when a request names
// no user. It is empty once every account has been deleted.
func (s *store) defaultEmail() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if !a.Deleted {
			return a.Email
		}
	}
	return ""
}

func (s *store) put(email, week string, f snippet.Fields) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.account(email) == nil {
		return fmt.Errorf("unknown user %q", email)
	}
	if !slices.Contains(s.weeks, week) {
		return fmt.Errorf("unknown week %q", week)
	}
	s.snippets[snippetKey{email, week}] = f
	return nil
}

func (s *store) get(email, week string) (snippet.Fields, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.snippets[snippetKey{email, week}]
	return f, ok
}

func (s *store) apply(cmd admin.Command) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := s.account(cmd.Target)
	if a == nil {
		return fmt.Errorf("unknown user %q", cmd.Target)
	}
	switch cmd.Action {
	case admin.ActionHide:
		a.Hidden = true
	case admin.ActionUnhide:
		a.Hidden = false
	case admin.ActionDelete:
		a.Deleted = true
	}
	return nil
}

func (s *store) snapshotAccounts() []Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, *a)
	}
	return out
}

type weekView struct {
	Week   string
	Email  string
	Fields snippet.Fields
}

func (s *store) weekViews(email string) ([]weekView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.account(email) == nil {
		return nil, false
	}
	out := make([]weekView, 0, len(s.weeks))
	for i := len(s.weeks) - 1; i >= 0; i-- {
		w := s.weeks[i]
		out = append(out, weekView{Week: w, Email: email, Fields: s.snippets[snippetKey{email, w}]})
	}
	return out, true
}
