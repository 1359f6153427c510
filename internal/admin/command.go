package admin

import (
	"fmt"
	"strings"
)

// Action is a mutation the admin endpoint understands.
type Action string

const (
	ActionHide   Action = "hide"
	ActionUnhide Action = "unhide"
	ActionDelete Action = "delete"
)

// Valid reports whether a is one of the known actions.
func (a Action) Valid() bool {
	switch a {
	case ActionHide, ActionUnhide, ActionDelete:
		return true
	}
	return false
}

// Command is one admin request: an action applied to an account.
type Command struct {
	Action Action
	Target string
}

// String returns the query-style command, e.g. "hide ann@example.com".
func (c Command) String() string {
	return string(c.Action) + " " + c.Target
}

// ParseCommand parses the "action target" form used in admin query strings
// and submit-button names.
func ParseCommand(s string) (Command, error) {
	action, target, ok := strings.Cut(strings.TrimSpace(s), " ")
	if !ok {
		return Command{}, fmt.Errorf("parse command %q: missing target", s)
	}
	cmd := Command{Action: Action(action), Target: strings.TrimSpace(target)}
	if !cmd.Action.Valid() {
		return Command{}, fmt.Errorf("parse command %q: unknown action %q", s, action)
	}
	if cmd.Target == "" {
		return Command{}, fmt.Errorf("parse command %q: missing target", s)
	}
	return cmd, nil
}
