package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/snipdesk/internal/admin"
	"github.com/five82/snipdesk/internal/snippet"
)

// submitDoneMsg carries the outcome of one snippet save.
type submitDoneMsg struct {
	index   int
	sub     snippet.Submission
	err     error
	elapsed time.Duration
}

// adminDoneMsg carries the outcome of one account command.
type adminDoneMsg struct {
	index int
	cmd   admin.Command
	err   error
}

// deleteConfirmedMsg is sent when the delete dialog is accepted.
type deleteConfirmedMsg struct {
	index int
}

type clearStatusMsg struct {
	seq int
}

// guardWarnMsg is sent by the signal guard when the process is asked to
// stop while snippets are dirty.
type guardWarnMsg struct {
	warning string
}

type refreshMsg struct{}

// submitCmd sends sub off the event loop. The snippet itself is only
// touched again when submitDoneMsg arrives.
func submitCmd(ctx context.Context, submitter snippet.Submitter, index int, sub snippet.Submission, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		start := time.Now()
		err := submitter.SubmitSnippet(ctx, sub.Endpoint, sub.Form())
		return submitDoneMsg{index: index, sub: sub, err: err, elapsed: time.Since(start)}
	}
}

// adminCmd sends one account command.
func adminCmd(ctx context.Context, ctrl *admin.Controller, index int, cmd admin.Command, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		err := ctrl.Send(ctx, cmd)
		return adminDoneMsg{index: index, cmd: cmd, err: err}
	}
}

func clearStatusCmd(seq int) tea.Cmd {
	return tea.Tick(StatusTimeout, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}

func refreshCmd(every time.Duration) tea.Cmd {
	if every <= 0 {
		return nil
	}
	return tea.Tick(every, func(time.Time) tea.Msg { return refreshMsg{} })
}
