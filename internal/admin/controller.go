package admin

import (
	"context"
	"fmt"
	"log/slog"
)

// Row is one account line on the admin page.
type Row struct {
	Email  string
	Hide   *ToggleButton
	Delete *DeleteButton
}

// NewRow builds a row with idle buttons.
func NewRow(email string, mode Mode) Row {
	return Row{
		Email:  email,
		Hide:   NewToggleButton(email, mode),
		Delete: NewDeleteButton(email),
	}
}

// Performer sends an admin command to the server.
type Performer interface {
	ManageUser(ctx context.Context, cmd Command) error
}

// Controller runs button presses against a Performer. Like the snippet
// types it is meant for a single goroutine.
type Controller struct {
	rows   []Row
	perf   Performer
	logger *slog.Logger
}

// NewController returns a controller over rows.
func NewController(rows []Row, perf Performer, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Controller{rows: rows, perf: perf, logger: logger}
}

func (c *Controller) Len() int { return len(c.rows) }

// Row returns the i-th row.
func (c *Controller) Row(i int) (Row, bool) {
	if i < 0 || i >= len(c.rows) {
		return Row{}, false
	}
	return c.rows[i], true
}

// Rows returns a copy of the row slice.
func (c *Controller) Rows() []Row {
	out := make([]Row, len(c.rows))
	copy(out, c.rows)
	return out
}

// ToggleVisibility hides or unhides row i and waits for the answer. A
// request failure ends up in the button label and is returned only so the
// caller can log it.
func (c *Controller) ToggleVisibility(ctx context.Context, i int) error {
	row, ok := c.Row(i)
	if !ok {
		return fmt.Errorf("%w: %d", ErrNoRow, i)
	}
	cmd, err := row.Hide.Begin()
	if err != nil {
		return err
	}
	err = c.Send(ctx, cmd)
	row.Hide.Finish(err)
	return err
}

// DeleteRow deletes the account of row i. The row stays in place; only the
// button records the outcome.
func (c *Controller) DeleteRow(ctx context.Context, i int) error {
	row, ok := c.Row(i)
	if !ok {
		return fmt.Errorf("%w: %d", ErrNoRow, i)
	}
	cmd, err := row.Delete.Begin()
	if err != nil {
		return err
	}
	err = c.Send(ctx, cmd)
	row.Delete.Finish(err)
	return err
}

// Send performs cmd without touching any button. It is safe to call from a
// goroutine other than the one that owns the rows, which is how the terminal
// UI runs requests: Begin on the loop, Send in a command, Finish on the loop.
func (c *Controller) Send(ctx context.Context, cmd Command) error {
	err := c.perf.ManageUser(ctx, cmd)
	if err != nil {
		c.logger.Warn("admin command failed", "command", cmd.String(), "error", err)
		return err
	}
	c.logger.Info("admin command ok", "command", cmd.String())
	return nil
}
