package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/five82/snipdesk/internal/state"
)

const (
	defaultPollInterval = 15 * time.Second
	maxBackoff          = 2 * time.Minute
	pingTimeout         = 5 * time.Second
)

// Pinger checks that the snippet server answers.
type Pinger interface {
	Ping(ctx context.Context, path string) error
}

// StartPoller launches a background goroutine that pings the server and
// records reachability in the store. Consecutive failures back off up to
// maxBackoff. It returns immediately.
func StartPoller(ctx context.Context, store *state.Store, pinger Pinger, path string, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	go func() {
		wait := interval
		for {
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}

			if err := ping(ctx, store, pinger, path); err != nil {
				failures := store.Snapshot().ConsecutiveFailures
				wait = calculateBackoff(failures, interval)
				logger.Warn("server ping failed", "error", err, "failures", failures, "retry_in", wait)
				continue
			}
			wait = interval
		}
	}()
}

func ping(ctx context.Context, store *state.Store, pinger Pinger, path string) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	err := pinger.Ping(ctx, path)
	if err != nil && errors.Is(ctx.Err(), context.Canceled) {
		// Shutting down; not a server problem.
		return nil
	}
	store.RecordResult(err)
	return err
}

// calculateBackoff doubles base per failure, capped at maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	d := base
	for i := 0; i < failures; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}
