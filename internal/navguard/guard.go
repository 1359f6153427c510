// Package navguard warns before the program exits with unsaved snippets.
package navguard

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

// Counter reports how many snippets have unsaved edits.
type Counter interface {
	CountDirty() int
}

// Guard turns a dirty count into the quit warning.
type Guard struct {
	counter Counter
}

// New returns a Guard reading from c.
func New(c Counter) *Guard {
	return &Guard{counter: c}
}

// BeforeUnload returns the warning to show, or false when leaving is safe.
func (g *Guard) BeforeUnload() (string, bool) {
	if g == nil || g.counter == nil {
		return "", false
	}
	n := g.counter.CountDirty()
	if n <= 0 {
		return "", false
	}
	return Warning(n), true
}

// Warning phrases the unsaved-snippet message for n snippets.
func Warning(n int) string {
	if n == 1 {
		return "Hey!!! You have 1 unsaved snippet."
	}
	return fmt.Sprintf("Hey!!! You have %d unsaved snippets.", n)
}

var installOnce sync.Once

// Install registers the process-wide SIGINT/SIGTERM handler once. When a
// signal arrives with dirty snippets, onWarn receives the warning; a second
// signal, or a signal with nothing dirty, calls exit. Later calls are no-ops.
// The handler stops when ctx is done.
func Install(ctx context.Context, c Counter, onWarn func(string), exit func()) bool {
	installed := false
	installOnce.Do(func() {
		installed = true
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
		go watch(ctx, sigs, New(c), onWarn, exit)
	})
	return installed
}

func watch(ctx context.Context, sigs chan os.Signal, g *Guard, onWarn func(string), exit func()) {
	defer signal.Stop(sigs)
	warned := false
	for {
		select {
		case <-ctx.Done():
			return
		case <-sigs:
			msg, dirty := g.BeforeUnload()
			if !dirty || warned {
				if exit != nil {
					exit()
				}
				return
			}
			warned = true
			if onWarn != nil {
				onWarn(msg)
			}
		}
	}
}
