// Package state shares snippet status between the UI loop and the rest of
// the process.
//
// # Overview
//
// The snippets themselves are owned by the bubbletea event loop and are not
// locked. Anything running elsewhere (the signal guard, shutdown logging)
// reads a copy published here instead:
//
//	UI loop:                        Other goroutines:
//	┌──────────────────┐            ┌──────────────────┐
//	│ edit / save      │            │                  │
//	│      ↓           │            │                  │
//	│ store.Publish()  │───────────→│ store.Snapshot() │
//	│ store.RecordResult()  (mutex) │ store.CountDirty()│
//	└──────────────────┘            └──────────────────┘
//
// # Update Semantics
//
// Publish replaces the counts and leaves the request history alone.
// RecordResult tracks the last request error and a failure streak; a
// success clears both. IsOffline reports a streak of two or more.
//
// # Copying
//
// Snapshot returns a value with its own DirtyLabels slice and a wrapped copy
// of LastError, so callers can keep it without holding the lock.
//
// The zero Store is ready to use.
package state
