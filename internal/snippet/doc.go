// Package snippet holds the editable snippet forms and their save state.
//
// # Overview
//
// A Snippet mirrors one weekly snippet form: a text body plus a markdown
// toggle and a private toggle. Each Snippet keeps two copies of those values:
//
//   - saved: what the server last confirmed (or what the page rendered)
//   - live:  what the user currently has in the editor
//
// A snippet is dirty when the two differ. Dirtiness is never stored; IsDirty
// compares the two Fields values every time it is asked.
//
// # Transitions
//
//	UpdateField ──→ live changes, saved untouched
//	Undo        ──→ live = saved
//	BeginSubmit ──→ snapshot live, phase InFlight
//	FinishSubmit(ok)   ──→ saved = snapshot, phase Idle
//	FinishSubmit(fail) ──→ phase Failed, saved and live untouched
//
// Only one submission may be pending per snippet. A second BeginSubmit while
// one is in flight returns ErrSubmitInFlight. A completion for any other
// submission returns ErrStaleSubmission and changes nothing.
//
// On success the fields that were sent become the saved state. Edits typed
// while the request was in flight stay in live, so the snippet is still dirty
// afterwards and can be saved again.
//
// # Rendering
//
// Render projects the state into a Presentation and hands it to an optional
// Sink. It has no other side effect, so calling it twice in a row yields the
// same value. Markdown previews come from a Renderer; plain text is escaped.
//
// # Concurrency
//
// Nothing here is locked. The terminal UI drives every call from its event
// loop and runs network requests as commands that report back with a
// message, which then calls FinishSubmit on the loop.
//
// # Registry
//
// Registry is the ordered, fixed list of snippets found on a page. It
// answers CountDirty for the quit guard.
package snippet
