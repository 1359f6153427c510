// Package admin models the hide/unhide and delete buttons of the account
// management page.
//
// Each button is its own small state machine. A press calls Begin, which
// disables the button, swaps in a progress label and hands back the Command
// to send. The response is fed to Finish:
//
//	ToggleButton  Idle ──Begin──→ InFlight ──ok──→ Idle (mode flipped)
//	                                       └─fail─→ Failed (mode kept)
//	DeleteButton  Idle ──Begin──→ InFlight ──ok──→ Done (disabled for good)
//	                                       └─fail─→ Failed
//
// The toggle decides its next action from the confirmed mode, never from the
// label, so a failed hide is retried as a hide.
//
// A deleted account's row is left on screen; only its delete button changes.
package admin
