// Package app is the composition root for snipdesk.
//
// # Overview
//
// Run wires configuration, logging, the snippet server client, the page
// adapter and the TUI together:
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─────> config.Load()       Read ~/.config/snipdesk/config.toml
//	       ├─────> NewLogger()         JSON log file at log_level
//	       ├─────> snipapi.NewClient() HTTP client for the snippet server
//	       ├─────> LoadSession()       Fetch and parse snippet + admin pages
//	       ├─────> StartPoller()       Background reachability checks
//	       └─────> ui.Run()            Start TUI (blocks)
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Invalid config or an unopenable log file
//   - The snippet page cannot be fetched or parsed
//
// Recoverable errors:
//   - Admin page missing or forbidden: the Accounts view stays empty
//   - Ping failures: recorded in state.Store and shown as OFFLINE; the
//     poller backs off up to two minutes
//   - Save and admin request failures: shown on the affected control
//
// # Usage Example
//
//	ctx, cancel := context.WithCancel(context.Background())
//	defer cancel()
//
//	if err := app.Run(ctx, app.Options{}); err != nil {
//		log.Fatalf("snipdesk failed: %v", err)
//	}
package app
