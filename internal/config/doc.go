// Package config loads the snipdesk configuration file.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/snipdesk/config.toml (default)
//  3. If the config file doesn't exist, fall back to Default()
//  4. If the file exists but fields are missing/empty, use defaults
//
// # TOML Format
//
//	base_url = "https://snippets.example.com"
//	user = "ann@example.com"
//	snippet_path = "/"
//	admin_path = "/admin/manage_users"
//	admin_convention = "query"   # or "form"
//	request_timeout_seconds = 10
//	log_file = "~/.local/state/snipdesk/snipdesk.log"
//	log_level = "info"
//
// Every field is optional. Strings are trimmed and paths get tilde expansion.
// admin_convention and log_level are checked by Validate; a bad value is a
// startup error rather than a silent default.
//
// # Error Handling
//
// Load returns errors for path expansion failures, read errors other than
// os.ErrNotExist, TOML parse errors and failed validation.
package config
