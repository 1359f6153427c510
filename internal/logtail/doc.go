// Package logtail reads the tail of the snipdesk log and formats its slog
// JSON records for a terminal.
//
// # Reading Log Files
//
// Read keeps a ring buffer of maxLines entries, so the last lines of a large
// file come back in one pass and O(maxLines) memory:
//
//	lines, err := logtail.Read("~/.local/state/snipdesk/snipdesk.log", 200)
//
// A missing file is not an error; it yields no lines.
//
// # Formatting
//
// FormatLine turns a record such as
//
//	{"time":"2025-01-13T21:01:05Z","level":"WARN","msg":"snippet submit failed","label":"01-13-2025","error":"boom"}
//
// into
//
//	21:01:05 WARN  snippet submit failed  error=boom  label=01-13-2025
//
// ColorizeLine does the same with lipgloss colors for the time, level and
// attribute keys. Lines that are not JSON, such as a panic trace, pass
// through unchanged.
package logtail
