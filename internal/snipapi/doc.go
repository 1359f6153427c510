// Package snipapi is the HTTP client for the weekly snippet server.
//
// # Overview
//
// The client covers the three calls snipdesk makes:
//
//   - FetchPage: GET an HTML page (the snippet list or the admin page)
//   - SubmitSnippet: POST a snippet form to its action URL
//   - ManageUser: GET the admin endpoint with a hide, unhide or delete command
//
// Client satisfies snippet.Submitter and admin.Performer, so the core
// packages never see HTTP.
//
// # Admin Conventions
//
// The server accepts an admin command in two shapes, and the client speaks
// either one:
//
//	query: /admin/manage_users?hide%20ann@example.com
//	form:  /admin/manage_users?hide+ann%40example.com=Hide
//
// The first is what the page script sends. The second is what a plain form
// submit of the button produces, with the button name as the key.
//
// # Errors
//
// Every non-2xx answer is a *RequestError carrying the status code. When the
// body is the server's {"status":..,"message":..} JSON, its message is kept.
// Transport failures are wrapped with fmt.Errorf. Nothing is retried here.
//
// # Request IDs
//
// Each request carries a fresh X-Request-Id so a failure in the log file can
// be matched to the server's log.
package snipapi
