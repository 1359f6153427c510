package page

import (
	"net/url"
	"strings"
	"testing"

	"github.com/five82/snipdesk/internal/admin"
)

const snippetPage = `<html><body>
<div class="snippet" data-week="01-06-2025">
  <form action="/update_snippet" method="post">
    <input type="hidden" name="week" value="01-06-2025">
    <input type="hidden" name="u" value="ann@example.com">
    <textarea name="snippet">shipped &lt;things&gt;</textarea>
    <input type="checkbox" name="is_markdown" value="True" checked>
    <input type="checkbox" name="private" value="True">
    <input type="submit" class="save-button" value="Save">
  </form>
</div>
<form action="/elsewhere"><textarea name="snippet">not a snippet</textarea></form>
<div class="snippet private-snippet">
  <form action="update_snippet">
    <input type="hidden" name="week" value="01-13-2025">
    <textarea name="snippet"></textarea>
    <input type="checkbox" name="private" value="True" checked>
  </form>
</div>
</body></html>`

func TestParseSnippetForms(t *testing.T) {
	base, _ := url.Parse("http://snips.test/weekly")
	descs, err := ParseSnippetForms(strings.NewReader(snippetPage), base)
	if err != nil {
		t.Fatalf("ParseSnippetForms returned error: %v", err)
	}
	if len(descs) != 2 {
		t.Fatalf("len = %d, want 2", len(descs))
	}

	first := descs[0]
	if first.Endpoint != "http://snips.test/update_snippet" {
		t.Fatalf("Endpoint = %q", first.Endpoint)
	}
	if first.Label != "01-06-2025" {
		t.Fatalf("Label = %q", first.Label)
	}
	if first.Initial.Content != "shipped <things>" {
		t.Fatalf("Content = %q", first.Initial.Content)
	}
	if !first.Initial.IsMarkdown || first.Initial.IsPrivate {
		t.Fatalf("flags = %+v, want markdown only", first.Initial)
	}
	if got := first.Extra.Get("u"); got != "ann@example.com" {
		t.Fatalf("Extra u = %q", got)
	}

	second := descs[1]
	if second.Label != "01-13-2025" {
		t.Fatalf("second Label = %q, want from hidden week", second.Label)
	}
	if second.Initial.Content != "" || !second.Initial.IsPrivate {
		t.Fatalf("second Initial = %+v", second.Initial)
	}
	if second.Endpoint != "http://snips.test/update_snippet" {
		t.Fatalf("second Endpoint = %q", second.Endpoint)
	}
}

const adminPage = `<table>
<tr><td>ann@example.com</td>
  <td><input type="submit" class="hide-account-button" data-email="ann@example.com" name="hide ann@example.com" value="Hide"></td>
  <td><input type="submit" class="delete-account-button" data-email="ann@example.com" name="delete ann@example.com" value="Delete"></td></tr>
<tr><td>bob@example.com</td>
  <td><input type="submit" class="hide-account-button" data-email="bob@example.com" name="unhide bob@example.com" value="Unhide"></td></tr>
<tr><td>cy@example.com</td>
  <td><input type="submit" class="hide-account-button" name="unhide cy@example.com" value="Re-unhide (unhiding failed!)"></td></tr>
</table>`

func TestParseAccountRows(t *testing.T) {
	rows, err := ParseAccountRows(strings.NewReader(adminPage))
	if err != nil {
		t.Fatalf("ParseAccountRows returned error: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("len = %d, want 3", len(rows))
	}
	tests := []struct {
		email string
		mode  admin.Mode
	}{
		{"ann@example.com", admin.ModeVisible},
		{"bob@example.com", admin.ModeHidden},
		{"cy@example.com", admin.ModeHidden},
	}
	for i, tt := range tests {
		if rows[i].Email != tt.email {
			t.Fatalf("rows[%d].Email = %q, want %q", i, rows[i].Email, tt.email)
		}
		if rows[i].Hide.Mode() != tt.mode {
			t.Fatalf("rows[%d] mode = %v, want %v", i, rows[i].Hide.Mode(), tt.mode)
		}
		if rows[i].Delete == nil {
			t.Fatalf("rows[%d].Delete is nil", i)
		}
	}
}
