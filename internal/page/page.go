// Package page discovers snippet forms and admin account rows in the HTML the
// snippet server renders.
package page

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	nethtml "golang.org/x/net/html"

	"github.com/five82/snipdesk/internal/admin"
	"github.com/five82/snipdesk/internal/snippet"
)

// ParseSnippetForms returns one descriptor per form nested inside an element
// with class "snippet", in document order. Form actions are resolved against
// base.
func ParseSnippetForms(r io.Reader, base *url.URL) ([]snippet.Descriptor, error) {
	doc, err := nethtml.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}
	var out []snippet.Descriptor
	var walk func(n *nethtml.Node, inSnippet bool, week string)
	walk = func(n *nethtml.Node, inSnippet bool, week string) {
		if n.Type == nethtml.ElementNode {
			if hasClass(n, "snippet") {
				inSnippet = true
			}
			if w := attr(n, "data-week"); w != "" {
				week = w
			}
			if inSnippet && n.Data == "form" {
				desc, err := formDescriptor(n, base, week)
				if err == nil {
					out = append(out, desc)
				}
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, inSnippet, week)
		}
	}
	walk(doc, false, "")
	return out, nil
}

func formDescriptor(form *nethtml.Node, base *url.URL, week string) (snippet.Descriptor, error) {
	endpoint, err := resolveAction(attr(form, "action"), base)
	if err != nil {
		return snippet.Descriptor{}, err
	}
	desc := snippet.Descriptor{Label: week, Endpoint: endpoint}
	sawTextarea := false

	var walk func(n *nethtml.Node)
	walk = func(n *nethtml.Node) {
		if n.Type == nethtml.ElementNode {
			switch n.Data {
			case "textarea":
				if !sawTextarea || attr(n, "name") == "snippet" {
					desc.Initial.Content = textContent(n)
					sawTextarea = true
				}
				return
			case "input":
				name := attr(n, "name")
				switch strings.ToLower(attr(n, "type")) {
				case "checkbox":
					_, checked := lookup(n, "checked")
					switch name {
					case "is_markdown":
						desc.Initial.IsMarkdown = checked
					case "private":
						desc.Initial.IsPrivate = checked
					}
				case "hidden":
					if name == "" {
						break
					}
					if desc.Extra == nil {
						desc.Extra = url.Values{}
					}
					desc.Extra.Add(name, attr(n, "value"))
					if name == "week" && desc.Label == "" {
						desc.Label = attr(n, "value")
					}
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(form)
	if desc.Label == "" {
		desc.Label = endpoint
	}
	return desc, nil
}

// ParseAccountRows returns one row per account that has a hide or delete
// button, keyed by the button's data-email and ordered by first appearance.
func ParseAccountRows(r io.Reader) ([]admin.Row, error) {
	doc, err := nethtml.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	index := map[string]int{}
	var rows []admin.Row
	rowFor := func(email string) *admin.Row {
		i, ok := index[email]
		if !ok {
			i = len(rows)
			index[email] = i
			rows = append(rows, admin.Row{Email: email})
		}
		return &rows[i]
	}

	var walk func(n *nethtml.Node)
	walk = func(n *nethtml.Node) {
		if n.Type == nethtml.ElementNode && (n.Data == "input" || n.Data == "button") {
			switch {
			case hasClass(n, "hide-account-button"):
				if email := buttonEmail(n); email != "" {
					rowFor(email).Hide = admin.NewToggleButton(email, toggleMode(n))
				}
			case hasClass(n, "delete-account-button"):
				if email := buttonEmail(n); email != "" {
					rowFor(email).Delete = admin.NewDeleteButton(email)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	for i := range rows {
		if rows[i].Hide == nil {
			rows[i].Hide = admin.NewToggleButton(rows[i].Email, admin.ModeVisible)
		}
		if rows[i].Delete == nil {
			rows[i].Delete = admin.NewDeleteButton(rows[i].Email)
		}
	}
	return rows, nil
}

func buttonEmail(n *nethtml.Node) string {
	if email := strings.TrimSpace(attr(n, "data-email")); email != "" {
		return email
	}
	if cmd, err := admin.ParseCommand(attr(n, "name")); err == nil {
		return cmd.Target
	}
	return ""
}

// toggleMode reads the confirmed mode from the button label, then from the
// command in its name.
func toggleMode(n *nethtml.Node) admin.Mode {
	switch strings.TrimSpace(attr(n, "value")) {
	case admin.LabelHide:
		return admin.ModeVisible
	case admin.LabelUnhide:
		return admin.ModeHidden
	}
	if cmd, err := admin.ParseCommand(attr(n, "name")); err == nil && cmd.Action == admin.ActionUnhide {
		return admin.ModeHidden
	}
	return admin.ModeVisible
}

func resolveAction(action string, base *url.URL) (string, error) {
	ref, err := url.Parse(strings.TrimSpace(action))
	if err != nil {
		return "", fmt.Errorf("parse form action %q: %w", action, err)
	}
	if base == nil {
		return ref.String(), nil
	}
	return base.ResolveReference(ref).String(), nil
}

func hasClass(n *nethtml.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func attr(n *nethtml.Node, key string) string {
	v, _ := lookup(n, key)
	return v
}

func lookup(n *nethtml.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func textContent(n *nethtml.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == nethtml.TextNode {
			b.WriteString(c.Data)
		}
	}
	return b.String()
}
