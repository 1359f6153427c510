// Package preview renders snippet markdown into sanitized HTML and turns that
// HTML into plain terminal text for the preview pane.
package preview

import (
	"bytes"
	"html"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// Markdown converts GitHub-flavoured markdown and strips anything the UGC
// policy does not allow. The zero value is not usable; call New.
type Markdown struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

// New returns a Markdown renderer. It is safe for concurrent use.
func New() *Markdown {
	return &Markdown{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(
				gmhtml.WithHardWraps(),
			),
		),
		policy: bluemonday.UGCPolicy(),
	}
}

// Render returns sanitized HTML for text. Conversion failures fall back to
// the escaped source.
func (m *Markdown) Render(text string) string {
	var buf bytes.Buffer
	if err := m.md.Convert([]byte(text), &buf); err != nil {
		return html.EscapeString(text)
	}
	return m.policy.Sanitize(buf.String())
}
