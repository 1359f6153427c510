package preview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	nethtml "golang.org/x/net/html"
)

// Lines renders an HTML fragment as wrapped terminal lines. Block elements
// are separated by a blank line; list items get a bullet.
func Lines(fragment string, width int) []string {
	if width < 10 {
		width = 10
	}
	nodes, err := nethtml.ParseFragment(strings.NewReader(fragment), &nethtml.Node{
		Type: nethtml.ElementNode,
		Data: "div",
	})
	if err != nil {
		return wrap(fragment, width)
	}
	w := &textWriter{width: width}
	for _, n := range nodes {
		w.node(n, 0)
	}
	w.flush()
	return trimBlank(w.lines)
}

type textWriter struct {
	width  int
	inline strings.Builder
	lines  []string
	prefix string
}

func (w *textWriter) node(n *nethtml.Node, depth int) {
	switch n.Type {
	case nethtml.TextNode:
		w.inline.WriteString(n.Data)
		return
	case nethtml.ElementNode:
	default:
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			w.node(c, depth)
		}
		return
	}

	switch strings.ToLower(n.Data) {
	case "script", "style":
		return
	case "br":
		w.flushLine()
		return
	case "h1", "h2", "h3", "h4", "h5", "h6":
		w.block()
		w.inline.WriteString(strings.Repeat("#", int(n.Data[1]-'0')) + " ")
		w.children(n, depth)
		w.block()
	case "pre":
		w.block()
		for _, line := range strings.Split(strings.TrimRight(rawText(n), "\n"), "\n") {
			w.lines = append(w.lines, "    "+line)
		}
		w.blank()
	case "li":
		w.flushLine()
		w.prefix = strings.Repeat("  ", max(depth-1, 0)) + "• "
		w.children(n, depth)
		w.flushLine()
		w.prefix = ""
	case "ul", "ol":
		w.block()
		w.children(n, depth+1)
		w.blank()
	case "p", "div", "blockquote", "table", "tr":
		w.block()
		w.children(n, depth)
		w.block()
	case "img":
		if alt := attr(n, "alt"); alt != "" {
			w.inline.WriteString("[image: " + alt + "]")
		}
	default:
		w.children(n, depth)
	}
}

func (w *textWriter) children(n *nethtml.Node, depth int) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.node(c, depth)
	}
}

func (w *textWriter) flushLine() {
	text := strings.Join(strings.Fields(w.inline.String()), " ")
	w.inline.Reset()
	if text == "" {
		return
	}
	prefix := w.prefix
	w.prefix = ""
	for i, line := range wrap(text, w.width-len([]rune(prefix))) {
		if i == 0 {
			w.lines = append(w.lines, prefix+line)
			continue
		}
		w.lines = append(w.lines, strings.Repeat(" ", len([]rune(prefix)))+line)
	}
}

// block ends the current paragraph.
func (w *textWriter) block() {
	w.flushLine()
	w.blank()
}

func (w *textWriter) blank() {
	if len(w.lines) > 0 && w.lines[len(w.lines)-1] != "" {
		w.lines = append(w.lines, "")
	}
}

func (w *textWriter) flush() { w.flushLine() }

func wrap(text string, width int) []string {
	if width < 1 {
		width = 1
	}
	out := lipgloss.NewStyle().Width(width).Render(text)
	lines := strings.Split(out, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return lines
}

func rawText(n *nethtml.Node) string {
	var b strings.Builder
	var walk func(*nethtml.Node)
	walk = func(n *nethtml.Node) {
		if n.Type == nethtml.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func attr(n *nethtml.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func trimBlank(lines []string) []string {
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	return lines
}
