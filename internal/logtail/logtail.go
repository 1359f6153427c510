package logtail

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns every line. A missing file yields no lines.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Entry is one decoded slog JSON record.
type Entry struct {
	Time  time.Time
	Level string
	Msg   string
	Attrs map[string]any
}

// Parse decodes a slog JSON line. ok is false for anything else.
func Parse(line string) (Entry, bool) {
	var raw map[string]any
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return Entry{}, false
	}
	var e Entry
	if s, ok := raw["time"].(string); ok {
		e.Time, _ = time.Parse(time.RFC3339Nano, s)
	}
	e.Level, _ = raw["level"].(string)
	e.Msg, _ = raw["msg"].(string)
	delete(raw, "time")
	delete(raw, "level")
	delete(raw, "msg")
	e.Attrs = raw
	return e, true
}

// FormatLine renders a slog JSON line as
//
//	15:04:05 WARN  snippet submit failed  error=boom label=01-13-2025
//
// with attributes in key order. Lines that are not JSON come back unchanged.
func FormatLine(line string) string {
	return formatLine(line, false)
}

// ColorizeLine is FormatLine with the level and attributes styled.
func ColorizeLine(line string) string {
	return formatLine(line, true)
}

// ColorizeLines applies ColorizeLine to each line.
func ColorizeLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = ColorizeLine(l)
	}
	return out
}

var (
	timeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))
	keyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#6495ED"))
	levelStyle = map[string]lipgloss.Style{
		"DEBUG": lipgloss.NewStyle().Foreground(lipgloss.Color("#63cdcf")).Bold(true),
		"INFO":  lipgloss.NewStyle().Foreground(lipgloss.Color("#81b29a")).Bold(true),
		"WARN":  lipgloss.NewStyle().Foreground(lipgloss.Color("#dbc074")).Bold(true),
		"ERROR": lipgloss.NewStyle().Foreground(lipgloss.Color("#c94f6d")).Bold(true),
	}
)

func formatLine(line string, color bool) string {
	e, ok := Parse(line)
	if !ok {
		return line
	}

	paint := func(s lipgloss.Style, text string) string {
		if !color {
			return text
		}
		return s.Render(text)
	}

	var b strings.Builder
	if !e.Time.IsZero() {
		b.WriteString(paint(timeStyle, e.Time.Format("15:04:05")))
		b.WriteByte(' ')
	}
	level := fmt.Sprintf("%-5s", e.Level)
	if s, ok := levelStyle[e.Level]; ok {
		level = paint(s, level)
	}
	b.WriteString(level)
	b.WriteByte(' ')
	b.WriteString(e.Msg)

	for _, k := range slices.Sorted(maps.Keys(e.Attrs)) {
		b.WriteString("  ")
		b.WriteString(paint(keyStyle, k))
		b.WriteByte('=')
		b.WriteString(formatValue(e.Attrs[k]))
	}
	return b.String()
}

func formatValue(v any) string {
	switch v := v.(type) {
	case string:
		if strings.ContainsAny(v, " \t\"=") {
			return fmt.Sprintf("%q", v)
		}
		return v
	case nil:
		return "null"
	case map[string]any, []any:
		data, _ := json.Marshal(v)
		return string(data)
	default:
		return fmt.Sprint(v)
	}
}
