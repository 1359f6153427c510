// Package prefs keeps snipdesk's user preferences in
// ~/.config/snipdesk/prefs.toml.
//
// Preferences are cosmetic. A missing, unreadable or malformed file yields
// the defaults instead of an error, so Load never stops the app from starting.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/snipdesk/internal/config"
)

// Prefs holds the settings the UI writes back when the user changes them.
type Prefs struct {
	Theme       string `toml:"theme"`
	ShowPreview bool   `toml:"show_preview"`
}

const (
	defaultPrefsPath = "~/.config/snipdesk/prefs.toml"
	defaultTheme     = "Nightfox"
)

func Default() Prefs {
	return Prefs{Theme: defaultTheme, ShowPreview: true}
}

// DefaultPath is the unexpanded location used when no path is given.
func DefaultPath() string {
	return defaultPrefsPath
}

// Load returns the stored preferences, or the defaults.
func Load(path string) (Prefs, error) {
	file, err := locate(path)
	if err != nil {
		return Default(), nil
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return Default(), nil
	}

	p := Default()
	if err := toml.Unmarshal(data, &p); err != nil {
		return Default(), nil
	}
	if strings.TrimSpace(p.Theme) == "" {
		p.Theme = defaultTheme
	}
	return p, nil
}

// Save replaces the preferences file atomically via a sibling temp file.
func Save(path string, p Prefs) error {
	file, err := locate(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	tmp := file + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	if err := os.Rename(tmp, file); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace prefs: %w", err)
	}
	return nil
}

func locate(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		path = defaultPrefsPath
	}
	return config.ExpandPath(path)
}
