package config

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds what snipdesk needs to reach a snippet server.
type Config struct {
	BaseURL         string
	User            string
	SnippetPath     string
	AdminPath       string
	AdminConvention string
	RequestTimeout  time.Duration
	LogFile         string
	LogLevel        string
}

const (
	defaultConfigPath     = "~/.config/snipdesk/config.toml"
	defaultBaseURL        = "http://127.0.0.1:8080"
	defaultSnippetPath    = "/"
	defaultAdminPath      = "/admin/manage_users"
	defaultConvention     = "query"
	defaultTimeoutSeconds = 10
	defaultLogFile        = "~/.local/state/snipdesk/snipdesk.log"
	defaultLogLevel       = "info"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		BaseURL:         defaultBaseURL,
		SnippetPath:     defaultSnippetPath,
		AdminPath:       defaultAdminPath,
		AdminConvention: defaultConvention,
		RequestTimeout:  defaultTimeoutSeconds * time.Second,
		LogFile:         mustExpand(defaultLogFile),
		LogLevel:        defaultLogLevel,
	}
}

// Load locates and parses the snipdesk config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		BaseURL         string `toml:"base_url"`
		User            string `toml:"user"`
		SnippetPath     string `toml:"snippet_path"`
		AdminPath       string `toml:"admin_path"`
		AdminConvention string `toml:"admin_convention"`
		TimeoutSeconds  int    `toml:"request_timeout_seconds"`
		LogFile         string `toml:"log_file"`
		LogLevel        string `toml:"log_level"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.BaseURL = orDefault(raw.BaseURL, defaultBaseURL)
	cfg.User = strings.TrimSpace(raw.User)
	cfg.SnippetPath = orDefault(raw.SnippetPath, defaultSnippetPath)
	cfg.AdminPath = orDefault(raw.AdminPath, defaultAdminPath)
	cfg.AdminConvention = strings.ToLower(orDefault(raw.AdminConvention, defaultConvention))
	if raw.TimeoutSeconds > 0 {
		cfg.RequestTimeout = time.Duration(raw.TimeoutSeconds) * time.Second
	}
	cfg.LogFile = mustExpand(orDefault(raw.LogFile, defaultLogFile))
	cfg.LogLevel = strings.ToLower(orDefault(raw.LogLevel, defaultLogLevel))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the enumerated fields.
func (c Config) Validate() error {
	switch c.AdminConvention {
	case "query", "form":
	default:
		return fmt.Errorf("admin_convention %q: want query or form", c.AdminConvention)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level %q: want debug, info, warn or error", c.LogLevel)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive")
	}
	return nil
}

// SnippetPage returns the snippet page path, scoped to User when set.
func (c Config) SnippetPage() string {
	path := c.SnippetPath
	if path == "" {
		path = defaultSnippetPath
	}
	if c.User == "" {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + url.Values{"u": {c.User}}.Encode()
}

func orDefault(v, def string) string {
	if trimmed := strings.TrimSpace(v); trimmed != "" {
		return trimmed
	}
	return def
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return ExpandPath(defaultConfigPath)
	}
	return ExpandPath(path)
}

func mustExpand(path string) string {
	expanded, err := ExpandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

// ExpandPath expands a leading ~ and returns an absolute path.
func ExpandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
