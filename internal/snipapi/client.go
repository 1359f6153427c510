package snipapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/five82/snipdesk/internal/admin"
	"github.com/five82/snipdesk/internal/snippet"
)

// Convention selects how admin commands are put on the wire.
type Convention string

const (
	// ConventionQuery sends the command as the bare query, "?hide%20<email>".
	ConventionQuery Convention = "query"
	// ConventionForm sends the submit-button pair, "?hide+<email>=Hide".
	ConventionForm Convention = "form"
)

// Ensure Client implements the interfaces the core consumes.
var (
	_ snippet.Submitter = (*Client)(nil)
	_ admin.Performer   = (*Client)(nil)
)

// Client talks to the snippet server.
type Client struct {
	baseURL    *url.URL
	http       *http.Client
	userAgent  string
	adminPath  string
	convention Convention
}

// Options configures NewClient. Zero values take defaults.
type Options struct {
	Timeout    time.Duration
	AdminPath  string
	Convention Convention
	UserAgent  string
}

const (
	defaultBaseURL   = "127.0.0.1:8080"
	defaultUserAgent = "snipdesk/0.1"
	defaultAdminPath = "/admin/manage_users"
	requestTimeout   = 10 * time.Second
	maxErrorBody     = 4 << 10
)

// NewClient builds a Client for the server at baseURL.
func NewClient(baseURL string, opts Options) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if opts.Timeout <= 0 {
		opts.Timeout = requestTimeout
	}
	if strings.TrimSpace(opts.AdminPath) == "" {
		opts.AdminPath = defaultAdminPath
	}
	if opts.Convention == "" {
		opts.Convention = ConventionQuery
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	return &Client{
		baseURL:    base,
		http:       &http.Client{Timeout: opts.Timeout},
		userAgent:  opts.UserAgent,
		adminPath:  opts.AdminPath,
		convention: opts.Convention,
	}, nil
}

// BaseURL returns a copy of the server root.
func (c *Client) BaseURL() *url.URL {
	u := *c.baseURL
	return &u
}

// Resolve turns a page path (with optional query) into an absolute URL.
func (c *Client) Resolve(path string) (*url.URL, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("parse path %q: %w", path, err)
	}
	return c.baseURL.ResolveReference(ref), nil
}

// FetchPage returns the body of an HTML page on the server.
func (c *Client) FetchPage(ctx context.Context, path string) ([]byte, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	u, err := c.Resolve(path)
	if err != nil {
		return nil, err
	}
	req, err := c.newRequest(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/html")
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if err := checkStatus(req, resp); err != nil {
		return nil, err
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read page: %w", err)
	}
	return body, nil
}

// Ping checks that the server answers path with a 2xx.
func (c *Client) Ping(ctx context.Context, path string) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	u, err := c.Resolve(path)
	if err != nil {
		return err
	}
	req, err := c.newRequest(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	return c.send(req)
}

// SubmitSnippet posts a snippet form to its endpoint. Any non-2xx answer is
// a failure.
func (c *Client) SubmitSnippet(ctx context.Context, endpoint string, form url.Values) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	u, err := c.Resolve(endpoint)
	if err != nil {
		return err
	}
	req, err := c.newRequest(ctx, http.MethodPost, u.String(), strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	return c.send(req)
}

// ManageUser sends one admin command using the configured convention.
func (c *Client) ManageUser(ctx context.Context, cmd admin.Command) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	u, err := c.Resolve(c.adminPath)
	if err != nil {
		return err
	}
	u.RawQuery = adminQuery(cmd, c.convention)
	req, err := c.newRequest(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	return c.send(req)
}

func adminQuery(cmd admin.Command, conv Convention) string {
	if conv == ConventionForm {
		return url.Values{cmd.String(): {buttonValue(cmd.Action)}}.Encode()
	}
	return strings.ReplaceAll(url.QueryEscape(cmd.String()), "+", "%20")
}

func buttonValue(a admin.Action) string {
	switch a {
	case admin.ActionHide:
		return admin.LabelHide
	case admin.ActionUnhide:
		return admin.LabelUnhide
	default:
		return admin.LabelDelete
	}
}

func (c *Client) newRequest(ctx context.Context, method, target string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-Id", uuid.NewString())
	return req, nil
}

func (c *Client) send(req *http.Request) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if err := checkStatus(req, resp); err != nil {
		return err
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
	return nil
}

// serverStatus is the JSON body the snippet server answers with.
type serverStatus struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func checkStatus(req *http.Request, resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	rerr := &RequestError{
		Method:     req.Method,
		Path:       req.URL.Path,
		StatusCode: resp.StatusCode,
		RequestID:  req.Header.Get("X-Request-Id"),
	}
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var payload serverStatus
	if json.Unmarshal(body, &payload) == nil {
		rerr.Message = strings.TrimSpace(payload.Message)
	}
	return rerr
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse base_url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse base_url %q: missing host", raw)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
