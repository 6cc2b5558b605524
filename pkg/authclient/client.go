// Package authclient is a small HTTP client for the admin console's
// session-based authentication flow: scrape the CSRF token from the login
// form, submit credentials, and probe the dashboard to learn who is signed
// in. Cookies are carried in an in-process jar, so one Client behaves like
// one browser.
package authclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"regexp"
	"strings"
	"time"
)

const defaultTimeout = 10 * time.Second

var csrfTokenPattern = regexp.MustCompile(`name="_csrf_token"\s+value="([^"]+)"`)

// User is the authenticated identity reported by the server.
type User struct {
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

// Client drives the login, logout and auth-check flows against one server.
// It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. The provided client's
// jar is overwritten so session cookies still round-trip.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// New creates a Client for the server at baseURL (scheme and host, no
// trailing slash required).
func New(baseURL string, opts ...Option) (*Client, error) {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("cookie jar: %w", err)
	}
	c.http.Jar = jar
	return c, nil
}

// CheckAuth probes the admin dashboard and returns the signed-in user, or
// nil when the session is missing, expired, or lacks admin access.
func (c *Client) CheckAuth(ctx context.Context) (*User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/admin", nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("check auth: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}

	var payload struct {
		Title string `json:"title"`
		User  *User  `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode dashboard: %w", err)
	}
	if payload.Title != "Admin Dashboard" || payload.User == nil {
		return nil, nil
	}
	return payload.User, nil
}

// Login fetches the login form, extracts the CSRF token and posts the
// credentials. It returns true when the server accepted them; the session
// cookie lands in the client's jar as a side effect.
func (c *Client) Login(ctx context.Context, email, password string) (bool, error) {
	token, err := c.csrfToken(ctx)
	if err != nil {
		return false, err
	}

	form := url.Values{
		"email":       {email},
		"password":    {password},
		"_csrf_token": {token},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/login", strings.NewReader(form.Encode()))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("login: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	// The redirect to /admin is followed transparently, so success reads
	// as 2xx; bad credentials surface as 401.
	return resp.StatusCode >= 200 && resp.StatusCode < 300, nil
}

// Logout tears down the server-side session. Failures are swallowed: the
// local jar is the caller's source of truth and a dead server should not
// block signing out.
func (c *Client) Logout(ctx context.Context) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/logout", nil)
	if err != nil {
		return
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
}

// csrfToken fetches the login form and scrapes the hidden token field.
func (c *Client) csrfToken(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/login", nil)
	if err != nil {
		return "", err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch login form: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read login form: %w", err)
	}

	match := csrfTokenPattern.FindSubmatch(body)
	if match == nil {
		return "", nil
	}
	return string(match[1]), nil
}
