// Package client is the Go SDK for the restaurant ordering API. It pairs a
// low-level HTTP Client with a Session that keeps the authenticated identity
// in memory and on disk, and a Guard that gates UI pages by role.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ErrNetwork wraps transport-level failures (connection refused, timeout) so
// callers can tell "backend unreachable" apart from "backend said no".
var ErrNetwork = errors.New("network unavailable")

// APIError is a structured rejection from the server.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// IsUnauthorized reports whether err is a 401 from the server.
func IsUnauthorized(err error) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Status == http.StatusUnauthorized
}

// Identity is the authenticated user as the server reports it.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// AuthResult is the server response to register and login.
type AuthResult struct {
	Identity
	Token string `json:"token"`
}

// MenuItem mirrors the server's catalog item.
type MenuItem struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Image       string    `json:"image"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MenuItemInput carries the fields for creating or updating a menu item.
type MenuItemInput struct {
	Name        string  `json:"name,omitempty"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price,omitempty"`
	Category    string  `json:"category,omitempty"`
	Image       string  `json:"image,omitempty"`
}

// Client talks to the REST backend. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client for the given base URL, e.g. "http://localhost:8080".
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// NewWithHTTPClient creates a Client using a caller-supplied http.Client.
func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	c := New(baseURL)
	c.http = hc
	return c
}

// Register creates a new customer account. It does not authenticate the
// session; callers log in afterwards.
func (c *Client) Register(ctx context.Context, username, email, password string) (*AuthResult, error) {
	body := map[string]string{"username": username, "email": email, "password": password}
	var out AuthResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", "", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login exchanges credentials for an identity and a bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	body := map[string]string{"email": email, "password": password}
	var out AuthResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", "", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListMenu fetches the public menu.
func (c *Client) ListMenu(ctx context.Context) ([]MenuItem, error) {
	var out []MenuItem
	if err := c.do(ctx, http.MethodGet, "/api/menu-items", "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetMenuItem fetches a single menu item.
func (c *Client) GetMenuItem(ctx context.Context, id string) (*MenuItem, error) {
	var out MenuItem
	if err := c.do(ctx, http.MethodGet, "/api/menu-items/"+id, "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateMenuItem adds a catalog item. Requires an admin token.
func (c *Client) CreateMenuItem(ctx context.Context, token string, input MenuItemInput) (*MenuItem, error) {
	var out MenuItem
	if err := c.do(ctx, http.MethodPost, "/api/menu-items", token, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateMenuItem modifies a catalog item. Requires an admin token.
func (c *Client) UpdateMenuItem(ctx context.Context, token, id string, input MenuItemInput) (*MenuItem, error) {
	var out MenuItem
	if err := c.do(ctx, http.MethodPut, "/api/menu-items/"+id, token, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteMenuItem removes a catalog item. Requires an admin token.
func (c *Client) DeleteMenuItem(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/menu-items/"+id, token, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var envelope struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&envelope)
		if envelope.Message == "" {
			envelope.Message = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: envelope.Message}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
