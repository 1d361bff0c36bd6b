package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go-user-enrichment/internal/model"
)

// ErrNotFound is returned by GetUser when the API answers 404
var ErrNotFound = errors.New("user not found")

// StatusError is returned for any other non-2xx API answer
type StatusError struct {
	Method string
	URL    string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s -> %d | %s", e.Method, e.URL, e.Code, e.Body)
}

// Client talks to the users REST API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a users API client with the given base URL and timeout
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// GetUser fetches a single user by ID
func (c *Client) GetUser(ctx context.Context, id int) (*model.User, error) {
	url := fmt.Sprintf("%s/usuario/%d", c.baseURL, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s failed: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Method: http.MethodGet, URL: url, Code: resp.StatusCode, Body: snippet(resp.Body)}
	}

	var user model.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("failed to decode user %d: %w", id, err)
	}
	return &user, nil
}

// UpdateUser persists the user back via PUT
func (c *Client) UpdateUser(ctx context.Context, user *model.User) error {
	url := fmt.Sprintf("%s/usuario/%d", c.baseURL, user.ID)

	payload, err := json.Marshal(user)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("PUT %s failed: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Method: http.MethodPut, URL: url, Code: resp.StatusCode, Body: snippet(resp.Body)}
	}
	return nil
}

// snippet reads at most 200 bytes of an error body for logging
func snippet(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, 200))
	return string(b)
}
