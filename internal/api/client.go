// Package api is a thin HTTP client for the ProManager REST backend.
// It handles Bearer token authentication and JSON (de)serialization;
// business rules stay server-side and errors are terminal for the
// triggering operation (callers may re-trigger manually).
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

// AuthError indicates that the token is missing, invalid, or expired.
// Callers route the user back to the login screen when they see one.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentification refusée: %s", e.Message)
}

// IsAuthError reports whether err (or any error in its chain) is an AuthError.
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// Client is a thin HTTP client for the ProManager API. The bearer token
// is set by the auth flow after login and cleared on logout; reads are
// safe from concurrent fetches.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.RWMutex
	token string
}

// NewClient creates an API client. baseURL is the backend root
// (e.g. http://127.0.0.1:8000), without the /api suffix.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/") + "/api",
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SetToken installs the bearer token used on subsequent requests.
// An empty token reverts the client to unauthenticated calls.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// Get performs an HTTP GET request and unmarshals the JSON response.
func (c *Client) Get(ctx context.Context, path string, result interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, result)
}

// Post performs an HTTP POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, result interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, result)
}

// Put performs an HTTP PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, result interface{}) error {
	return c.do(ctx, http.MethodPut, path, body, result)
}

// Patch performs an HTTP PATCH request with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body, result interface{}) error {
	return c.do(ctx, http.MethodPatch, path, body, result)
}

// Delete performs an HTTP DELETE request.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// errorResponse covers the error shapes the backend produces: DRF's
// {"detail": ...} and the API's own {"error": ...}.
type errorResponse struct {
	Detail string `json:"detail"`
	Error  string `json:"error"`
}

func (e errorResponse) message() string {
	if e.Error != "" {
		return e.Error
	}
	return e.Detail
}

// doRaw sends a pre-encoded body (e.g. multipart form data) with the
// given content type and decodes the JSON response like do.
func (c *Client) doRaw(
	ctx context.Context,
	method string,
	path string,
	contentType string,
	body io.Reader,
	result interface{},
) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if token := c.bearer(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request %s %s: %w", method, path, err)
	}
	return c.decode(resp, method, path, result)
}

// do builds the request, attaches auth, and decodes the response.
func (c *Client) do(
	ctx context.Context,
	method string,
	path string,
	body interface{},
	result interface{},
) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	if token := c.bearer(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request %s %s: %w", method, path, err)
	}
	return c.decode(resp, method, path, result)
}

// decode consumes the response body, mapping 401 to AuthError and
// non-2xx statuses to errors carrying the backend's message.
func (c *Client) decode(resp *http.Response, method, path string, result interface{}) error {
	respBody, readErr := io.ReadAll(resp.Body)
	resp.Body.Close()
	if readErr != nil {
		return fmt.Errorf("reading response body: %w", readErr)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		var apiErr errorResponse
		msg := "jeton invalide ou expiré"
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.message() != "" {
			msg = apiErr.message()
		}
		return &AuthError{Message: msg}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr errorResponse
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.message() != "" {
			return fmt.Errorf(
				"api error (%d) on %s %s: %s",
				resp.StatusCode, method, path, apiErr.message(),
			)
		}
		return fmt.Errorf(
			"unexpected status %d on %s %s: %s",
			resp.StatusCode, method, path, string(respBody),
		)
	}

	// No content to parse (e.g. 204 on delete).
	if result == nil || resp.StatusCode == http.StatusNoContent || len(respBody) == 0 {
		return nil
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf(
			"unmarshaling response from %s %s: %w",
			method, path, err,
		)
	}

	return nil
}
