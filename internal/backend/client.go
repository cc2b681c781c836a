package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/timesheet-core-go/internal/config"
	"github.com/cmlabs-hris/timesheet-core-go/internal/domain/auth"
)

// TokenSource supplies the bearer token attached to outgoing requests. An
// empty token means the request goes out unauthenticated.
type TokenSource interface {
	Token() string
}

// Client is a thin typed wrapper over the remote timesheet backend's HTTP
// API. It owns serialization, auth headers and error mapping; the services
// own when and why each call happens.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	tokens         TokenSource
	onUnauthorized func()
	logger         *slog.Logger
}

func NewClient(cfg config.BackendConfig, tokens TokenSource, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		tokens:     tokens,
		logger:     logger,
	}
}

// OnUnauthorized registers a callback invoked whenever the backend rejects
// the session token. Set once during wiring, before any request is made.
func (c *Client) OnUnauthorized(fn func()) {
	c.onUnauthorized = fn
}

// APIError represents a non-2xx response from the backend
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend API error [%d]: %s", e.StatusCode, e.Message)
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	data, _, err := c.doRaw(ctx, method, path, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

// doRaw issues a request and returns the raw response body and content type.
// 401 and 403 invalidate the session via the registered callback and map to
// auth.ErrUnauthorized; other non-2xx statuses map to *APIError.
func (c *Client) doRaw(ctx context.Context, method, path string, body any) ([]byte, string, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, "", fmt.Errorf("encode %s %s request: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, "", fmt.Errorf("build %s %s request: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("read %s %s response: %w", method, path, err)
	}

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return nil, "", auth.ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(data, resp.Status),
		}
	}

	return data, resp.Header.Get("Content-Type"), nil
}

func errorMessage(body []byte, fallback string) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return fallback
}
