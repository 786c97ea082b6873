// Package apiclient talks to the hackathon REST backend.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// TokenSource yields the bearer token current at call time.
type TokenSource interface {
	Token(ctx context.Context) string
}

// TokenFunc adapts a function to TokenSource.
type TokenFunc func(ctx context.Context) string

func (f TokenFunc) Token(ctx context.Context) string { return f(ctx) }

// Client issues requests against one backend origin.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Tokens  TokenSource

	// OnUnauthorized runs for every 401 reply before the error is returned.
	OnUnauthorized func(ctx context.Context)
}

func New(baseURL string, timeout time.Duration, tokens TokenSource) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
		Tokens:  tokens,
	}
}

// Do sends body as JSON to path and decodes the reply into out. When auth is
// set the current token is attached as a bearer header.
func (c *Client) Do(ctx context.Context, method, path string, body, out any, auth bool) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth && c.Tokens != nil {
		if tok := c.Tokens.Token(ctx); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		slog.Warn("Backend unreachable", "method", method, "path", path, "error", err)
		return fmt.Errorf("%s %s: %w: %v", method, path, ErrNetworkUnavailable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: %w: %v", method, path, ErrNetworkUnavailable, err)
	}

	if resp.StatusCode >= 400 {
		return c.categorize(ctx, method, path, resp.StatusCode, raw)
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) categorize(ctx context.Context, method, path string, status int, raw []byte) error {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	_ = json.Unmarshal(raw, &payload)
	msg := payload.Message
	if msg == "" {
		msg = payload.Error
	}
	rejected := &ServerRejectedError{Status: status, Message: msg}

	switch status {
	case http.StatusUnauthorized:
		slog.Info("Backend rejected session", "method", method, "path", path, "message", msg)
		if c.OnUnauthorized != nil {
			c.OnUnauthorized(ctx)
		}
		return fmt.Errorf("%s %s: %w: %w", method, path, ErrUnauthorized, rejected)
	case http.StatusNotFound:
		return fmt.Errorf("%s %s: %w: %w", method, path, ErrNotFound, rejected)
	}

	slog.Warn("Backend rejected request", "method", method, "path", path, "status", status, "message", msg)
	return fmt.Errorf("%s %s: %w", method, path, rejected)
}
