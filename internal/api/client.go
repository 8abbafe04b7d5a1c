// Package api implements the remote service client for the Parley forum API.
//
// Every call attaches the current bearer credential from the injected
// session source; any 401 response clears the session as a side effect,
// regardless of which call triggered it.
package api

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

	"golang.org/x/time/rate"

	"github.com/parleyapp/parley-client/internal/errors"
)

const (
	defaultTimeout = 30 * time.Second
	defaultRPS     = 10.0
	defaultBurst   = 20
)

// Source provides the session context the client reads and tears down.
// Passed at construction so the 401 reaction is an explicit callback
// contract rather than a reach into process-wide state.
type Source interface {
	// Token returns the current bearer credential, or empty when signed out.
	Token() string
	// Invalidate clears the session. Called on every authorization failure.
	Invalidate()
}

// Config holds client settings.
type Config struct {
	// BaseURL is the versioned base path, e.g. http://localhost:5000/api
	BaseURL string
	Timeout time.Duration
	// Outbound rate limit.
	RPS   float64
	Burst int
}

// Client issues authenticated requests against the forum API.
type Client struct {
	http    *http.Client
	baseURL string
	limiter *rate.Limiter
	session Source
	logger  *slog.Logger
}

// New creates a forum API client.
func New(cfg Config, session Source, logger *slog.Logger) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.RPS <= 0 {
		cfg.RPS = defaultRPS
	}
	if cfg.Burst <= 0 {
		cfg.Burst = defaultBurst
	}

	return &Client{
		http: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		limiter: rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Burst),
		session: session,
		logger:  logger,
	}
}

// errorBody is the failure payload shape the server uses.
type errorBody struct {
	Message string `json:"message"`
}

// do executes one request and decodes the response into out (when non-nil).
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.logger.Debug("api request", "method", method, "path", path)

	resp, err := c.http.Do(req)
	if err != nil {
		// No response at all: surface as a transport error with a generic message.
		return errors.ErrTransport.WithCause(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.ErrTransport.WithCause(err)
	}

	if resp.StatusCode >= 400 {
		if resp.StatusCode == http.StatusUnauthorized {
			// Process-wide reaction: the credential is gone no matter which
			// call noticed it first.
			c.session.Invalidate()
		}
		var eb errorBody
		_ = json.Unmarshal(respBody, &eb)
		return errors.FromResponse(resp.StatusCode, eb.Message)
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) patch(ctx context.Context, path string, body, out any) error {
	if body == nil {
		body = struct{}{}
	}
	return c.do(ctx, http.MethodPatch, path, body, out)
}

func (c *Client) delete(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodDelete, path, body, out)
}
