// Package rest implements the gateway ports against the remote leave
// backend's JSON API. All business rules (balance computation, approval
// routing, escalation, holiday generation) run on the backend; this
// adapter only translates calls and surfaces the backend's error messages
// verbatim.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/leavedesk/leavedesk/internal/apperrors"
)

// TokenProvider yields the bearer token for one outgoing request. It
// typically forwards the caller's token taken from the request context.
type TokenProvider func(ctx context.Context) (string, error)

// StaticToken returns a provider that always sends the same token, used
// for the service account in tests and background jobs.
func StaticToken(token string) TokenProvider {
	return func(context.Context) (string, error) { return token, nil }
}

// Client is the shared HTTP plumbing of the gateway adapters.
type Client struct {
	baseURL string
	http    *http.Client
	token   TokenProvider
	logger  *slog.Logger
}

// NewClient builds the shared client. The timeout bounds every gateway
// round trip; view handlers surface the failure rather than hang.
func NewClient(baseURL string, token TokenProvider, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		token:   token,
		logger:  logger,
	}
}

// errorBody is the backend's uniform error envelope.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// do performs one JSON round trip. A nil out discards the response body.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding %s %s request: %w", method, path, err)
		}
		body = bytes.NewReader(payload)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("building %s %s request: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	token, err := c.token(ctx)
	if err != nil {
		return fmt.Errorf("resolving gateway token: %w", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.ErrorContext(ctx, "gateway request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.String("error", err.Error()))
		return fmt.Errorf("%s %s: %w: %w", method, path, apperrors.ErrGatewayUnavailable, err)
	}
	defer resp.Body.Close()

	c.logger.DebugContext(ctx, "gateway request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)))

	if resp.StatusCode >= 400 {
		return c.decodeError(resp, method, path)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s %s response: %w", method, path, err)
	}
	return nil
}

func (c *Client) decodeError(resp *http.Response, method, path string) error {
	var envelope errorBody
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	_ = json.Unmarshal(raw, &envelope)

	message := envelope.Message
	if message == "" {
		message = envelope.Error
	}
	gwErr := &apperrors.GatewayError{StatusCode: resp.StatusCode, Message: message}
	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s %s: %w: %w", method, path, apperrors.ErrNotFound, gwErr)
	}
	return fmt.Errorf("%s %s: %w", method, path, gwErr)
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, in, out)
}

func (c *Client) put(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, in, out)
}

func (c *Client) delete(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodDelete, path, query, nil, out)
}
