package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/planify-web/pkg/config"
	"github.com/noah-isme/planify-web/pkg/middleware/requestid"
)

const maxErrorBody = 4 << 10

// Observer receives timing for every backend call.
type Observer interface {
	ObserveBackendCall(method, route string, status int, duration time.Duration)
}

// StatusError is returned for non-2xx backend responses.
type StatusError struct {
	Method string
	Path   string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: backend returned %d %s", e.Method, e.Path, e.Status, http.StatusText(e.Status))
}

// StatusOf extracts the backend status from an error, or 0 for transport failures.
func StatusOf(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status
	}
	return 0
}

type tokenKey struct{}

// WithToken attaches the viewer's bearer token to outgoing backend calls.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

func tokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

// Client is a JSON client for the Planify REST backend.
type Client struct {
	baseURL  string
	http     *http.Client
	logger   *zap.Logger
	observer Observer
}

// NewClient builds a backend client.
func NewClient(cfg config.BackendConfig, logger *zap.Logger, observer Observer) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		http:     &http.Client{Timeout: timeout},
		logger:   logger,
		observer: observer,
	}
}

// Get issues a GET and decodes the JSON body into dest.
func (c *Client) Get(ctx context.Context, path string, query url.Values, dest interface{}) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, dest)
}

// Post sends body as JSON and decodes the response into dest when non-nil.
func (c *Client) Post(ctx context.Context, path string, body, dest interface{}) error {
	return c.Do(ctx, http.MethodPost, path, nil, body, dest)
}

// Put sends body as JSON.
func (c *Client) Put(ctx context.Context, path string, body, dest interface{}) error {
	return c.Do(ctx, http.MethodPut, path, nil, body, dest)
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, path string, dest interface{}) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil, dest)
}

// Do performs a backend call, forwarding the viewer token and request id found on ctx.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, dest interface{}) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := tokenFrom(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if id := requestid.FromContext(ctx); id != "" {
		req.Header.Set(requestid.HeaderKey, id)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	if c.observer != nil {
		c.observer.ObserveBackendCall(method, routeLabel(path), status, time.Since(start))
	}
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.Sugar().Debugw("backend error response", "method", method, "path", path, "status", resp.StatusCode)
		return &StatusError{Method: method, Path: path, Status: resp.StatusCode, Body: string(raw)}
	}

	if dest == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

// routeLabel collapses numeric path segments so metrics stay low-cardinality.
func routeLabel(path string) string {
	parts := strings.Split(path, "/")
	for i, part := range parts {
		if part == "" {
			continue
		}
		if strings.Trim(part, "0123456789") == "" {
			parts[i] = ":id"
		}
	}
	return strings.Join(parts, "/")
}
