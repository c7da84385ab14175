package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"golang.org/x/time/rate"
)

const (
	userAgent = "learnlog/0.1"

	// deviceHeader carries the device identity on every request; the
	// server partitions all records by it.
	deviceHeader = "X-Device-Id"

	// Default request rate: generous for interactive use, but keeps a
	// large drain pass from hammering the server.
	defaultRatePerSec = 10
)

// Client is an HTTP client for the journal server API. It performs exactly
// one attempt per call — deferred retry is the pending queue's job, so a
// failed request is reported, not retried here.
type Client struct {
	baseURL    string
	httpClient *http.Client
	deviceID   string
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates an API client. baseURL is the server root without a
// trailing slash, e.g. "https://journal.example.com".
func NewClient(baseURL string, httpClient *http.Client, deviceID string, logger *slog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		deviceID:   deviceID,
		limiter:    rate.NewLimiter(rate.Limit(defaultRatePerSec), defaultRatePerSec),
		logger:     logger,
	}
}

// do executes one HTTP request and decodes a 2xx JSON response into out
// (skipped when out is nil or the response has no content). Non-2xx
// responses become *APIError; transport failures are returned wrapped.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("api: rate limit wait: %w", err)
	}

	var reqBody io.Reader

	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encoding %s %s body: %w", method, path, err)
		}

		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("api: creating request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set(deviceHeader, c.deviceID)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if sentinel := classifyStatus(resp.StatusCode); sentinel != nil {
		msg, readErr := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if readErr != nil {
			msg = []byte("(failed to read response body)")
		}

		c.logger.Debug("request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
		)

		return &APIError{StatusCode: resp.StatusCode, Message: string(msg), Err: sentinel}
	}

	c.logger.Debug("request succeeded",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
	)

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("api: decoding %s %s response: %w", method, path, err)
	}

	return nil
}

// Ping checks server reachability. Used by the connectivity prober; any
// response at all (even an error status) proves the network path works,
// so only transport failures count as unreachable.
func (c *Client) Ping(ctx context.Context) error {
	err := c.do(ctx, http.MethodGet, "/api/health", nil, nil)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			return nil
		}

		return err
	}

	return nil
}
