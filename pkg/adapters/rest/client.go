// Package rest implements the three backend client contracts over
// JSON/HTTP. One base client carries the transport concerns (retries,
// timeouts, status mapping); the service clients only know their routes
// and payloads.
package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/chronos-analytics/chronos-go/pkg/core"
)

const (
	defaultTimeout  = 30 * time.Second
	defaultRetryMax = 3
)

// Config tunes the transport shared by the three service clients.
type Config struct {
	// HTTPClient overrides the underlying transport, mainly for tests.
	HTTPClient *http.Client
	// RetryMax is the number of transport-level retries (default 3,
	// negative disables retrying).
	RetryMax int
	// Timeout bounds each attempt (default 30s).
	Timeout time.Duration
	// Logger receives request traces at Debug level.
	Logger *slog.Logger
}

type client struct {
	base string
	rc   *retryablehttp.Client
	log  *slog.Logger
}

func newClient(baseURL string, cfg Config) *client {
	rc := retryablehttp.NewClient()
	rc.Logger = nil
	rc.RetryMax = defaultRetryMax
	if cfg.RetryMax > 0 {
		rc.RetryMax = cfg.RetryMax
	} else if cfg.RetryMax < 0 {
		rc.RetryMax = 0
	}
	if cfg.HTTPClient != nil {
		rc.HTTPClient = cfg.HTTPClient
	}
	timeout := defaultTimeout
	if cfg.Timeout > 0 {
		timeout = cfg.Timeout
	}
	rc.HTTPClient.Timeout = timeout

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &client{
		base: strings.TrimRight(baseURL, "/"),
		rc:   rc,
		log:  logger,
	}
}

// do performs one JSON round trip. A nil out discards the response body;
// a nil body sends no payload. Backend failures are mapped onto the core
// error kinds so callers never see raw HTTP statuses.
func (c *client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return core.Validationf("encoding %s %s request: %v", method, path, err)
		}
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, u, payload)
	if err != nil {
		return core.Validationf("building %s %s request: %v", method, path, err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	c.log.Debug("backend call", "method", method, "url", u)
	resp, err := c.rc.Do(req)
	if err != nil {
		return core.WrapUnavailable(err, fmt.Sprintf("%s %s", method, path))
	}
	defer resp.Body.Close()

	if err := statusError(resp); err != nil {
		return err
	}
	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return core.Unavailablef("decoding %s %s response: %v", method, path, err)
	}
	return nil
}

// doRaw performs one round trip and returns the raw body, for blob
// downloads.
func (c *client) doRaw(ctx context.Context, method, path string) ([]byte, error) {
	req, err := retryablehttp.NewRequestWithContext(ctx, method, c.base+path, nil)
	if err != nil {
		return nil, core.Validationf("building %s %s request: %v", method, path, err)
	}
	resp, err := c.rc.Do(req)
	if err != nil {
		return nil, core.WrapUnavailable(err, fmt.Sprintf("%s %s", method, path))
	}
	defer resp.Body.Close()
	if err := statusError(resp); err != nil {
		return nil, err
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, core.Unavailablef("reading %s %s response: %v", method, path, err)
	}
	return data, nil
}

// statusError maps an HTTP failure status onto the core error family.
func statusError(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	detail := readDetail(resp)
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return core.NotFoundf("%s: %s", resp.Request.URL.Path, detail)
	case resp.StatusCode == http.StatusConflict:
		return core.Conflictf("%s: %s", resp.Request.URL.Path, detail)
	case resp.StatusCode == http.StatusBadRequest:
		return core.Validationf("%s: %s", resp.Request.URL.Path, detail)
	case resp.StatusCode >= 500:
		return core.Unavailablef("%s: backend returned %d: %s", resp.Request.URL.Path, resp.StatusCode, detail)
	default:
		return core.Unavailablef("%s: unexpected status %d: %s", resp.Request.URL.Path, resp.StatusCode, detail)
	}
}

func readDetail(resp *http.Response) string {
	data, err := io.ReadAll(io.LimitReader(resp.Body, 512))
	if err != nil || len(data) == 0 {
		return resp.Status
	}
	var wire struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(data, &wire) == nil && wire.Message != "" {
		return wire.Message
	}
	return strings.TrimSpace(string(data))
}
