package transport

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

	"github.com/wopr-network/wopr-go/core"
)

// Dispatcher sends requests to the gateway and normalizes their outcome.
// Each call performs exactly one HTTP exchange: no retries, no caching.
// Dispatcher is immutable after New and safe for concurrent use.
type Dispatcher struct {
	apiKey     core.Secret
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	headers    http.Header
	userAgent  string
	telemetry  core.TelemetryHook
	logger     *slog.Logger
}

// New creates a Dispatcher for the gateway at baseURL. One trailing slash is
// stripped from baseURL; paths passed to the send methods start with "/".
func New(apiKey, baseURL string, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		apiKey:     core.NewSecret(apiKey),
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: http.DefaultClient,
		telemetry:  core.NoopTelemetryHook{},
		logger:     slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(d)
	}

	if d.timeout > 0 {
		c := *d.httpClient
		c.Timeout = d.timeout
		d.httpClient = &c
	}

	return d
}

// BaseURL returns the normalized base URL.
func (d *Dispatcher) BaseURL() string {
	return d.baseURL
}

// PostJSON sends body as JSON and decodes the JSON response into out.
// If out is nil the response body is discarded.
func (d *Dispatcher) PostJSON(ctx context.Context, path string, body, out any) error {
	req, err := d.newJSONRequest(ctx, path, body)
	if err != nil {
		return err
	}
	resp, err := d.do(req, path)
	if err != nil {
		return err
	}
	return decodeJSON(resp, out)
}

// PostJSONStream sends body as JSON and returns the open response for a
// stream decoder to consume. The caller owns the response body.
func (d *Dispatcher) PostJSONStream(ctx context.Context, path string, body any) (*http.Response, error) {
	req, err := d.newJSONRequest(ctx, path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "text/event-stream")
	return d.do(req, path)
}

// PostJSONBinary sends body as JSON and returns the open response without
// parsing it, e.g. for generated audio. The caller owns the response body.
func (d *Dispatcher) PostJSONBinary(ctx context.Context, path string, body any) (*http.Response, error) {
	req, err := d.newJSONRequest(ctx, path, body)
	if err != nil {
		return nil, err
	}
	return d.do(req, path)
}

// PostForm sends form as multipart/form-data and decodes the JSON response
// into out.
func (d *Dispatcher) PostForm(ctx context.Context, path string, form *Form, out any) error {
	if form == nil {
		form = NewForm()
	}
	buf, contentType, err := form.encode()
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL+path, buf)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := d.do(req, path)
	if err != nil {
		return err
	}
	return decodeJSON(resp, out)
}

// Get issues a GET and decodes the JSON response into out.
func (d *Dispatcher) Get(ctx context.Context, path string, out any) error {
	return d.sendEmpty(ctx, http.MethodGet, path, out)
}

// Delete issues a DELETE and decodes the JSON response into out.
func (d *Dispatcher) Delete(ctx context.Context, path string, out any) error {
	return d.sendEmpty(ctx, http.MethodDelete, path, out)
}

func (d *Dispatcher) sendEmpty(ctx context.Context, method, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, d.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := d.do(req, path)
	if err != nil {
		return err
	}
	return decodeJSON(resp, out)
}

func (d *Dispatcher) newJSONRequest(ctx context.Context, path string, body any) (*http.Request, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal request: %w", core.ErrEncode, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// do is the single exit point to the network. It authenticates the request,
// reports telemetry, and turns every non-2xx response into a classified
// error after consuming and closing its body.
func (d *Dispatcher) do(req *http.Request, path string) (*http.Response, error) {
	for key, values := range d.headers {
		if isReservedHeader(key) {
			continue
		}
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}
	if d.userAgent != "" {
		req.Header.Set("User-Agent", d.userAgent)
	}
	req.Header.Set("Authorization", d.apiKey.Bearer())
	path = routeOf(req.Context(), path)

	start := time.Now()
	d.telemetry.OnRequestStart(core.RequestStartEvent{
		Method: req.Method,
		Path:   path,
		Start:  start,
	})

	resp, err := d.httpClient.Do(req)
	if err != nil {
		err = fmt.Errorf("%w: %w", core.ErrNetwork, err)
		d.end(req.Method, path, 0, start, err)
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		cerr := core.Classify(resp.StatusCode, readErrorBody(resp))
		d.end(req.Method, path, resp.StatusCode, start, cerr)
		return nil, cerr
	}

	d.end(req.Method, path, resp.StatusCode, start, nil)
	return resp, nil
}

func (d *Dispatcher) end(method, path string, status int, start time.Time, err error) {
	end := time.Now()
	d.telemetry.OnRequestEnd(core.RequestEndEvent{
		Method: method,
		Path:   path,
		Status: status,
		Start:  start,
		End:    end,
		Err:    err,
	})

	attrs := []any{
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.Duration("duration", end.Sub(start)),
	}
	if err != nil {
		d.logger.Warn("gateway request failed", append(attrs, slog.String("error", err.Error()))...)
		return
	}
	d.logger.Debug("gateway request", attrs...)
}

func isReservedHeader(key string) bool {
	switch http.CanonicalHeaderKey(key) {
	case "Authorization", "Content-Type":
		return true
	}
	return false
}

// decodeJSON parses a successful response body into out and closes it.
func decodeJSON(resp *http.Response, out any) error {
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %w", core.ErrDecode, err)
	}
	return nil
}
