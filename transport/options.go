package transport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/wopr-network/wopr-go/core"
)

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithHTTPClient sets the HTTP client used for every request.
// Defaults to http.DefaultClient.
func WithHTTPClient(client *http.Client) Option {
	return func(d *Dispatcher) {
		if client != nil {
			d.httpClient = client
		}
	}
}

// WithTimeout sets the timeout on a copy of the configured HTTP client.
// The dispatcher has no timeout of its own.
func WithTimeout(timeout time.Duration) Option {
	return func(d *Dispatcher) {
		d.timeout = timeout
	}
}

// WithHeader adds an extra header to every request.
// Authorization and Content-Type cannot be overridden this way.
func WithHeader(key, value string) Option {
	return func(d *Dispatcher) {
		if d.headers == nil {
			d.headers = make(http.Header)
		}
		d.headers.Add(key, value)
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(d *Dispatcher) {
		d.userAgent = ua
	}
}

// WithTelemetry sets the hook notified around every exchange.
func WithTelemetry(h core.TelemetryHook) Option {
	return func(d *Dispatcher) {
		if h != nil {
			d.telemetry = h
		}
	}
}

// WithLogger sets the structured logger. Defaults to a logger that discards.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}
