package wopr

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/wopr-network/wopr-go/core"
)

// Config holds configuration for the WOPR client.
type Config struct {
	// BaseURL is the gateway base URL. Defaults to https://api.wopr.bot/v1
	BaseURL string

	// HTTPClient is the HTTP client to use. Defaults to http.DefaultClient.
	HTTPClient *http.Client

	// Headers contains optional extra headers to include in requests.
	Headers http.Header

	// Timeout is the optional request timeout.
	Timeout time.Duration

	// UserAgent overrides the default User-Agent header.
	UserAgent string

	// Telemetry receives request lifecycle events.
	Telemetry core.TelemetryHook

	// Logger receives one record per gateway exchange.
	Logger *slog.Logger
}

// DefaultBaseURL is the default gateway base URL.
const DefaultBaseURL = "https://api.wopr.bot/v1"

// Option configures the client.
type Option func(*Config)

// WithBaseURL sets the gateway base URL.
func WithBaseURL(url string) Option {
	return func(c *Config) {
		c.BaseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Config) {
		c.HTTPClient = client
	}
}

// WithHeader adds an extra header to include in requests.
func WithHeader(key, value string) Option {
	return func(c *Config) {
		if c.Headers == nil {
			c.Headers = make(http.Header)
		}
		c.Headers.Set(key, value)
	}
}

// WithTimeout sets the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Config) {
		c.Timeout = d
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Config) {
		c.UserAgent = ua
	}
}

// WithTelemetry sets the telemetry hook.
func WithTelemetry(h core.TelemetryHook) Option {
	return func(c *Config) {
		c.Telemetry = h
	}
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}
