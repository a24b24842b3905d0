package core

import (
	"context"
	"log/slog"
	"time"
)

// TelemetryHook receives notifications about each gateway exchange.
// Implementations can use this for logging, metrics, tracing, etc.
//
// # Security Considerations
//
// Events carry operational metadata only: method, path, status and timing.
// API keys, request bodies (prompts, phone numbers, message text) and
// response bodies are never included. Keep it that way when adding fields.
type TelemetryHook interface {
	// OnRequestStart is called before a request is sent to the gateway.
	OnRequestStart(e RequestStartEvent)

	// OnRequestEnd is called once the response status is known or the
	// request failed without one.
	OnRequestEnd(e RequestEndEvent)
}

// RequestStartEvent contains metadata about a starting request.
type RequestStartEvent struct {
	Method string    // HTTP method
	Path   string    // Path or route template, e.g. "/chat/completions" or "/phone/numbers/{id}"
	Start  time.Time // When the request started
}

// RequestEndEvent contains metadata about a completed request.
//
// For streamed and binary responses the event fires when headers arrive,
// not when the body has been consumed.
type RequestEndEvent struct {
	Method string
	Path   string
	Status int // HTTP status, 0 if no response was received
	Start  time.Time
	End    time.Time
	Err    error // nil on success
}

// Duration returns the elapsed time for the request.
func (e RequestEndEvent) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// NoopTelemetryHook is a no-op implementation of TelemetryHook.
// Use this as a default when no telemetry is configured.
type NoopTelemetryHook struct{}

// OnRequestStart does nothing.
func (NoopTelemetryHook) OnRequestStart(RequestStartEvent) {}

// OnRequestEnd does nothing.
func (NoopTelemetryHook) OnRequestEnd(RequestEndEvent) {}

// LogTelemetryHook writes request lifecycle events to a structured logger.
// Start events are logged at debug level; failed requests at warn.
type LogTelemetryHook struct {
	Logger *slog.Logger
}

// OnRequestStart logs the outgoing request.
func (h LogTelemetryHook) OnRequestStart(e RequestStartEvent) {
	h.logger().Debug("wopr request start",
		slog.String("method", e.Method),
		slog.String("path", e.Path))
}

// OnRequestEnd logs the outcome of the request.
func (h LogTelemetryHook) OnRequestEnd(e RequestEndEvent) {
	attrs := []slog.Attr{
		slog.String("method", e.Method),
		slog.String("path", e.Path),
		slog.Int("status", e.Status),
		slog.Duration("duration", e.Duration()),
	}
	if e.Err != nil {
		attrs = append(attrs, slog.String("error", e.Err.Error()))
		h.logger().LogAttrs(context.Background(), slog.LevelWarn, "wopr request failed", attrs...)
		return
	}
	h.logger().LogAttrs(context.Background(), slog.LevelDebug, "wopr request end", attrs...)
}

func (h LogTelemetryHook) logger() *slog.Logger {
	if h.Logger == nil {
		return slog.Default()
	}
	return h.Logger
}

// Compile-time checks.
var (
	_ TelemetryHook = NoopTelemetryHook{}
	_ TelemetryHook = LogTelemetryHook{}
)
