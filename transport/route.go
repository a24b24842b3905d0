package transport

import "context"

type routeKey struct{}

// WithRoute returns a context whose requests are reported to telemetry and
// logs under route, a path template such as "/phone/numbers/{id}", instead
// of the concrete path. The request itself still targets the concrete path.
func WithRoute(ctx context.Context, route string) context.Context {
	return context.WithValue(ctx, routeKey{}, route)
}

// routeOf returns the route set on ctx, or path when there is none.
func routeOf(ctx context.Context, path string) string {
	if route, ok := ctx.Value(routeKey{}).(string); ok && route != "" {
		return route
	}
	return path
}
