package device

import "context"

type contextKeyClient struct{}

// Client retrieves the parsed client label from the context.
func Client(ctx context.Context) string {
	if client, ok := ctx.Value(contextKeyClient{}).(string); ok {
		return client
	}
	return ""
}

// WithClient injects a client label into a context.
// Useful for service unit tests that don't run the full HTTP middleware chain.
func WithClient(ctx context.Context, client string) context.Context {
	return context.WithValue(ctx, contextKeyClient{}, client)
}
