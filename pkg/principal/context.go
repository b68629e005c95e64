package principal

import "context"

type contextKey struct{}

// WithContext installs the authenticated principal into the request context.
// This is the request's security context: downstream code reads the identity
// from here, never from the raw token.
func WithContext(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

// FromContext retrieves the installed principal.
// Returns ok=false when the request was not authenticated.
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(contextKey{}).(Principal)
	return p, ok
}
