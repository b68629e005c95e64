package tenant

import (
	"context"
	"log/slog"
)

type contextKey struct{}

// WithScope attaches a tenant scope to the context.
func WithScope(ctx context.Context, scope *Scope) context.Context {
	return context.WithValue(ctx, contextKey{}, scope)
}

// ScopeFromContext retrieves the request's tenant scope.
// Returns nil, false outside an intercepted request.
func ScopeFromContext(ctx context.Context) (*Scope, bool) {
	scope, ok := ctx.Value(contextKey{}).(*Scope)
	return scope, ok && scope != nil
}

// CurrentTenant returns the current tenant's company code for the request.
// ok is false when there is no scope or the scope is empty. Data-access code
// uses this to restrict queries to the caller's tenant.
func CurrentTenant(ctx context.Context) (int64, bool) {
	scope, ok := ScopeFromContext(ctx)
	if !ok {
		return 0, false
	}
	return scope.Get()
}

// LoggerExtractor returns a ContextExtractor for the logger that records the
// current tenant id when one is set.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if code, ok := CurrentTenant(ctx); ok {
			return slog.Int64("tenant_id", code), true
		}
		return slog.Attr{}, false
	}
}
