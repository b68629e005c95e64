package authctx

import "errors"

var (
	// ErrNoPrincipal is returned when no authenticated principal is installed
	// on the request context.
	ErrNoPrincipal = errors.New("authctx: no authenticated principal in context")

	// ErrNotCompanyContext is returned when a company auth context is
	// requested for a request authenticated with a user token.
	ErrNotCompanyContext = errors.New("authctx: principal is not a company token")
)
