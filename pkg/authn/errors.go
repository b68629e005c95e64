package authn

import "errors"

var (
	// ErrMissingToken is returned when the Authorization header is absent or
	// does not carry a Bearer token.
	ErrMissingToken = errors.New("authn: missing bearer token")

	// ErrUnsupportedPrincipalKind is returned when a placeholder arrives with
	// a kind no validator handles.
	ErrUnsupportedPrincipalKind = errors.New("authn: unsupported principal kind")

	// ErrNotCompanyToken is returned when a token routed to the company
	// validator turns out not to be classified as a company token.
	ErrNotCompanyToken = errors.New("authn: token is not a company token")

	// ErrAuthenticationFailed is returned when a token decodes and verifies
	// but the resulting identity is rejected.
	ErrAuthenticationFailed = errors.New("authn: authentication failed")
)
