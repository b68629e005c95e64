// Package authctx projects the installed principal into the read-only view
// consumed by business services. Downstream code depends on this projection,
// never on the raw principal or the token facility, which keeps the
// authentication mechanics swappable behind a stable surface.
package authctx
