// Package authn implements the portal's request-authentication pipeline.
//
// The middleware intercepts every non-exempt request and runs a fixed
// sequence: cache and log the body (multipart excepted), require a Bearer
// token, seed the tenant scope and classify the principal kind from
// unverified claims, dispatch to the kind's validator, install the
// authenticated principal, and invoke the downstream handler. Failures are
// translated into a closed set of stable error codes, always with HTTP 401,
// and the tenant scope is cleared unconditionally on the way out.
//
// The dispatcher is the only place that routes on principal kind; exactly
// two kinds exist, and both validators translate library-level decode
// failures into this subsystem's taxonomy before they can cross the
// middleware boundary.
package authn
