// Package jwtauth decodes and validates the portal's bearer tokens.
//
// A Facility holds the HMAC signing key and exposes two decode paths: Parse,
// which verifies signature and expiry, and Peek, which reads claims without
// verification for the interceptor's pre-validation steps (tenant scoping and
// principal-kind classification). All golang-jwt failures are translated into
// this package's sentinel errors at the boundary.
//
// Numeric claims arrive from different issuers as small integers, large
// integers, or decimal strings; a single coercion rule maps all three to
// int64 and rejects everything else, floats included.
package jwtauth
