package jwtauth

import "errors"

var (
	ErrMissingSigningKey = errors.New("jwtauth: missing signing key")
	ErrInvalidToken      = errors.New("jwtauth: invalid token")
	ErrMalformedToken    = errors.New("jwtauth: malformed token")
	ErrExpiredToken      = errors.New("jwtauth: token is expired")
	ErrInvalidSignature  = errors.New("jwtauth: invalid token signature")
	ErrUnsupportedToken  = errors.New("jwtauth: unsupported token format")
	ErrClaimMissing      = errors.New("jwtauth: required claim missing")
	ErrClaimType         = errors.New("jwtauth: claim has unexpected type")
)
