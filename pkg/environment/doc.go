// Package environment carries the active deployment profile through request
// contexts so that profile-gated behavior (request-body logging, credential
// masking) can be decided close to where it happens.
//
// The zero state is deliberately conservative: a context without an
// environment reads as Production.
package environment
