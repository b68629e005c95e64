package jwtauth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Facility verifies bearer tokens and exposes typed claim access. The HMAC
// signing key is loaded once at construction and read-only afterwards, so a
// single Facility is safe for concurrent use across requests.
type Facility struct {
	signingKey []byte
	parser     *jwt.Parser
}

// New creates a Facility with the provided HMAC signing key.
func New(signingKey []byte) (*Facility, error) {
	if len(signingKey) == 0 {
		return nil, ErrMissingSigningKey
	}
	return &Facility{
		signingKey: signingKey,
		// json.Number decoding keeps numeric claims exact so coercion can
		// reject floats instead of silently truncating them.
		parser: jwt.NewParser(jwt.WithJSONNumber()),
	}, nil
}

// NewFromString creates a Facility from a string signing key.
func NewFromString(signingKey string) (*Facility, error) {
	return New([]byte(signingKey))
}

// Parse verifies the token's signature and temporal claims and returns its
// claims. Library-level failures are translated into this package's error
// taxonomy; no golang-jwt error type escapes.
func (f *Facility) Parse(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("%w: empty token", ErrMalformedToken)
	}

	claims := jwt.MapClaims{}
	token, err := f.parser.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return f.signingKey, nil
	})
	if err != nil {
		return nil, translateParseError(err)
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return &Claims{m: claims}, nil
}

// Valid reports whether the token passes signature and expiry verification.
func (f *Facility) Valid(tokenString string) error {
	_, err := f.Parse(tokenString)
	return err
}

// Peek decodes the token's claims without verifying the signature or expiry.
// It exists for the pre-validation steps of the request interceptor (tenant
// scoping and principal-kind classification); nothing read through Peek may
// be trusted until Parse has succeeded for the same token.
func (f *Facility) Peek(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("%w: empty token", ErrMalformedToken)
	}

	claims := jwt.MapClaims{}
	if _, _, err := f.parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, translateParseError(err)
	}
	return &Claims{m: claims}, nil
}

// translateParseError maps golang-jwt failures onto the package taxonomy.
// Order matters: a tampered token can surface as both malformed and
// signature-invalid, and the more specific signature error wins.
func translateParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return errors.Join(ErrExpiredToken, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return errors.Join(ErrInvalidSignature, err)
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return errors.Join(ErrUnsupportedToken, err)
	case errors.Is(err, jwt.ErrTokenMalformed):
		return errors.Join(ErrMalformedToken, err)
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return errors.Join(ErrInvalidToken, err)
	default:
		return errors.Join(ErrInvalidToken, err)
	}
}
