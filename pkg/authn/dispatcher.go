package authn

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/vendorport/authkit/pkg/jwtauth"
	"github.com/vendorport/authkit/pkg/logger"
	"github.com/vendorport/authkit/pkg/principal"
)

// Dispatcher routes an unauthenticated principal placeholder to the
// validator matching its declared kind and returns the authenticated
// principal. It performs no other behavior: both variants share the same
// token facility, and each validator owns its own failure translation.
type Dispatcher struct {
	facility *jwtauth.Facility
	log      *slog.Logger
}

// NewDispatcher creates a dispatcher over the given token facility.
// A nil log disables validator logging.
func NewDispatcher(facility *jwtauth.Facility, log *slog.Logger) *Dispatcher {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Dispatcher{facility: facility, log: log}
}

// Authenticate dispatches on the placeholder's kind. Exactly two kinds
// exist; anything else is ErrUnsupportedPrincipalKind.
func (d *Dispatcher) Authenticate(ctx context.Context, p principal.Principal) (principal.Principal, error) {
	switch p.Kind() {
	case principal.KindUser:
		return d.authenticateUser(ctx, p.Token())
	case principal.KindCompany:
		return d.authenticateCompany(ctx, p.Token())
	default:
		return principal.Principal{}, fmt.Errorf("%w: %q", ErrUnsupportedPrincipalKind, p.Kind())
	}
}

// authenticateUser verifies the token and materializes the user principal.
// Decode failures keep their jwtauth classification; a verified token whose
// identity cannot be established is an authentication failure, not a decode
// error.
func (d *Dispatcher) authenticateUser(ctx context.Context, token string) (principal.Principal, error) {
	claims, err := d.facility.Parse(token)
	if err != nil {
		d.log.WarnContext(ctx, "user token validation failed", logger.Error(err))
		return principal.Principal{}, err
	}

	userID, err := claims.UserID()
	if err != nil {
		d.log.WarnContext(ctx, "user token has no usable identity", logger.Error(err))
		return principal.Principal{}, errors.Join(ErrAuthenticationFailed, err)
	}

	return principal.NewUser(token, principal.User{
		ID:          userID,
		Email:       claims.Email(),
		Authorities: claims.Authorities(),
	}), nil
}

// authenticateCompany verifies the token and additionally requires the
// classification claim to agree that this is a company token. A verified
// user token routed here is ErrNotCompanyToken, never silently treated as a
// user authentication.
func (d *Dispatcher) authenticateCompany(ctx context.Context, token string) (principal.Principal, error) {
	claims, err := d.facility.Parse(token)
	if err != nil {
		d.log.WarnContext(ctx, "company token validation failed", logger.Error(err))
		return principal.Principal{}, err
	}

	if claims.Kind() != principal.KindCompany {
		d.log.WarnContext(ctx, "token routed as company but classified otherwise",
			slog.String("token_type", claims.TokenType()))
		return principal.Principal{}, ErrNotCompanyToken
	}

	company, err := claims.Company()
	if err != nil {
		d.log.WarnContext(ctx, "company token has no usable identity", logger.Error(err))
		return principal.Principal{}, errors.Join(ErrAuthenticationFailed, err)
	}

	return principal.NewCompany(token, company), nil
}
