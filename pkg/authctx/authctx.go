package authctx

import (
	"context"

	"github.com/vendorport/authkit/pkg/principal"
	"github.com/vendorport/authkit/pkg/tenant"
)

// AuthContext is the read-only identity view handed to business services.
// It is built once per request from the installed principal (or from
// explicit fields on code paths that bypass the interceptor) and never
// exposes token-signing material.
type AuthContext struct {
	UserID         int64    `json:"userId"`
	UserEmail      string   `json:"userEmail,omitempty"`
	UserClientCode string   `json:"userClientCode,omitempty"`
	CompanyCode    int64    `json:"companyCode"`
	Token          string   `json:"-"`
	Authorities    []string `json:"authorities,omitempty"`

	// Company-token-only fields; zero values for user tokens.
	CompanyToken      bool   `json:"companyToken"`
	CompanyPan        string `json:"companyPan,omitempty"`
	SenderProductID   *int64 `json:"senderProductId,omitempty"`
	ReceiverProductID *int64 `json:"receiverProductId,omitempty"`
}

// New builds a user-shaped auth context from explicit fields. Used by code
// paths that authenticate outside the request interceptor, such as batch
// jobs acting on behalf of a user session.
func New(userID, companyCode int64, email, clientCode, token string, authorities []string) AuthContext {
	return AuthContext{
		UserID:         userID,
		UserEmail:      email,
		UserClientCode: clientCode,
		CompanyCode:    companyCode,
		Token:          token,
		Authorities:    authorities,
	}
}

// FromContext derives an auth context from the principal installed on the
// request. Works for both principal kinds: a user principal projects its
// identity fields, a company principal projects the shared subset.
// Returns ErrNoPrincipal when the request was not authenticated.
func FromContext(ctx context.Context) (AuthContext, error) {
	p, ok := principal.FromContext(ctx)
	if !ok || !p.Authenticated() {
		return AuthContext{}, ErrNoPrincipal
	}

	if company, ok := p.Company(); ok {
		return AuthContext{
			CompanyCode: company.Code,
			Token:       p.Token(),
			Authorities: p.Authorities(),
		}, nil
	}

	// User tokens carry the tenant id only as the companyId claim; the
	// interceptor has already copied it into the request's tenant scope.
	companyCode, _ := tenant.CurrentTenant(ctx)

	user, _ := p.User()
	return AuthContext{
		UserID:      user.ID,
		UserEmail:   user.Email,
		CompanyCode: companyCode,
		Token:       p.Token(),
		Authorities: user.Authorities,
	}, nil
}

// CompanyFromContext derives a company auth context from the installed
// principal. The principal must actually be company-kind; requesting a
// company context for a user token is ErrNotCompanyContext, never a silent
// downgrade.
func CompanyFromContext(ctx context.Context) (AuthContext, error) {
	p, ok := principal.FromContext(ctx)
	if !ok || !p.Authenticated() {
		return AuthContext{}, ErrNoPrincipal
	}

	company, ok := p.Company()
	if !ok {
		return AuthContext{}, ErrNotCompanyContext
	}

	return AuthContext{
		CompanyCode:       company.Code,
		Token:             p.Token(),
		Authorities:       p.Authorities(),
		CompanyToken:      true,
		CompanyPan:        company.Pan,
		SenderProductID:   company.SenderProductID,
		ReceiverProductID: company.ReceiverProductID,
	}, nil
}
