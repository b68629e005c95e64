package jwtauth

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vendorport/authkit/pkg/principal"
)

// Claim names carried by portal bearer tokens.
const (
	claimSubject           = "sub"
	claimUserID            = "userId"
	claimCompanyCode       = "companyId"
	claimCompanyPan        = "companyPan"
	claimTokenType         = "tokenType"
	claimRoles             = "roles"
	claimPermissions       = "permissions"
	claimAuthority         = "authority"
	claimSenderProductID   = "senderProductId"
	claimReceiverProductID = "receiverProductId"
	claimProductID         = "productId"
)

// tokenTypeCompany is the discriminator value marking company tokens.
// Any other value, including absence, classifies as a user token.
const tokenTypeCompany = "company"

// DefaultAuthority is granted when a token carries neither roles nor
// permissions.
const DefaultAuthority = "user"

// Claims provides typed access over a token's decoded claim set.
type Claims struct {
	m jwt.MapClaims
}

// Email returns the subject claim, the user's email address.
func (c *Claims) Email() string {
	email, _ := c.m[claimSubject].(string)
	return email
}

// UserID returns the required userId claim.
func (c *Claims) UserID() (int64, error) {
	return c.requiredInt64(claimUserID)
}

// CompanyCode returns the required companyId claim, the tenant identifier.
func (c *Claims) CompanyCode() (int64, error) {
	return c.requiredInt64(claimCompanyCode)
}

// CompanyPan returns the company's PAN, or "" when absent.
func (c *Claims) CompanyPan() string {
	pan, _ := c.m[claimCompanyPan].(string)
	return pan
}

// TokenType returns the raw principal-kind discriminator claim.
func (c *Claims) TokenType() string {
	t, _ := c.m[claimTokenType].(string)
	return t
}

// Kind classifies the token: tokenType "company" selects the company
// variant, everything else is treated as a user token.
func (c *Claims) Kind() principal.Kind {
	if c.TokenType() == tokenTypeCompany {
		return principal.KindCompany
	}
	return principal.KindUser
}

// Authorities returns the token's granted authorities. The roles claim wins
// whenever it is present, even when empty; otherwise each permission object
// contributes its authority field; a token with neither yields the single
// default authority.
func (c *Claims) Authorities() []string {
	if roles, ok := c.m[claimRoles].([]any); ok {
		out := make([]string, 0, len(roles))
		for _, r := range roles {
			if s, ok := r.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}

	if perms, ok := c.m[claimPermissions].([]any); ok && len(perms) > 0 {
		out := make([]string, 0, len(perms))
		for _, p := range perms {
			authority := DefaultAuthority
			if obj, ok := p.(map[string]any); ok {
				if a, ok := obj[claimAuthority].(string); ok && a != "" {
					authority = a
				}
			}
			out = append(out, authority)
		}
		return out
	}

	return []string{DefaultAuthority}
}

// SenderProductID returns the senderProductId claim, falling back to the
// generic productId claim. Returns nil when neither is present or the value
// cannot be coerced.
func (c *Claims) SenderProductID() *int64 {
	return c.optionalInt64(claimSenderProductID, claimProductID)
}

// ReceiverProductID returns the receiverProductId claim, falling back to the
// generic productId claim. Returns nil when neither is present or the value
// cannot be coerced.
func (c *Claims) ReceiverProductID() *int64 {
	return c.optionalInt64(claimReceiverProductID, claimProductID)
}

// Company materializes the company identity view from the claims.
func (c *Claims) Company() (principal.Company, error) {
	code, err := c.CompanyCode()
	if err != nil {
		return principal.Company{}, err
	}
	return principal.Company{
		Code:              code,
		Pan:               c.CompanyPan(),
		SenderProductID:   c.SenderProductID(),
		ReceiverProductID: c.ReceiverProductID(),
	}, nil
}

func (c *Claims) requiredInt64(name string) (int64, error) {
	v, ok := c.m[name]
	if !ok || v == nil {
		return 0, fmt.Errorf("%w: %s", ErrClaimMissing, name)
	}
	n, err := toInt64(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	return n, nil
}

// optionalInt64 tries the named claims in order; coercion failures are
// treated the same as absence.
func (c *Claims) optionalInt64(names ...string) *int64 {
	for _, name := range names {
		v, ok := c.m[name]
		if !ok || v == nil {
			continue
		}
		n, err := toInt64(v)
		if err != nil {
			continue
		}
		return &n
	}
	return nil
}

// toInt64 is the single numeric coercion rule for claim values. Issuers
// encode numeric claims as small integers, large integers, or decimal
// strings; all three coerce to int64. Every other runtime shape, floats
// included, is a hard ErrClaimType failure.
func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, fmt.Errorf("%w: non-integral numeric value %q", ErrClaimType, n.String())
		}
		return i, nil
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: non-numeric string %q", ErrClaimType, n)
		}
		return i, nil
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	default:
		return 0, fmt.Errorf("%w: cannot convert %T to int64", ErrClaimType, v)
	}
}
