package principal

// Kind discriminates the two principal variants a bearer token can carry.
type Kind string

const (
	// KindUser marks a token issued to an end user.
	KindUser Kind = "user"
	// KindCompany marks a token issued to a tenant company.
	KindCompany Kind = "company"
)

// CompanyAuthority is the single authority granted to company principals.
const CompanyAuthority = "COMPANY"

// User is the identity view of an authenticated user token.
type User struct {
	ID          int64
	Email       string
	Authorities []string
}

// Company is the identity view of an authenticated company token.
// SenderProductID and ReceiverProductID are nil when the issuer
// supplied neither the specific claim nor the productId fallback.
type Company struct {
	Code              int64
	Pan               string
	SenderProductID   *int64
	ReceiverProductID *int64
}

// Principal is a tagged union over the two identity variants. Exactly one
// variant is populated on an authenticated principal; an unverified
// placeholder has neither. The raw token is retained for downstream
// service calls that forward the caller's credentials.
type Principal struct {
	kind          Kind
	token         string
	authenticated bool
	user          *User
	company       *Company
}

// Unverified builds the placeholder handed to the authentication dispatcher.
// It carries only the declared kind and the raw token.
func Unverified(kind Kind, token string) Principal {
	return Principal{kind: kind, token: token}
}

// NewUser builds an authenticated user principal.
func NewUser(token string, user User) Principal {
	return Principal{
		kind:          KindUser,
		token:         token,
		authenticated: true,
		user:          &user,
	}
}

// NewCompany builds an authenticated company principal.
func NewCompany(token string, company Company) Principal {
	return Principal{
		kind:          KindCompany,
		token:         token,
		authenticated: true,
		company:       &company,
	}
}

// Kind returns the declared principal kind.
func (p Principal) Kind() Kind { return p.kind }

// Token returns the raw bearer token the principal was built from.
func (p Principal) Token() string { return p.token }

// Authenticated reports whether the principal passed validation.
// Placeholders returned by Unverified report false.
func (p Principal) Authenticated() bool { return p.authenticated }

// User returns the user variant. ok is false for company principals
// and for unverified placeholders.
func (p Principal) User() (User, bool) {
	if p.user == nil {
		return User{}, false
	}
	return *p.user, true
}

// Company returns the company variant. ok is false for user principals
// and for unverified placeholders.
func (p Principal) Company() (Company, bool) {
	if p.company == nil {
		return Company{}, false
	}
	return *p.company, true
}

// Authorities returns the principal's granted authorities. Company
// principals carry the fixed COMPANY authority.
func (p Principal) Authorities() []string {
	switch {
	case p.user != nil:
		return p.user.Authorities
	case p.company != nil:
		return []string{CompanyAuthority}
	default:
		return nil
	}
}
