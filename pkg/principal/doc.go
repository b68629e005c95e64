// Package principal defines the authenticated identity installed on a request
// after bearer-token validation.
//
// A Principal is a tagged union over two mutually exclusive variants: a user
// identity (id, email, authorities) and a company identity (company code, PAN,
// partner product ids). The variant is selected by token classification and
// never mixed; code that needs one variant asserts for it explicitly via
// User() or Company().
package principal
