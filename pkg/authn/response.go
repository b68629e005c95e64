package authn

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/vendorport/authkit/pkg/jwtauth"
)

// Stable error codes returned to clients. The set is closed: every
// authentication failure maps onto exactly one of these.
const (
	CodeMissingToken          = "MISSING_TOKEN"
	CodeTokenExpired          = "TOKEN_EXPIRED"
	CodeInvalidToken          = "INVALID_TOKEN"
	CodeInvalidTokenSignature = "INVALID_TOKEN_SIGNATURE"
	CodeUnsupportedToken      = "UNSUPPORTED_TOKEN"
	CodeAuthenticationFailed  = "AUTHENTICATION_FAILED"
)

const timestampLayout = "2006-01-02T15:04:05.000Z"

// ErrorResponse is the JSON body written for every failed authentication.
type ErrorResponse struct {
	Status    int    `json:"status"`
	Error     string `json:"error"`
	Message   string `json:"message"`
	Details   string `json:"details,omitempty"`
	Path      string `json:"path"`
	Timestamp string `json:"timestamp"`
}

// newErrorResponse builds the response body for a failure on the given path.
func newErrorResponse(status int, code, message, details, path string) ErrorResponse {
	return ErrorResponse{
		Status:    status,
		Error:     code,
		Message:   message,
		Details:   details,
		Path:      path,
		Timestamp: time.Now().UTC().Format(timestampLayout),
	}
}

// classify maps an authentication failure onto its stable wire code and
// user-safe messaging. Anything not recognized as a decode failure is
// reported as a generic authentication failure so internal details never
// reach the client.
func classify(err error) (code, message, details string) {
	switch {
	case errors.Is(err, ErrMissingToken):
		return CodeMissingToken, "Missing authentication token",
			"Authorization header is missing or invalid. Please provide a valid Bearer token."
	case errors.Is(err, jwtauth.ErrExpiredToken):
		return CodeTokenExpired, "JWT token has expired",
			"Your session has expired. Please login again to continue."
	case errors.Is(err, jwtauth.ErrInvalidSignature):
		return CodeInvalidTokenSignature, "Invalid JWT token signature",
			"The token signature is invalid. Please login again."
	case errors.Is(err, jwtauth.ErrUnsupportedToken):
		return CodeUnsupportedToken, "Unsupported JWT token",
			"The token format is not supported. Please login again."
	case errors.Is(err, jwtauth.ErrMalformedToken), errors.Is(err, jwtauth.ErrInvalidToken):
		return CodeInvalidToken, "Invalid JWT token format",
			"The provided token is malformed. Please login again."
	default:
		return CodeAuthenticationFailed, "Authentication failed",
			"Invalid credentials. Please check and try again."
	}
}

// writeError renders the failure as JSON. Authentication failures in this
// subsystem are always 401.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code, message, details := classify(err)
	body := newErrorResponse(http.StatusUnauthorized, code, message, details, r.URL.Path)

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(body)
}
