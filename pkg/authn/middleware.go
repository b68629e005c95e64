package authn

import (
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/vendorport/authkit/pkg/jwtauth"
	"github.com/vendorport/authkit/pkg/logger"
	"github.com/vendorport/authkit/pkg/principal"
	"github.com/vendorport/authkit/pkg/tenant"
)

const bearerPrefix = "Bearer "

// defaultSkipPrefixes lists path prefixes that bypass authentication and
// request logging entirely: API documentation, doc-viewer assets, and
// public health probes.
var defaultSkipPrefixes = []string{
	"/swagger",
	"/v3",
	"/api-docs",
	"/webjars",
	"/health",
	"/actuator/health",
	"/actuator/info",
}

// handshakeMarker exempts websocket handshake paths wherever they appear.
const handshakeMarker = "/handshake"

// Config configures the request interceptor.
type Config struct {
	// Facility validates tokens and decodes claims. Required.
	Facility *jwtauth.Facility

	// Logger receives request and failure logs. Defaults to discard.
	Logger *slog.Logger

	// SkipPrefixes overrides the default bypass list when non-nil.
	SkipPrefixes []string
}

// Middleware returns the request interceptor: it authenticates every
// non-exempt request, establishes the tenant scope before business logic
// runs, installs the authenticated principal into the request context, and
// translates every failure into a stable JSON error response. The tenant
// scope is cleared on every exit path.
func Middleware(cfg Config) func(http.Handler) http.Handler {
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.SkipPrefixes == nil {
		cfg.SkipPrefixes = defaultSkipPrefixes
	}
	dispatcher := NewDispatcher(cfg.Facility, cfg.Logger)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if shouldSkip(r.URL.Path, cfg.SkipPrefixes) {
				next.ServeHTTP(w, r)
				return
			}

			// Multipart uploads are passed through unbuffered; everything
			// else gets a re-readable body and a structured request log.
			if !isMultipart(r) {
				body, err := cacheRequestBody(r)
				if err != nil {
					cfg.Logger.WarnContext(r.Context(), "failed to cache request body", logger.Error(err))
				}
				logRequest(cfg.Logger, r, body)
			}

			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, bearerPrefix) {
				cfg.Logger.DebugContext(r.Context(), "no Authorization header found or invalid format")
				writeError(w, r, ErrMissingToken)
				return
			}
			rawToken := strings.TrimPrefix(authHeader, bearerPrefix)

			scope := tenant.NewScope()
			ctx := tenant.WithScope(r.Context(), scope)
			r = r.WithContext(ctx)
			// The single most safety-critical invariant: the scope must be
			// empty again when this request finishes, on every exit path.
			defer scope.Clear()

			// Tenant scoping and classification read unverified claims.
			// Nothing trusts these values until the dispatcher has verified
			// the token; a decode failure here only leaves the scope unset.
			kind := principal.KindUser
			if claims, err := cfg.Facility.Peek(rawToken); err != nil {
				cfg.Logger.WarnContext(ctx, "error reading token claims for tenant context", logger.Error(err))
			} else {
				if code, err := claims.CompanyCode(); err != nil {
					cfg.Logger.WarnContext(ctx, "error setting tenant context", logger.Error(err))
				} else {
					scope.Set(code)
				}
				kind = claims.Kind()
			}

			authenticated, err := dispatcher.Authenticate(ctx, principal.Unverified(kind, rawToken))
			if err != nil {
				writeError(w, r, err)
				return
			}

			next.ServeHTTP(w, r.WithContext(principal.WithContext(ctx, authenticated)))
		})
	}
}

// shouldSkip reports whether the path is exempt from authentication.
// Prefix matching is exact and case-sensitive.
func shouldSkip(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return strings.Contains(path, handshakeMarker)
}
