package authn

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/vendorport/authkit/pkg/clientip"
	"github.com/vendorport/authkit/pkg/environment"
	"github.com/vendorport/authkit/pkg/masker"
)

// logRequest emits one structured record describing the inbound request.
// In production the Authorization header is masked and the body is omitted
// entirely; outside production the body is included after sensitive-data
// masking.
func logRequest(log *slog.Logger, r *http.Request, body []byte) {
	ctx := r.Context()
	isProd := environment.FromContext(ctx).IsProduction()

	attrs := []slog.Attr{
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("query", r.URL.RawQuery),
		slog.String("remote_addr", clientip.FromRequest(r)),
		slog.Any("headers", collectHeaders(r, isProd)),
		slog.Any("params", collectParams(r, body, isProd)),
	}
	if !isProd {
		attrs = append(attrs, slog.String("body", bodyForLog(body)))
	}

	log.LogAttrs(ctx, slog.LevelInfo, "incoming request", attrs...)
}

// collectHeaders flattens request headers for logging. The Authorization
// value is replaced with a placeholder in production.
func collectHeaders(r *http.Request, isProd bool) map[string]string {
	headers := make(map[string]string, len(r.Header))
	for name, values := range r.Header {
		value := strings.Join(values, ", ")
		if isProd && strings.EqualFold(name, "Authorization") {
			value = "Bearer ***"
		}
		headers[name] = value
	}
	return headers
}

// collectParams merges query-string and form-encoded body parameters,
// mirroring the servlet parameter map of the original portal. Values are
// masked in production.
func collectParams(r *http.Request, body []byte, isProd bool) map[string]string {
	params := make(map[string]string)
	for key, values := range r.URL.Query() {
		params[key] = strings.Join(values, ", ")
	}

	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "application/x-www-form-urlencoded") && len(body) > 0 {
		if form, err := url.ParseQuery(string(body)); err == nil {
			for key, values := range form {
				params[key] = strings.Join(values, ", ")
			}
		}
	}

	if isProd {
		// Masking runs over "key: value" so the field-name patterns can
		// match; the key prefix (quoted by the masker on a hit) is
		// stripped back off afterwards.
		for key, value := range params {
			masked := masker.Mask(key + ": " + value)
			masked = strings.TrimPrefix(masked, `"`+key+`": `)
			masked = strings.TrimPrefix(masked, key+": ")
			params[key] = masked
		}
	}
	return params
}

func bodyForLog(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return "None"
	}
	return masker.Mask(trimmed)
}
