package authn_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vendorport/authkit/pkg/authctx"
	"github.com/vendorport/authkit/pkg/authn"
	"github.com/vendorport/authkit/pkg/principal"
	"github.com/vendorport/authkit/pkg/tenant"
)

func newTestHandler(t *testing.T) (*authn.Config, http.Handler, *capturedRequest) {
	t.Helper()
	captured := &capturedRequest{}
	cfg := &authn.Config{Facility: newFacility(t)}
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.called = true
		captured.ctx = r.Context()
		body, _ := io.ReadAll(r.Body)
		captured.body = body
		w.WriteHeader(http.StatusOK)
	})
	return cfg, inner, captured
}

type capturedRequest struct {
	called bool
	ctx    context.Context
	body   []byte
}

func serve(t *testing.T, cfg *authn.Config, inner http.Handler, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	authn.Middleware(*cfg)(inner).ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) authn.ErrorResponse {
	t.Helper()
	var body authn.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestMiddlewareSkipPaths(t *testing.T) {
	t.Parallel()

	paths := []string{
		"/health",
		"/swagger/index.html",
		"/v3/api-docs",
		"/actuator/info",
		"/ws/handshake/session",
	}
	for _, path := range paths {
		path := path
		t.Run(path, func(t *testing.T) {
			t.Parallel()

			cfg, inner, captured := newTestHandler(t)
			req := httptest.NewRequest(http.MethodGet, path, nil)

			rec := serve(t, cfg, inner, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.True(t, captured.called)
		})
	}
}

func TestMiddlewareMissingToken(t *testing.T) {
	t.Parallel()

	t.Run("no header", func(t *testing.T) {
		t.Parallel()

		cfg, inner, captured := newTestHandler(t)
		req := httptest.NewRequest(http.MethodGet, "/api/vendors", nil)

		rec := serve(t, cfg, inner, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.False(t, captured.called)

		body := decodeError(t, rec)
		assert.Equal(t, http.StatusUnauthorized, body.Status)
		assert.Equal(t, authn.CodeMissingToken, body.Error)
		assert.Equal(t, "/api/vendors", body.Path)

		_, err := time.Parse("2006-01-02T15:04:05.000Z", body.Timestamp)
		assert.NoError(t, err)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		t.Parallel()

		cfg, inner, _ := newTestHandler(t)
		req := httptest.NewRequest(http.MethodGet, "/api/vendors", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

		rec := serve(t, cfg, inner, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, authn.CodeMissingToken, decodeError(t, rec).Error)
	})
}

func TestMiddlewareTokenFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		token    func(t *testing.T) string
		wantCode string
	}{
		{
			name: "expired",
			token: func(t *testing.T) string {
				return signToken(t, testSecret, jwtlib.MapClaims{
					"sub":    "a@b.com",
					"userId": 7,
					"exp":    time.Now().Add(-time.Hour).Unix(),
				})
			},
			wantCode: authn.CodeTokenExpired,
		},
		{
			name: "tampered signature",
			token: func(t *testing.T) string {
				return signToken(t, "another-key", jwtlib.MapClaims{
					"sub":    "a@b.com",
					"userId": 7,
				})
			},
			wantCode: authn.CodeInvalidTokenSignature,
		},
		{
			name: "malformed",
			token: func(t *testing.T) string {
				return "garbage.token"
			},
			wantCode: authn.CodeInvalidToken,
		},
		{
			name: "unsigned token",
			token: func(t *testing.T) string {
				token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodNone, jwtlib.MapClaims{
					"sub":    "a@b.com",
					"userId": 7,
					"exp":    time.Now().Add(time.Hour).Unix(),
				}).SignedString(jwtlib.UnsafeAllowNoneSignatureType)
				require.NoError(t, err)
				return token
			},
			wantCode: authn.CodeUnsupportedToken,
		},
		{
			name: "verified but no user identity",
			token: func(t *testing.T) string {
				return signToken(t, testSecret, jwtlib.MapClaims{"sub": "a@b.com"})
			},
			wantCode: authn.CodeAuthenticationFailed,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg, inner, captured := newTestHandler(t)
			req := httptest.NewRequest(http.MethodGet, "/api/vendors", nil)
			req.Header.Set("Authorization", "Bearer "+tt.token(t))

			rec := serve(t, cfg, inner, req)

			require.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, captured.called)
			assert.Equal(t, tt.wantCode, decodeError(t, rec).Error)
		})
	}
}

func TestMiddlewareUserHappyPath(t *testing.T) {
	t.Parallel()

	cfg := &authn.Config{Facility: newFacility(t)}
	token := signToken(t, testSecret, jwtlib.MapClaims{
		"sub":       "a@b.com",
		"userId":    7,
		"companyId": 99,
		"tokenType": "user",
		"roles":     []string{"user"},
	})

	// The tenant scope only lives for the duration of the request, so the
	// projection has to happen inside the handler.
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		p, ok := principal.FromContext(ctx)
		require.True(t, ok)
		assert.Equal(t, principal.KindUser, p.Kind())
		assert.True(t, p.Authenticated())

		code, ok := tenant.CurrentTenant(ctx)
		require.True(t, ok)
		assert.Equal(t, int64(99), code)

		ac, err := authctx.FromContext(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(7), ac.UserID)
		assert.Equal(t, "a@b.com", ac.UserEmail)
		assert.Equal(t, int64(99), ac.CompanyCode)
		assert.Equal(t, token, ac.Token)
		assert.False(t, ac.CompanyToken)

		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/vendors", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := serve(t, cfg, inner, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestMiddlewareCompanyHappyPath(t *testing.T) {
	t.Parallel()

	cfg := &authn.Config{Facility: newFacility(t)}
	token := signToken(t, testSecret, jwtlib.MapClaims{
		"tokenType":       "company",
		"companyId":       5,
		"companyPan":      "ABCDE1234F",
		"senderProductId": 1,
		"productId":       3,
	})

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		p, ok := principal.FromContext(ctx)
		require.True(t, ok)
		assert.Equal(t, principal.KindCompany, p.Kind())

		company, ok := p.Company()
		require.True(t, ok)
		assert.Equal(t, int64(5), company.Code)
		assert.Equal(t, "ABCDE1234F", company.Pan)
		require.NotNil(t, company.SenderProductID)
		assert.Equal(t, int64(1), *company.SenderProductID)
		// receiverProductId is absent, so the generic product claim fills in.
		require.NotNil(t, company.ReceiverProductID)
		assert.Equal(t, int64(3), *company.ReceiverProductID)

		ac, err := authctx.CompanyFromContext(ctx)
		require.NoError(t, err)
		assert.True(t, ac.CompanyToken)
		assert.Equal(t, "ABCDE1234F", ac.CompanyPan)

		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/invoices", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := serve(t, cfg, inner, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestMiddlewareScopeCleared(t *testing.T) {
	t.Parallel()

	t.Run("after success", func(t *testing.T) {
		t.Parallel()

		cfg, inner, captured := newTestHandler(t)
		token := signToken(t, testSecret, jwtlib.MapClaims{
			"sub":       "a@b.com",
			"userId":    7,
			"companyId": 99,
		})
		req := httptest.NewRequest(http.MethodGet, "/api/vendors", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		rec := serve(t, cfg, inner, req)
		require.Equal(t, http.StatusOK, rec.Code)

		_, ok := tenant.CurrentTenant(captured.ctx)
		assert.False(t, ok, "tenant scope must be cleared once the request finishes")
	})

	t.Run("after handler panic recovery boundary", func(t *testing.T) {
		t.Parallel()

		cfg := &authn.Config{Facility: newFacility(t)}
		var handlerCtx context.Context
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			handlerCtx = r.Context()
			panic("boom")
		})
		token := signToken(t, testSecret, jwtlib.MapClaims{
			"sub":       "a@b.com",
			"userId":    7,
			"companyId": 99,
		})
		req := httptest.NewRequest(http.MethodGet, "/api/vendors", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		func() {
			defer func() { _ = recover() }()
			authn.Middleware(*cfg)(inner).ServeHTTP(httptest.NewRecorder(), req)
		}()

		require.NotNil(t, handlerCtx)
		_, ok := tenant.CurrentTenant(handlerCtx)
		assert.False(t, ok, "tenant scope must be cleared even when the handler panics")
	})
}

func TestMiddlewareBody(t *testing.T) {
	t.Parallel()

	t.Run("body stays readable after logging", func(t *testing.T) {
		t.Parallel()

		cfg, inner, captured := newTestHandler(t)
		token := signToken(t, testSecret, jwtlib.MapClaims{
			"sub":       "a@b.com",
			"userId":    7,
			"companyId": 99,
		})
		payload := `{"vendorName":"Acme","password":"secret"}`
		req := httptest.NewRequest(http.MethodPost, "/api/vendors", strings.NewReader(payload))
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Content-Type", "application/json")

		rec := serve(t, cfg, inner, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, payload, string(captured.body))
	})

	t.Run("body larger than the cache limit reaches the handler intact", func(t *testing.T) {
		t.Parallel()

		cfg := &authn.Config{Facility: newFacility(t)}
		token := signToken(t, testSecret, jwtlib.MapClaims{
			"sub":       "a@b.com",
			"userId":    7,
			"companyId": 99,
		})

		payload := bytes.Repeat([]byte("x"), 1<<20+4096)
		var got int
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			got = len(body)
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodPost, "/api/documents", bytes.NewReader(payload))
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Content-Type", "application/octet-stream")

		rec := serve(t, cfg, inner, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, len(payload), got)
	})

	t.Run("multipart uploads are not buffered", func(t *testing.T) {
		t.Parallel()

		cfg := &authn.Config{Facility: newFacility(t)}
		token := signToken(t, testSecret, jwtlib.MapClaims{
			"sub":       "a@b.com",
			"userId":    7,
			"companyId": 99,
		})

		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		part, err := mw.CreateFormFile("document", "invoice.pdf")
		require.NoError(t, err)
		_, err = part.Write([]byte("%PDF-1.4 payload"))
		require.NoError(t, err)
		require.NoError(t, mw.Close())

		var gotFile string
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.NoError(t, r.ParseMultipartForm(1<<20))
			file, header, err := r.FormFile("document")
			require.NoError(t, err)
			defer file.Close()
			gotFile = header.Filename
			w.WriteHeader(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodPost, "/api/documents", &buf)
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Content-Type", mw.FormDataContentType())

		rec := serve(t, cfg, inner, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "invoice.pdf", gotFile)
	})
}

func TestMiddlewareTenantSeedingFailureIsNotFatal(t *testing.T) {
	t.Parallel()

	// A token without companyId still authenticates; only the tenant scope
	// stays unset.
	cfg := &authn.Config{Facility: newFacility(t)}
	token := signToken(t, testSecret, jwtlib.MapClaims{
		"sub":    "a@b.com",
		"userId": 7,
	})

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := tenant.CurrentTenant(r.Context())
		assert.False(t, ok)
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/vendors", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rec := serve(t, cfg, inner, req)
	require.Equal(t, http.StatusOK, rec.Code)
}
