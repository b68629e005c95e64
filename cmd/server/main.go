package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/vendorport/authkit/pkg/authctx"
	"github.com/vendorport/authkit/pkg/authn"
	"github.com/vendorport/authkit/pkg/config"
	"github.com/vendorport/authkit/pkg/environment"
	"github.com/vendorport/authkit/pkg/httpserver"
	"github.com/vendorport/authkit/pkg/jwtauth"
	"github.com/vendorport/authkit/pkg/logger"
	"github.com/vendorport/authkit/pkg/requestid"
	"github.com/vendorport/authkit/pkg/tenant"
)

type appConfig struct {
	Env           string `env:"APP_ENV" envDefault:"production"`
	ServiceName   string `env:"SERVICE_NAME" envDefault:"vendor-portal-gateway"`
	JWTSigningKey string `env:"JWT_SIGNING_KEY,required"`

	HTTP httpserver.Config
}

func main() {
	var cfg appConfig
	config.MustLoad(&cfg)

	env := environment.Parse(cfg.Env)

	log := logger.New(
		logger.WithEnvironment(env, cfg.ServiceName),
		logger.WithContextExtractors(
			requestid.LoggerExtractor(),
			tenant.LoggerExtractor(),
			environment.LoggerExtractor(),
		),
	)
	logger.SetAsDefault(log)

	facility, err := jwtauth.NewFromString(cfg.JWTSigningKey)
	if err != nil {
		log.Error("invalid jwt configuration", logger.Error(err))
		os.Exit(1)
	}

	router := newRouter(env, facility, log)

	srv := httpserver.New(cfg.HTTP, log)
	if err := srv.Run(context.Background(), router); err != nil {
		log.Error("server stopped", logger.Error(err))
		os.Exit(1)
	}
}

func newRouter(env environment.Environment, facility *jwtauth.Facility, log *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(requestid.Middleware)
	r.Use(environment.Middleware(env))
	r.Use(authn.Middleware(authn.Config{
		Facility: facility,
		Logger:   log,
	}))

	r.Get("/health", httpserver.HealthHandler(log))
	r.Get("/actuator/health", httpserver.HealthHandler(log))

	r.Route("/api", func(r chi.Router) {
		r.Get("/me", handleMe)
		r.Get("/company/profile", handleCompanyProfile)
	})

	return r
}

// handleMe echoes the caller's authentication context. Works for both user
// and company tokens.
func handleMe(w http.ResponseWriter, r *http.Request) {
	ac, err := authctx.FromContext(r.Context())
	if err != nil {
		http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
		return
	}
	writeJSON(w, ac)
}

// handleCompanyProfile is restricted to company tokens.
func handleCompanyProfile(w http.ResponseWriter, r *http.Request) {
	ac, err := authctx.CompanyFromContext(r.Context())
	if err != nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	writeJSON(w, ac)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(v)
}
