package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	obsmw "github.com/jotishBolds/district-bi-sub001/internal/observability/middleware"
	"github.com/jotishBolds/district-bi-sub001/internal/service"
)

type RouterConfig struct {
	CORSOrigins []string
	RateLimit   int
	RatePeriod  time.Duration
}

func NewRouter(cfg RouterConfig, auth service.AuthService, accounts service.AccountService, directory service.DirectoryService, sessions service.SessionService) http.Handler {
	h := &Handlers{Auth: auth, Accounts: accounts, Directory: directory}
	gate := NewGate(sessions)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(obsmw.WithRequestAndTrace)
	r.Use(obsmw.InstrumentHTTP)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   originsIfSet(cfg.CORSOrigins),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	// Auth API: exempt from the gate, rate limited by IP instead.
	r.Route("/api/auth", func(r chi.Router) {
		if cfg.RateLimit > 0 {
			r.Use(httprate.LimitByIP(cfg.RateLimit, cfg.RatePeriod))
		}
		r.Post("/register", h.Register)
		r.Post("/login", h.Login)
		r.Post("/logout", h.Logout)
		r.Post("/forgot-password", h.ForgotPassword)
		r.Post("/verify-otp", h.VerifyOTP)
		r.Post("/reset-password", h.ResetPassword)
	})

	// Everything else passes the gate first.
	r.Group(func(r chi.Router) {
		r.Use(gate.Middleware)

		registerPages(r)

		r.Group(func(r chi.Router) {
			r.Use(RequireSession(sessions))
			r.Get("/api/officers/available", h.AvailableOfficers)
			r.Get("/api/service-categories", h.ServiceCategories)
			r.Patch("/api/admin/users/{userID}/toggle-status", h.ToggleStatus)
		})
	})

	return r
}

func originsIfSet(in []string) []string {
	out := []string{}
	for _, o := range in {
		if s := strings.TrimSpace(o); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
