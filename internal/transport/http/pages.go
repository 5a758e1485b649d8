package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Placeholder page handlers. The real UI is served elsewhere; these
// exist so the gate's routing decisions terminate on a 200 rather than
// the router's 404.
func registerPages(r chi.Router) {
	page := func(title string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte("<!doctype html><title>" + title + "</title><h1>" + title + "</h1>"))
		}
	}

	r.Get("/login", page("Sign in"))
	r.Get("/register", page("Create account"))
	r.Get("/forgot-password", page("Forgot password"))
	r.Get("/reset-password", page("Reset password"))
	r.Get("/verify-otp", page("Verify code"))
	r.Get("/dashboard", page("Dashboard"))
	r.Get("/dashboard/*", page("Dashboard"))
	r.Get("/", page("District Services Portal"))
}
