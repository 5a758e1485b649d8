package http

import (
	"context"
	"net/http"

	"github.com/jotishBolds/district-bi-sub001/internal/domain"
	"github.com/jotishBolds/district-bi-sub001/internal/service"
)

type sessionKey struct{}

func withSession(ctx context.Context, s *domain.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

func sessionFrom(ctx context.Context) (*domain.Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(*domain.Session)
	return s, ok
}

// RequireSession guards API routes independently of the gate (defense
// in depth). Step-up sessions and deactivated snapshots are rejected;
// both are confined to the verification surface.
func RequireSession(sessions service.SessionService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromRequest(r)
			if token == "" {
				writeError(w, r, domain.ErrUnauthorized)
				return
			}
			sess, err := sessions.Parse(token)
			if err != nil {
				writeError(w, r, domain.ErrUnauthorized)
				return
			}
			if !sess.Verified() {
				writeError(w, r, domain.ErrUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(withSession(r.Context(), sess)))
		})
	}
}
